// Package session models a single user's prediction form: one submission in
// flight at a time, with the last result replaced wholesale on completion.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/couchcryptid/enso-predictor-service/internal/domain"
	"golang.org/x/sync/semaphore"
)

// ErrPending is returned when a submission is made while another is in flight.
var ErrPending = errors.New("a prediction is already in progress")

// Predictor is the prediction entry point a session submits to.
type Predictor interface {
	Predict(ctx context.Context, lat, lon string) (domain.Prediction, error)
}

// Session serializes submissions for one user.
type Session struct {
	predictor Predictor
	inflight  *semaphore.Weighted

	mu     sync.Mutex
	result *domain.Prediction
	err    error
}

// New creates a Session backed by p.
func New(p Predictor) *Session {
	return &Session{
		predictor: p,
		inflight:  semaphore.NewWeighted(1),
	}
}

// Submit runs one prediction. A concurrent call fails fast with ErrPending
// rather than racing the outstanding one. The previous result is cleared as
// soon as the submission starts.
func (s *Session) Submit(ctx context.Context, lat, lon string) (domain.Prediction, error) {
	if !s.inflight.TryAcquire(1) {
		return domain.Prediction{}, ErrPending
	}
	defer s.inflight.Release(1)

	s.store(nil, nil)

	p, err := s.predictor.Predict(ctx, lat, lon)
	if err != nil {
		s.store(nil, err)
		return domain.Prediction{}, err
	}
	s.store(&p, nil)
	return p, nil
}

// Pending reports whether a submission is in flight.
func (s *Session) Pending() bool {
	if s.inflight.TryAcquire(1) {
		s.inflight.Release(1)
		return false
	}
	return true
}

// Result returns the last completed prediction, if the last attempt succeeded.
func (s *Session) Result() (domain.Prediction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return domain.Prediction{}, false
	}
	return *s.result, true
}

// Err returns the error from the last attempt, if it failed.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Session) store(p *domain.Prediction, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = p
	s.err = err
}
