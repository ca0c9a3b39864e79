package predictor

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/enso-predictor-service/internal/domain"
	"github.com/couchcryptid/enso-predictor-service/internal/observability"
)

// Service validates input, runs the configured predictor, and attaches
// advisory text. Every call is one terminal attempt: no retries, no partial results.
type Service struct {
	predictor domain.Predictor
	logger    *slog.Logger
	metrics   *observability.Metrics
	draining  atomic.Bool
}

// New creates a Service around a mock or remote predictor.
func New(p domain.Predictor, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		predictor: p,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil while the service accepts predictions.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.draining.Load() {
		return errors.New("predictor is shutting down")
	}
	return nil
}

// Drain marks the service not ready ahead of shutdown.
func (s *Service) Drain() {
	s.draining.Store(true)
}

// Predict parses raw latitude/longitude strings and predicts for the point.
// Invalid input fails with *domain.ValidationError before the predictor runs.
func (s *Service) Predict(ctx context.Context, lat, lon string) (domain.Prediction, error) {
	at, err := domain.ParseCoordinates(lat, lon)
	if err != nil {
		s.recordError(err)
		return domain.Prediction{}, err
	}
	return s.PredictAt(ctx, at)
}

// PredictAt predicts for an already numeric point.
func (s *Service) PredictAt(ctx context.Context, at domain.Coordinates) (domain.Prediction, error) {
	if err := at.Validate(); err != nil {
		s.recordError(err)
		return domain.Prediction{}, err
	}

	start := time.Now()
	p, err := s.predictor.Predict(ctx, at)
	s.metrics.PredictDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.recordError(err)
		s.logger.Warn("prediction failed",
			"lat", at.Lat,
			"lon", at.Lon,
			"kind", domain.ErrorKind(err),
			"error", err,
		)
		return domain.Prediction{}, err
	}

	p = p.WithAdvisory()
	s.metrics.Predictions.WithLabelValues(p.Label.Slug(), string(p.Source)).Inc()
	s.metrics.Confidence.Observe(float64(p.Confidence))
	s.logger.Info("prediction served",
		"lat", at.Lat,
		"lon", at.Lon,
		"label", p.Label.Slug(),
		"confidence", p.Confidence,
		"band", domain.BandFor(p.Confidence).String(),
		"source", p.Source,
	)
	return p, nil
}

// featureSource is implemented by predictors that can produce raw features
// without classifying them.
type featureSource interface {
	Features(ctx context.Context, at domain.Coordinates) (domain.FeatureVector, error)
}

// Features returns the weather feature vector for a point. Predictors that
// cannot supply features alone fall back to a full prediction.
func (s *Service) Features(ctx context.Context, lat, lon string) (domain.FeatureVector, error) {
	at, err := domain.ParseCoordinates(lat, lon)
	if err != nil {
		s.recordError(err)
		return domain.FeatureVector{}, err
	}

	if fs, ok := s.predictor.(featureSource); ok {
		v, err := fs.Features(ctx, at)
		if err != nil {
			s.recordError(err)
		}
		return v, err
	}

	p, err := s.predictor.Predict(ctx, at)
	if err != nil {
		s.recordError(err)
		return domain.FeatureVector{}, err
	}
	return p.Features, nil
}

func (s *Service) recordError(err error) {
	s.metrics.PredictionErrors.WithLabelValues(domain.ErrorKind(err)).Inc()
}
