package predictor

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/enso-predictor-service/internal/domain"
	"github.com/jonboulle/clockwork"
)

// LocalPredictor implements domain.Predictor by synthesizing and classifying
// features in process. Coordinates are validated upstream and otherwise unused.
type LocalPredictor struct {
	synth      *domain.Synthesizer
	classifier *domain.Classifier
	rng        domain.RandSource
	clock      clockwork.Clock
	latencyMin time.Duration
	latencyMax time.Duration
	logger     *slog.Logger
}

// LocalOption configures a LocalPredictor.
type LocalOption func(*LocalPredictor)

// WithLatency delays each prediction by a uniform duration in [lo, hi).
func WithLatency(lo, hi time.Duration) LocalOption {
	return func(p *LocalPredictor) {
		p.latencyMin, p.latencyMax = lo, hi
	}
}

// WithClock overrides the clock used for simulated latency.
func WithClock(c clockwork.Clock) LocalOption {
	return func(p *LocalPredictor) {
		p.clock = c
	}
}

// NewLocalPredictor creates a LocalPredictor drawing every random value from rng.
func NewLocalPredictor(rng domain.RandSource, logger *slog.Logger, opts ...LocalOption) *LocalPredictor {
	p := &LocalPredictor{
		synth:      domain.NewSynthesizer(rng),
		classifier: domain.NewClassifier(rng),
		rng:        rng,
		clock:      domain.Clock(),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *LocalPredictor) Predict(ctx context.Context, at domain.Coordinates) (domain.Prediction, error) {
	if err := p.simulateLatency(ctx); err != nil {
		return domain.Prediction{}, err
	}

	features, regime := p.synth.SynthesizeWithRegime()
	prediction := p.classifier.Classify(features)
	prediction.Source = domain.SourceMock

	p.logger.Debug("mock prediction",
		"lat", at.Lat,
		"lon", at.Lon,
		"regime", regime.String(),
		"label", prediction.Label.Slug(),
		"confidence", prediction.Confidence,
	)
	return prediction, nil
}

// Features synthesizes a vector without classifying it.
func (p *LocalPredictor) Features(ctx context.Context, _ domain.Coordinates) (domain.FeatureVector, error) {
	if err := p.simulateLatency(ctx); err != nil {
		return domain.FeatureVector{}, err
	}
	return p.synth.Synthesize(), nil
}

func (p *LocalPredictor) simulateLatency(ctx context.Context) error {
	if p.latencyMax <= 0 {
		return nil
	}
	d := p.latencyMin
	if span := p.latencyMax - p.latencyMin; span > 0 {
		d += time.Duration(p.rng.Float64() * float64(span))
	}
	if d <= 0 {
		return nil
	}

	timer := p.clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.Chan():
		return nil
	}
}
