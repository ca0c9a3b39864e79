package predictor_test

import (
	"context"
	"testing"
	"time"

	"github.com/couchcryptid/enso-predictor-service/internal/domain"
	"github.com/couchcryptid/enso-predictor-service/internal/predictor"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPredictor_Predict(t *testing.T) {
	p := predictor.NewLocalPredictor(domain.NewRandSource(11), discardLogger())

	for range 500 {
		got, err := p.Predict(context.Background(), domain.Coordinates{Lat: 1, Lon: 2})
		require.NoError(t, err)
		assert.Equal(t, domain.SourceMock, got.Source)
		assert.GreaterOrEqual(t, got.Confidence, 0)
		assert.LessOrEqual(t, got.Confidence, 100)
		_, known := domain.ParseLabel(string(got.Label))
		assert.True(t, known)
	}
}

func TestLocalPredictor_SeedIsReproducible(t *testing.T) {
	fixed := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { domain.SetClock(nil) })

	a, err := predictor.NewLocalPredictor(domain.NewRandSource(77), discardLogger()).Predict(context.Background(), domain.Coordinates{})
	require.NoError(t, err)
	b, err := predictor.NewLocalPredictor(domain.NewRandSource(77), discardLogger()).Predict(context.Background(), domain.Coordinates{})
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestLocalPredictor_SimulatedLatency(t *testing.T) {
	clock := clockwork.NewFakeClock()
	p := predictor.NewLocalPredictor(domain.NewRandSource(3), discardLogger(),
		predictor.WithClock(clock),
		predictor.WithLatency(time.Second, time.Second),
	)

	done := make(chan error, 1)
	go func() {
		_, err := p.Predict(context.Background(), domain.Coordinates{})
		done <- err
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	select {
	case <-done:
		t.Fatal("prediction returned before latency elapsed")
	default:
	}

	clock.Advance(time.Second)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("prediction did not complete after advancing clock")
	}
}

func TestLocalPredictor_LatencyHonoursCancellation(t *testing.T) {
	p := predictor.NewLocalPredictor(domain.NewRandSource(3), discardLogger(),
		predictor.WithClock(clockwork.NewFakeClock()),
		predictor.WithLatency(time.Hour, 2*time.Hour),
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Predict(ctx, domain.Coordinates{})
	assert.ErrorIs(t, err, context.Canceled)
}
