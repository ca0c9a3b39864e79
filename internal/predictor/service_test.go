package predictor_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/couchcryptid/enso-predictor-service/internal/domain"
	"github.com/couchcryptid/enso-predictor-service/internal/observability"
	"github.com/couchcryptid/enso-predictor-service/internal/predictor"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockPredictor struct {
	result domain.Prediction
	err    error
	calls  int
	last   domain.Coordinates
}

func (m *mockPredictor) Predict(_ context.Context, at domain.Coordinates) (domain.Prediction, error) {
	m.calls++
	m.last = at
	return m.result, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(p domain.Predictor) (*predictor.Service, *observability.Metrics) {
	metrics := observability.NewMetricsForTesting()
	return predictor.New(p, discardLogger(), metrics), metrics
}

// --- tests ---

func TestService_Predict_HappyPath(t *testing.T) {
	mock := &mockPredictor{result: domain.Prediction{
		Label:      domain.LabelElNino,
		Confidence: 72,
		Source:     domain.SourceRemote,
	}}
	svc, metrics := newService(mock)

	p, err := svc.Predict(context.Background(), "-6.2", "106.8")
	require.NoError(t, err)

	if diff := cmp.Diff(domain.Coordinates{Lat: -6.2, Lon: 106.8}, mock.last); diff != "" {
		t.Fatalf("coordinates mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, domain.LabelElNino, p.Label)
	assert.Contains(t, p.Advisory, "Strong El Niño signal")
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.Predictions.WithLabelValues("el_nino", "remote")), 1e-9)
}

func TestService_Predict_ValidationShortCircuits(t *testing.T) {
	tests := []struct {
		name string
		lat  string
		lon  string
	}{
		{"missing", "", "10"},
		{"latitude out of range", "95", "10"},
		{"longitude out of range", "10", "-181"},
		{"garbage", "abc", "10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockPredictor{}
			svc, metrics := newService(mock)

			_, err := svc.Predict(context.Background(), tt.lat, tt.lon)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Zero(t, mock.calls, "predictor must not run on invalid input")
			assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.PredictionErrors.WithLabelValues("validation")), 1e-9)
		})
	}
}

func TestService_PredictAt_RejectsOutOfRange(t *testing.T) {
	mock := &mockPredictor{}
	svc, _ := newService(mock)

	_, err := svc.PredictAt(context.Background(), domain.Coordinates{Lat: -90.5})
	require.Error(t, err)
	assert.Zero(t, mock.calls)
}

func TestService_Predict_PropagatesBackendErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind string
	}{
		{"connectivity", errors.Join(domain.ErrConnectivity, errors.New("dial tcp: refused")), "connectivity"},
		{"server", &domain.ServerError{Status: 500, Message: "quota exceeded"}, "server"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, metrics := newService(&mockPredictor{err: tt.err})

			p, err := svc.Predict(context.Background(), "0", "0")
			require.Error(t, err)
			assert.Equal(t, tt.kind, domain.ErrorKind(err))
			assert.Equal(t, domain.Prediction{}, p, "no partial results")
			assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.PredictionErrors.WithLabelValues(tt.kind)), 1e-9)
		})
	}
}

func TestService_Readiness(t *testing.T) {
	svc, _ := newService(&mockPredictor{})
	require.NoError(t, svc.CheckReadiness(context.Background()))

	svc.Drain()
	assert.Error(t, svc.CheckReadiness(context.Background()))
}

func TestService_Features_FallsBackToPrediction(t *testing.T) {
	var v domain.FeatureVector
	v[domain.SeaSurfaceTemperature] = 301
	svc, _ := newService(&mockPredictor{result: domain.Prediction{Features: v}})

	got, err := svc.Features(context.Background(), "1", "2")
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestService_Features_UsesLocalSynthesis(t *testing.T) {
	local := predictor.NewLocalPredictor(domain.NewRandSource(5), discardLogger())
	svc, metrics := newService(local)

	got, err := svc.Features(context.Background(), "1", "2")
	require.NoError(t, err)

	ranges := domain.Ranges()
	for _, q := range domain.Quantities() {
		assert.True(t, ranges.Bounds(q).Contains(got.Get(q)), q.String())
	}
	assert.Zero(t, testutil.CollectAndCount(metrics.Predictions), "features alone are not predictions")
}
