package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the predictor.
type Metrics struct {
	Predictions      *prometheus.CounterVec // labels: label={el_nino,la_nina,neutral}, source={mock,remote}
	PredictionErrors *prometheus.CounterVec // labels: kind={validation,connectivity,server,internal,busy}
	Confidence       prometheus.Histogram
	PredictDuration  prometheus.Histogram

	// Remote backend metrics.
	RemoteDuration *prometheus.HistogramVec // labels: outcome={success,error}
	RemoteCache    *prometheus.CounterVec   // labels: result={hit,miss}
	RemoteEnabled  prometheus.Gauge

	RateLimited prometheus.Counter
}

// NewMetrics creates and registers all predictor metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Predictions,
		m.PredictionErrors,
		m.Confidence,
		m.PredictDuration,
		m.RemoteDuration,
		m.RemoteCache,
		m.RemoteEnabled,
		m.RateLimited,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests can
// build as many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "enso",
			Name:      "predictions_total",
			Help:      "Predictions served by label and source.",
		}, []string{"label", "source"}),
		PredictionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "enso",
			Name:      "prediction_errors_total",
			Help:      "Failed prediction attempts by error kind.",
		}, []string{"kind"}),
		Confidence: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "enso",
			Name:      "prediction_confidence_percent",
			Help:      "Confidence of served predictions.",
			Buckets:   []float64{30, 50, 60, 70, 80, 90, 95, 100},
		}),
		PredictDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "enso",
			Name:      "predict_duration_seconds",
			Help:      "End-to-end duration of a prediction attempt.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		}),
		RemoteDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "enso",
			Name:      "remote_request_duration_seconds",
			Help:      "Remote prediction backend request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"outcome"}),
		RemoteCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "enso",
			Name:      "remote_cache_total",
			Help:      "Remote prediction cache lookups by result.",
		}, []string{"result"}),
		RemoteEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "enso",
			Name:      "remote_enabled",
			Help:      "1 when predictions are forwarded to a remote backend, 0 in mock mode.",
		}),
		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "enso",
			Name:      "rate_limited_total",
			Help:      "Prediction requests rejected by the rate limiter.",
		}),
	}
}
