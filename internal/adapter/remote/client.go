package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/couchcryptid/enso-predictor-service/internal/domain"
	"github.com/couchcryptid/enso-predictor-service/internal/observability"
)

// Client implements domain.Predictor against a remote POST /predict endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a remote prediction client.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		metrics: metrics,
		logger:  logger,
	}
}

// Predict forwards the point to the backend. Transport failures wrap
// domain.ErrConnectivity; backend-reported failures return *domain.ServerError.
func (c *Client) Predict(ctx context.Context, at domain.Coordinates) (domain.Prediction, error) {
	start := time.Now()
	p, err := c.doRequest(ctx, at)

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.metrics.RemoteDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	return p, err
}

func (c *Client) doRequest(ctx context.Context, at domain.Coordinates) (domain.Prediction, error) {
	lat, lon := at.Strings()
	body, err := json.Marshal(request{Latitude: lat, Longitude: lon})
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("remote predict request failed", "lat", at.Lat, "lon", at.Lon, "error", err)
		return domain.Prediction{}, fmt.Errorf("%w: %w", domain.ErrConnectivity, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("%w: read response: %w", domain.ErrConnectivity, err)
	}

	var wire response
	decodeErr := json.Unmarshal(data, &wire)

	if resp.StatusCode != http.StatusOK {
		msg := wire.Error
		if decodeErr != nil || msg == "" {
			msg = strings.TrimSpace(string(data))
		}
		return domain.Prediction{}, &domain.ServerError{Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return domain.Prediction{}, &domain.ServerError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("decode response: %v", decodeErr),
		}
	}
	if wire.Error != "" {
		return domain.Prediction{}, &domain.ServerError{Status: resp.StatusCode, Message: wire.Error}
	}

	return domain.Prediction{
		Label:       domain.Label(wire.Prediction),
		Confidence:  clampConfidence(wire.Confidence),
		Features:    wire.WeatherData,
		Source:      domain.SourceRemote,
		PredictedAt: domain.Clock().Now().UTC(),
	}, nil
}

func clampConfidence(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return max(0, min(100, int(math.Floor(v+0.5))))
}

// Remote API wire types.

type request struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

type response struct {
	Prediction  string               `json:"prediction"`
	Confidence  float64              `json:"confidence"`
	WeatherData domain.FeatureVector `json:"weather_data"`
	Error       string               `json:"error,omitempty"`
}
