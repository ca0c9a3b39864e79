package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRemoteURL = "http://predictor.internal:8000"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, ModeMock, cfg.Mode)
	assert.Empty(t, cfg.RemoteURL)
	assert.Equal(t, 5*time.Second, cfg.RemoteTimeout)
	assert.Equal(t, 256, cfg.RemoteCacheSize)
	assert.Zero(t, cfg.MockLatencyMin)
	assert.Zero(t, cfg.MockLatencyMax)
	assert.InDelta(t, 10.0, cfg.RateLimitRPS, 1e-9)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.Zero(t, cfg.Seed)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("PREDICT_MODE", "remote")
	t.Setenv("REMOTE_URL", testRemoteURL)
	t.Setenv("REMOTE_TIMEOUT", "2s")
	t.Setenv("REMOTE_CACHE_SIZE", "0")
	t.Setenv("MOCK_LATENCY_MIN", "1s")
	t.Setenv("MOCK_LATENCY_MAX", "3s")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("PREDICT_SEED", "1234")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, ModeRemote, cfg.Mode)
	assert.Equal(t, testRemoteURL, cfg.RemoteURL)
	assert.Equal(t, 2*time.Second, cfg.RemoteTimeout)
	assert.Zero(t, cfg.RemoteCacheSize)
	assert.Equal(t, time.Second, cfg.MockLatencyMin)
	assert.Equal(t, 3*time.Second, cfg.MockLatencyMax)
	assert.InDelta(t, 2.5, cfg.RateLimitRPS, 1e-9)
	assert.Equal(t, 5, cfg.RateLimitBurst)
	assert.Equal(t, uint64(1234), cfg.Seed)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  string
	}{
		{"REMOTE_TIMEOUT", "bad", "REMOTE_TIMEOUT"},
		{"REMOTE_TIMEOUT", "0s", "REMOTE_TIMEOUT"},
		{"MOCK_LATENCY_MIN", "-1s", "MOCK_LATENCY_MIN"},
		{"MOCK_LATENCY_MAX", "soon", "MOCK_LATENCY_MAX"},
		{"RATE_LIMIT_RPS", "0", "RATE_LIMIT_RPS"},
		{"RATE_LIMIT_BURST", "-3", "RATE_LIMIT_BURST"},
		{"PREDICT_SEED", "-1", "PREDICT_SEED"},
		{"PREDICT_MODE", "oracle", "PREDICT_MODE"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_LatencyMaxBelowMin(t *testing.T) {
	t.Setenv("MOCK_LATENCY_MIN", "3s")
	t.Setenv("MOCK_LATENCY_MAX", "1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MOCK_LATENCY_MAX")
}

func TestLoad_RemoteModeWithoutURL(t *testing.T) {
	t.Setenv("PREDICT_MODE", "remote")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REMOTE_URL")
}

func TestLoad_RemoteModeWithBadURL(t *testing.T) {
	t.Setenv("PREDICT_MODE", "remote")
	t.Setenv("REMOTE_URL", "predictor.internal")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REMOTE_URL")
}

func TestLoad_JunkCacheSizeFallsBack(t *testing.T) {
	t.Setenv("REMOTE_CACHE_SIZE", "lots")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.RemoteCacheSize)
}
