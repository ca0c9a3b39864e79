package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Prediction modes.
const (
	ModeMock   = "mock"
	ModeRemote = "remote"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Mode is "mock" (local synthesis) or "remote" (forward to RemoteURL).
	Mode string

	// Remote backend configuration.
	RemoteURL       string
	RemoteTimeout   time.Duration
	RemoteCacheSize int

	// Simulated latency for mock predictions, drawn from [min, max).
	MockLatencyMin time.Duration
	MockLatencyMax time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	// Seed pins the random source; 0 seeds from the runtime.
	Seed uint64
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	remoteTimeout, err := parsePositiveDuration("REMOTE_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	latencyMin, err := parseDuration("MOCK_LATENCY_MIN", "0s")
	if err != nil {
		return nil, err
	}
	latencyMax, err := parseDuration("MOCK_LATENCY_MAX", "0s")
	if err != nil {
		return nil, err
	}
	if latencyMax < latencyMin {
		return nil, errors.New("MOCK_LATENCY_MAX must not be less than MOCK_LATENCY_MIN")
	}

	rps, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("RATE_LIMIT_RPS", "10"), 64)
	if err != nil || rps <= 0 {
		return nil, errors.New("invalid RATE_LIMIT_RPS")
	}

	burst, err := strconv.Atoi(sharedcfg.EnvOrDefault("RATE_LIMIT_BURST", "20"))
	if err != nil || burst <= 0 {
		return nil, errors.New("invalid RATE_LIMIT_BURST")
	}

	seed, err := strconv.ParseUint(sharedcfg.EnvOrDefault("PREDICT_SEED", "0"), 10, 64)
	if err != nil {
		return nil, errors.New("invalid PREDICT_SEED")
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		Mode:            sharedcfg.EnvOrDefault("PREDICT_MODE", ModeMock),
		RemoteURL:       os.Getenv("REMOTE_URL"),
		RemoteTimeout:   remoteTimeout,
		RemoteCacheSize: parseRemoteCacheSize(),
		MockLatencyMin:  latencyMin,
		MockLatencyMax:  latencyMax,
		RateLimitRPS:    rps,
		RateLimitBurst:  burst,
		Seed:            seed,
	}

	switch cfg.Mode {
	case ModeMock:
	case ModeRemote:
		if cfg.RemoteURL == "" {
			return nil, errors.New("PREDICT_MODE is remote but REMOTE_URL is not set")
		}
		if u, err := url.Parse(cfg.RemoteURL); err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid REMOTE_URL %q", cfg.RemoteURL)
		}
	default:
		return nil, fmt.Errorf("invalid PREDICT_MODE %q: want %s or %s", cfg.Mode, ModeMock, ModeRemote)
	}

	return cfg, nil
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := parseDuration(key, def)
	if err != nil || d == 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

// parseRemoteCacheSize falls back to the default on junk; 0 disables the cache.
func parseRemoteCacheSize() int {
	if s := os.Getenv("REMOTE_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			return n
		}
	}
	return 256
}
