package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/enso-predictor-service/internal/adapter/http"
	"github.com/couchcryptid/enso-predictor-service/internal/adapter/remote"
	"github.com/couchcryptid/enso-predictor-service/internal/config"
	"github.com/couchcryptid/enso-predictor-service/internal/domain"
	"github.com/couchcryptid/enso-predictor-service/internal/observability"
	"github.com/couchcryptid/enso-predictor-service/internal/predictor"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Select the predictor (PREDICT_MODE=mock|remote).
	var p domain.Predictor
	switch cfg.Mode {
	case config.ModeRemote:
		client := remote.NewClient(cfg.RemoteURL, cfg.RemoteTimeout, metrics, logger)
		p = remote.NewCachedPredictor(client, cfg.RemoteCacheSize, metrics)
		metrics.RemoteEnabled.Set(1)
		logger.Info("remote prediction enabled",
			"url", cfg.RemoteURL,
			"timeout", cfg.RemoteTimeout,
			"cache_size", cfg.RemoteCacheSize,
		)
	default:
		p = predictor.NewLocalPredictor(
			domain.NewRandSource(cfg.Seed),
			logger,
			predictor.WithLatency(cfg.MockLatencyMin, cfg.MockLatencyMax),
		)
		logger.Info("mock prediction enabled",
			"latency_min", cfg.MockLatencyMin,
			"latency_max", cfg.MockLatencyMax,
		)
	}

	svc := predictor.New(p, logger, metrics)
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, svc, limiter, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	svc.Drain()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
