// Command wavealert360-dashboard serves the read-only HTTP status
// surface: current alert level, LED hardware state, restart history,
// deployed commit, a live WebSocket feed, and a Prometheus scrape
// endpoint.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/tomtom215/wavealert360/internal/config"
	"github.com/tomtom215/wavealert360/internal/dashboard"
	"github.com/tomtom215/wavealert360/internal/logging"
	"github.com/tomtom215/wavealert360/internal/procfile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Caller: cfg.Logging.Caller})
	logging.Info().Msg("starting wavealert360-dashboard")

	lock := procfile.NewRoleLock(filepath.Join(cfg.Paths.LockDir, "dashboard.lock"))
	if err := lock.Acquire(); err != nil {
		logging.Fatal().Err(err).Msg("failed to acquire dashboard role lock")
	}
	defer lock.Release()

	svc, err := dashboard.New(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to build dashboard service")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	}()

	if err := svc.Run(ctx); err != nil && ctx.Err() == nil {
		logging.Error().Err(err).Msg("dashboard exited with error")
		os.Exit(1)
	}

	logging.Info().Msg("dashboard stopped gracefully")
}
