// Command wavealert360-updater runs the self-update process: poll the
// configured GitHub branch, fast-forward the working tree on a new
// commit, and signal the dashboard process to restart with the new
// code.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/tomtom215/wavealert360/internal/config"
	"github.com/tomtom215/wavealert360/internal/logging"
	"github.com/tomtom215/wavealert360/internal/procfile"
	"github.com/tomtom215/wavealert360/internal/updater"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Caller: cfg.Logging.Caller})
	logging.Info().Msg("starting wavealert360-updater")

	lock := procfile.NewRoleLock(filepath.Join(cfg.Paths.LockDir, "updater.lock"))
	if err := lock.Acquire(); err != nil {
		logging.Fatal().Err(err).Msg("failed to acquire updater role lock")
	}
	defer lock.Release()

	svc := updater.New(cfg)

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
		logging.Error().Err(err).Msg("updater exited with error")
		os.Exit(1)
	}

	logging.Info().Msg("updater stopped gracefully")
}
