// Command wavealert360-ledservice drives the LED hardware (or a
// simulated driver) from the control token the resolver writes, and
// publishes its own status document for the supervisor and dashboard to
// read.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/tomtom215/wavealert360/internal/config"
	"github.com/tomtom215/wavealert360/internal/led"
	"github.com/tomtom215/wavealert360/internal/logging"
	"github.com/tomtom215/wavealert360/internal/procfile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Caller: cfg.Logging.Caller})
	logging.Info().Msg("starting wavealert360-ledservice")

	lock := procfile.NewRoleLock(filepath.Join(cfg.Paths.LockDir, "ledservice.lock"))
	if err := lock.Acquire(); err != nil {
		logging.Fatal().Err(err).Msg("failed to acquire led service role lock")
	}
	defer lock.Release()

	svc := led.New(cfg.LED, cfg.Paths.ControlToken, cfg.Paths.LEDStatus)

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
		logging.Error().Err(err).Msg("led service exited with error")
		os.Exit(1)
	}

	logging.Info().Msg("led service stopped gracefully")
}
