// Command wavealert360-resolver runs the alert resolver process: poll
// the cloud endpoint, fall back to the weather API and then the
// last-known-good cache, and dispatch the resulting level to the LED
// control token and audio cache.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/tomtom215/wavealert360/internal/config"
	"github.com/tomtom215/wavealert360/internal/device"
	"github.com/tomtom215/wavealert360/internal/logging"
	"github.com/tomtom215/wavealert360/internal/procfile"
	"github.com/tomtom215/wavealert360/internal/resolver"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Caller: cfg.Logging.Caller})
	logging.Info().Msg("starting wavealert360-resolver")

	lock := procfile.NewRoleLock(filepath.Join(cfg.Paths.LockDir, "resolver.lock"))
	if err := lock.Acquire(); err != nil {
		logging.Fatal().Err(err).Msg("failed to acquire resolver role lock")
	}
	defer lock.Release()

	identity, err := device.Identity(cfg.Device.NetworkInterface)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to resolve device identity")
	}
	logging.Info().Str("device_identity", identity.MACAddress).Msg("resolved device identity")

	svc := resolver.New(identity, cfg)

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
		logging.Error().Err(err).Msg("resolver exited with error")
		os.Exit(1)
	}

	logging.Info().Msg("resolver stopped gracefully")
}
