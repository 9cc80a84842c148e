// Command wavealert360-supervisor is the only role that spawns the
// other four: it execs the led service, resolver, updater, and
// dashboard as child processes, restarts any of them that exit or go
// stale under a bounded-restart policy, and records restart history for
// the dashboard to display.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/tomtom215/wavealert360/internal/config"
	"github.com/tomtom215/wavealert360/internal/logging"
	"github.com/tomtom215/wavealert360/internal/procfile"
	"github.com/tomtom215/wavealert360/internal/supervisor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Caller: cfg.Logging.Caller})
	logging.Info().Msg("starting wavealert360-supervisor")

	lock := procfile.NewRoleLock(filepath.Join(cfg.Paths.LockDir, "supervisor.lock"))
	if err := lock.Acquire(); err != nil {
		logging.Fatal().Err(err).Msg("failed to acquire supervisor role lock")
	}
	defer lock.Release()

	tracker := supervisor.NewRestartTracker(cfg.Supervisor.RestartWindow, cfg.Supervisor.MaxRestarts, cfg.Paths.RestartState)

	slogLogger := logging.NewSlogLogger()
	tree := supervisor.NewTree(slogLogger, supervisor.TreeConfig{
		FailureThreshold: float64(cfg.Supervisor.MaxRestarts),
		FailureDecay:     cfg.Supervisor.RestartWindow.Seconds(),
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Supervisor.ShutdownTimeout,
	})

	ledStatusProbe := supervisor.LEDStatusProbe(cfg.Paths.LEDStatus, cfg.Supervisor.LEDStatusMaxAge)
	ledProc := supervisor.NewProcessService("ledservice", cfg.Supervisor.LEDBinary, nil, cfg.Supervisor.MonitorInterval, ledStatusProbe)
	ledProc.OnRestart(func(reason string) { tracker.Record("ledservice", reason) })
	tree.AddHardwareService(ledProc)

	resolverProc := supervisor.NewProcessService("resolver", cfg.Supervisor.ResolverBinary, nil, cfg.Supervisor.MonitorInterval, nil)
	resolverProc.OnRestart(func(reason string) { tracker.Record("resolver", reason) })
	tree.AddResolverService(resolverProc)

	updaterProc := supervisor.NewProcessService("updater", cfg.Supervisor.UpdaterBinary, nil, cfg.Supervisor.MonitorInterval, nil)
	updaterProc.OnRestart(func(reason string) { tracker.Record("updater", reason) })
	tree.AddUpdaterService(updaterProc)

	dashboardProc := supervisor.NewProcessService("dashboard", cfg.Supervisor.DashboardBinary, nil, cfg.Supervisor.MonitorInterval, nil)
	dashboardProc.OnRestart(func(reason string) { tracker.Record("dashboard", reason) })
	tree.AddDashboardService(dashboardProc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("context canceled, waiting for supervisor tree to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("supervisor tree shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", fmt.Sprintf("%v", svc)).Msg("service failed to stop")
		}
	}

	logging.Info().Msg("supervisor stopped gracefully")
}
