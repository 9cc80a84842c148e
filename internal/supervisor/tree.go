// Package supervisor implements the supervisor process: the only role
// that spawns the other four. It adapts thejerf/suture's goroutine
// supervision tree to supervise OS processes instead, by wrapping each
// child as a ProcessService — a suture.Service whose Serve method execs
// the child, waits on it, and returns an error whenever the child exits
// or a liveness probe finds it stuck, which is exactly the signal
// suture's own FailureThreshold/FailureBackoff windowed-restart policy
// needs to keep restarts bounded per role.
package supervisor

import (
	"context"
	"log/slog"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"
)

// TreeConfig mirrors the appliance's restart policy: N restarts within a
// window, then a cooldown, per role.
type TreeConfig struct {
	FailureThreshold float64
	FailureDecay     float64
	FailureBackoff   time.Duration
	ShutdownTimeout  time.Duration
}

// DefaultTreeConfig matches config.SupervisorConfig's defaults: 5
// restarts per 10-minute window.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		FailureThreshold: 5.0,
		FailureDecay:     600.0,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

// Tree holds one suture.Supervisor per dependency layer, started in
// dependency order: the LED hardware owner first, then resolver, then
// updater, then dashboard.
type Tree struct {
	root      *suture.Supervisor
	hardware  *suture.Supervisor
	resolver  *suture.Supervisor
	updater   *suture.Supervisor
	dashboard *suture.Supervisor
	config    TreeConfig
}

// NewTree builds the tree. logger drives suture's EventHook through the
// zerolog-backed slog adapter so restart/backoff events land in the same
// structured log as everything else.
func NewTree(logger *slog.Logger, config TreeConfig) *Tree {
	if config.FailureThreshold == 0 {
		config = DefaultTreeConfig()
	}

	handler := &sutureslog.Handler{Logger: logger}
	eventHook := handler.MustHook()

	rootSpec := suture.Spec{
		EventHook:        eventHook,
		FailureThreshold: config.FailureThreshold,
		FailureDecay:     config.FailureDecay,
		FailureBackoff:   config.FailureBackoff,
		Timeout:          config.ShutdownTimeout,
	}
	childSpec := suture.Spec{
		FailureThreshold: config.FailureThreshold,
		FailureDecay:     config.FailureDecay,
		FailureBackoff:   config.FailureBackoff,
		Timeout:          config.ShutdownTimeout,
	}

	root := suture.New("wavealert360-supervisor", rootSpec)
	hardware := suture.New("hardware-layer", childSpec)
	resolver := suture.New("resolver-layer", childSpec)
	updater := suture.New("updater-layer", childSpec)
	dashboard := suture.New("dashboard-layer", childSpec)

	root.Add(hardware)
	root.Add(resolver)
	root.Add(updater)
	root.Add(dashboard)

	return &Tree{
		root:      root,
		hardware:  hardware,
		resolver:  resolver,
		updater:   updater,
		dashboard: dashboard,
		config:    config,
	}
}

// AddHardwareService adds the LED service, started first.
func (t *Tree) AddHardwareService(svc suture.Service) suture.ServiceToken {
	return t.hardware.Add(svc)
}

// AddResolverService adds the alert resolver.
func (t *Tree) AddResolverService(svc suture.Service) suture.ServiceToken {
	return t.resolver.Add(svc)
}

// AddUpdaterService adds the self-updater.
func (t *Tree) AddUpdaterService(svc suture.Service) suture.ServiceToken {
	return t.updater.Add(svc)
}

// AddDashboardService adds the status dashboard, started last.
func (t *Tree) AddDashboardService(svc suture.Service) suture.ServiceToken {
	return t.dashboard.Add(svc)
}

// Serve runs the tree until ctx is canceled.
func (t *Tree) Serve(ctx context.Context) error {
	return t.root.Serve(ctx)
}

// ServeBackground runs the tree in a goroutine, returning a channel that
// receives the terminal error.
func (t *Tree) ServeBackground(ctx context.Context) <-chan error {
	return t.root.ServeBackground(ctx)
}

// UnstoppedServiceReport reports services that failed to stop within the
// shutdown timeout, logged by main() before exit.
func (t *Tree) UnstoppedServiceReport() ([]suture.UnstoppedService, error) {
	return t.root.UnstoppedServiceReport()
}
