package supervisor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/tomtom215/wavealert360/internal/logging"
)

// LivenessProbe is an optional extra staleness check beyond "the child
// process is still running" — used for the LED service, whose status
// document must also stay fresh. Return a non-nil error to make
// ProcessService.Serve return early, which suture treats as a failure
// and restarts under its backoff policy.
type LivenessProbe func() error

// ProcessService wraps one child OS process as a suture.Service: Serve
// starts the lifecycle, blocks until something ends it, and stops it on
// context cancellation.
type ProcessService struct {
	name            string
	binary          string
	args            []string
	env             []string
	monitorInterval time.Duration
	probe           LivenessProbe
	shutdownTimeout time.Duration

	onRestart func(reason string)

	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewProcessService builds a service for role `name`, execing binary
// with args. probe may be nil (no extra staleness check beyond process
// liveness).
func NewProcessService(name, binary string, args []string, monitorInterval time.Duration, probe LivenessProbe) *ProcessService {
	return &ProcessService{
		name:            name,
		binary:          binary,
		args:            args,
		monitorInterval: monitorInterval,
		probe:           probe,
		shutdownTimeout: 5 * time.Second,
	}
}

// OnRestart registers a callback invoked with a human-readable reason
// each time Serve is about to return an error (and therefore suture is
// about to restart this service). Used to update the supervisor's
// persisted RestartRecord.
func (s *ProcessService) OnRestart(fn func(reason string)) {
	s.onRestart = fn
}

// Serve implements suture.Service: start the child, wait for it to exit,
// be killed by context cancellation, or fail a liveness probe — whichever
// comes first.
func (s *ProcessService) Serve(ctx context.Context) error {
	cmd := exec.CommandContext(context.Background(), s.binary, s.args...)
	cmd.Env = append(os.Environ(), s.env...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		s.reportRestart(fmt.Sprintf("spawn failed: %v", err))
		return fmt.Errorf("spawn %s: %w", s.name, err)
	}

	s.mu.Lock()
	s.cmd = cmd
	s.mu.Unlock()

	logging.Info().Str("role", s.name).Int("pid", cmd.Process.Pid).Msg("role process started")

	waitErr := make(chan error, 1)
	go func() { waitErr <- cmd.Wait() }()

	ticker := time.NewTicker(s.monitorTick())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.terminate(cmd, waitErr)
			return ctx.Err()

		case err := <-waitErr:
			reason := "exited cleanly"
			if err != nil {
				reason = err.Error()
			}
			logging.Warn().Str("role", s.name).Str("reason", reason).Msg("role process ended")
			s.reportRestart(reason)
			if err != nil {
				return fmt.Errorf("%s: %w", s.name, err)
			}
			return fmt.Errorf("%s: process exited", s.name)

		case <-ticker.C:
			if s.probe == nil {
				continue
			}
			if err := s.probe(); err != nil {
				logging.Warn().Str("role", s.name).Err(err).Msg("liveness probe failed, restarting role")
				s.terminate(cmd, waitErr)
				s.reportRestart(err.Error())
				return fmt.Errorf("%s: liveness probe failed: %w", s.name, err)
			}
		}
	}
}

func (s *ProcessService) monitorTick() time.Duration {
	if s.monitorInterval <= 0 {
		return time.Second
	}
	return s.monitorInterval
}

func (s *ProcessService) reportRestart(reason string) {
	if s.onRestart != nil {
		s.onRestart(reason)
	}
}

// terminate sends SIGTERM, then SIGKILL if the process has not been
// reaped by waitErr within the shutdown timeout. waitErr is the same
// channel fed by the single cmd.Wait() goroutine started in Serve; this
// never calls cmd.Wait() itself to avoid a double-wait race.
func (s *ProcessService) terminate(cmd *exec.Cmd, waitErr <-chan error) {
	if cmd.Process == nil {
		return
	}
	_ = cmd.Process.Signal(syscall.SIGTERM)

	select {
	case <-waitErr:
	case <-time.After(s.shutdownTimeout):
		_ = cmd.Process.Kill()
		<-waitErr
	}
}

// String implements fmt.Stringer; suture uses it to identify the service
// in log messages.
func (s *ProcessService) String() string {
	return s.name
}
