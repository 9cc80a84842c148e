package led

import (
	"context"
	"time"

	"github.com/tomtom215/wavealert360/internal/config"
	"github.com/tomtom215/wavealert360/internal/logging"
)

// Service runs the LED service's main loop: read the control token,
// publish status, drive the matching pattern, repeat. A single ticking
// loop, like the resolver and updater — no suture tree of its own.
type Service struct {
	cfg         config.LEDConfig
	controlPath string
	statusPath  string
	driver      Driver
}

// New wires a Service. If cfg.Simulate is set, or a future hardware
// driver fails to initialize, the service falls back to
// SimulatedDriver and reports hardware_available=false; this is never
// fatal.
func New(cfg config.LEDConfig, controlPath, statusPath string) *Service {
	driver, err := newHardwareDriver(cfg.StripPixelCount)
	if cfg.Simulate || err != nil {
		if err != nil {
			logging.Warn().Err(err).Msg("led hardware unavailable, running in simulation mode")
		}
		driver = NewSimulatedDriver()
	}
	return &Service{cfg: cfg, controlPath: controlPath, statusPath: statusPath, driver: driver}
}

// Run drives the read-publish-pattern loop until ctx is cancelled. Each
// pattern run is bounded by cfg.MonitorInterval, so a control token
// change is never observed later than one monitor interval after it
// was written, however long the current blink pattern would otherwise
// run for.
func (s *Service) Run(ctx context.Context) error {
	defer AllOff(s.driver)

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		level := ReadControlToken(s.controlPath)

		if err := PublishStatus(s.statusPath, s.driver.Available(), level, time.Now()); err != nil {
			logging.Err(err).Msg("failed to publish led status")
		}

		patternCtx, cancel := context.WithTimeout(ctx, s.cfg.MonitorInterval)
		err := RunPattern(patternCtx, s.driver, level, s.cfg.BlinkIterations, s.cfg.BlinkStepDelay)
		cancel()
		if err != nil {
			return err
		}
	}
}
