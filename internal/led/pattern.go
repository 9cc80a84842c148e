package led

import (
	"context"
	"time"

	"github.com/tomtom215/wavealert360/internal/models"
)

// stripFor maps an alert level to the strip that should blink. OFF and
// any unrecognized level blink nothing: every strip stays off.
func stripFor(level models.AlertLevel) (Strip, bool) {
	switch level {
	case models.AlertDanger:
		return StripRed, true
	case models.AlertCaution:
		return StripYellow, true
	case models.AlertSafe:
		return StripGreen, true
	default:
		return "", false
	}
}

// RunPattern blinks the strip for level on/off iterations times with
// stepDelay between transitions, holding every other strip off for the
// duration so only one strip is ever active at a time. Returns early,
// without error, if ctx is cancelled mid-pattern so a shutdown or a
// changed control token isn't held up by a long blink run.
func RunPattern(ctx context.Context, d Driver, level models.AlertLevel, iterations int, stepDelay time.Duration) error {
	active, blinking := stripFor(level)

	for _, s := range allStrips {
		if s == active {
			continue
		}
		if err := d.SetStrip(s, false); err != nil {
			return err
		}
	}

	if !blinking {
		// Mirrors the blinking loop below: ctx expiring (including a
		// bounded monitor-interval deadline, not just shutdown) is a
		// graceful early return, never an error.
		_ = waitOrDone(ctx, stepDelay)
		return nil
	}

	for i := 0; i < iterations; i++ {
		if err := d.SetStrip(active, true); err != nil {
			return err
		}
		if err := waitOrDone(ctx, stepDelay); err != nil {
			return nil
		}
		if err := d.SetStrip(active, false); err != nil {
			return err
		}
		if err := waitOrDone(ctx, stepDelay); err != nil {
			return nil
		}
	}
	return nil
}

func waitOrDone(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
