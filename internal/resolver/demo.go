package resolver

import (
	"sync"
	"time"

	"github.com/tomtom215/wavealert360/internal/models"
)

// DemoCycler advances through models.DemoCycle on a fixed pause between
// steps, used whenever the cloud reports device_mode=DEMO, or whenever
// the last-known-good cache says the device was last in DEMO mode. The
// cycle position itself is kept in memory only, so a resolver restart
// always restarts the cycle at SAFE, but the mode flag and pause survive
// in the LKG cache: an offline restart during a demo resumes cycling
// rather than freezing on one level.
type DemoCycler struct {
	mu       sync.Mutex
	index    int
	lastStep time.Time
	pause    time.Duration
}

// NewDemoCycler builds a cycler with the given default pause; Step
// overrides it per-call so the cloud's demo_pause_seconds always wins.
func NewDemoCycler(defaultPause time.Duration) *DemoCycler {
	return &DemoCycler{pause: defaultPause}
}

// Step returns the current demo alert level, advancing to the next one
// in models.DemoCycle if pause has elapsed since the last advance.
func (c *DemoCycler) Step(now time.Time, pause time.Duration) models.AlertLevel {
	c.mu.Lock()
	defer c.mu.Unlock()

	if pause <= 0 {
		pause = c.pause
	}

	if c.lastStep.IsZero() {
		c.lastStep = now
		return models.DemoCycle[c.index]
	}

	if now.Sub(c.lastStep) >= pause {
		c.index = (c.index + 1) % len(models.DemoCycle)
		c.lastStep = now
	}
	return models.DemoCycle[c.index]
}

// Reset returns the cycler to its first step, used when device_mode
// transitions away from DEMO so the next DEMO entry starts fresh.
func (c *DemoCycler) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = 0
	c.lastStep = time.Time{}
}
