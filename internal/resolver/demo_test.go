package resolver

import (
	"testing"
	"time"

	"github.com/tomtom215/wavealert360/internal/models"
)

func TestDemoCyclerAdvancesAfterPause(t *testing.T) {
	c := NewDemoCycler(10 * time.Millisecond)
	start := time.Now()

	first := c.Step(start, 0)
	if first != models.AlertSafe {
		t.Fatalf("first step = %v, want AlertSafe", first)
	}

	// Before the pause elapses, stays on the same step.
	still := c.Step(start.Add(time.Millisecond), 0)
	if still != models.AlertSafe {
		t.Fatalf("step before pause elapsed = %v, want AlertSafe", still)
	}

	advanced := c.Step(start.Add(20*time.Millisecond), 0)
	if advanced != models.AlertCaution {
		t.Fatalf("step after pause elapsed = %v, want AlertCaution", advanced)
	}
}

func TestDemoCyclerResetReturnsToFirstStep(t *testing.T) {
	c := NewDemoCycler(5 * time.Millisecond)
	start := time.Now()
	c.Step(start, 0)
	c.Step(start.Add(10*time.Millisecond), 0)

	c.Reset()
	if got := c.Step(start, 0); got != models.AlertSafe {
		t.Fatalf("step after reset = %v, want AlertSafe", got)
	}
}

func TestDemoCyclerUsesPerCallPauseOverride(t *testing.T) {
	c := NewDemoCycler(time.Hour)
	start := time.Now()
	c.Step(start, 0)

	advanced := c.Step(start.Add(time.Millisecond), time.Millisecond)
	if advanced != models.AlertCaution {
		t.Fatalf("step with override pause = %v, want AlertCaution", advanced)
	}
}
