package supervisor

import (
	"fmt"
	"time"

	"github.com/tomtom215/wavealert360/internal/models"
	"github.com/tomtom215/wavealert360/internal/procfile"
)

// LEDStatusProbe builds a LivenessProbe that fails when the LED
// service's published status document is missing or older than maxAge —
// the "freshness of the role's status file" half of monitor_tick(), on
// top of the plain process-liveness check ProcessService already does
// via cmd.Wait().
func LEDStatusProbe(statusPath string, maxAge time.Duration) LivenessProbe {
	return func() error {
		var status models.LEDServiceStatus
		if err := procfile.ReadJSON(statusPath, &status); err != nil {
			return fmt.Errorf("led status unreadable: %w", err)
		}
		if !status.Fresh(maxAge, time.Now()) {
			return fmt.Errorf("led status stale: last_updated=%s", status.LastUpdated)
		}
		return nil
	}
}
