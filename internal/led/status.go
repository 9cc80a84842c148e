package led

import (
	"os"
	"time"

	"github.com/tomtom215/wavealert360/internal/models"
	"github.com/tomtom215/wavealert360/internal/procfile"
)

// PublishStatus atomically writes the current LEDServiceStatus document.
// Called once per monitor tick so consumers always see a fresh file.
func PublishStatus(path string, hardwareAvailable bool, level models.AlertLevel, now time.Time) error {
	status := models.LEDServiceStatus{
		PID:               os.Getpid(),
		HardwareAvailable: hardwareAvailable,
		CurrentLevel:      level,
		LastUpdated:       now,
	}
	return procfile.WriteJSONAtomic(path, status, 0o644)
}
