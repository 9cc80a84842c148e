package led

import (
	"os"

	"github.com/tomtom215/wavealert360/internal/models"
)

// ReadControlToken reads and parses the control token file. A read
// failure or unrecognized content collapses to models.AlertSafe: the
// fallback level is always SAFE, never DANGER, whenever no
// authoritative signal is available. An explicit OFF token is itself
// authoritative and maps to models.AlertOff, which clears every strip
// instead of blinking green.
func ReadControlToken(path string) models.AlertLevel {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.AlertSafe
	}

	token, ok := models.ParseControlToken(string(data))
	if !ok {
		return models.AlertSafe
	}
	return models.LevelForToken(token)
}
