package led

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tomtom215/wavealert360/internal/models"
)

func TestReadControlTokenMapsPatterns(t *testing.T) {
	tests := []struct {
		token string
		want  models.AlertLevel
	}{
		{"PATTERN:RED", models.AlertDanger},
		{"PATTERN:YELLOW", models.AlertCaution},
		{"PATTERN:GREEN", models.AlertSafe},
		{"OFF", models.AlertOff},
		{"garbage", models.AlertSafe},
	}

	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "control")
		if err := os.WriteFile(path, []byte(tt.token), 0o644); err != nil {
			t.Fatalf("write control file: %v", err)
		}
		if got := ReadControlToken(path); got != tt.want {
			t.Errorf("ReadControlToken(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestReadControlTokenMissingFileIsSafe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing")
	if got := ReadControlToken(path); got != models.AlertSafe {
		t.Errorf("ReadControlToken(missing) = %v, want AlertSafe", got)
	}
}
