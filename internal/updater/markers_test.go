package updater

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmergencyStopActive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "EMERGENCY_STOP")
	if EmergencyStopActive(path) {
		t.Error("EmergencyStopActive() = true before marker exists")
	}

	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write marker: %v", err)
	}
	if !EmergencyStopActive(path) {
		t.Error("EmergencyStopActive() = false after marker written")
	}
}

func TestManualModeActive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "MANUAL_MODE")
	if ManualModeActive(path) {
		t.Error("ManualModeActive() = true before marker exists")
	}

	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write marker: %v", err)
	}
	if !ManualModeActive(path) {
		t.Error("ManualModeActive() = false after marker written")
	}
}
