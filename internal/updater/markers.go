package updater

import "os"

// EmergencyStopActive reports whether the emergency-stop marker file
// exists. When active, the updater must not apply any update even if
// one is available.
func EmergencyStopActive(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ManualModeActive reports whether the manual-mode marker file exists.
// In manual mode the updater still checks and logs available updates
// but does not apply them, so an operator can stage a controlled
// upgrade window.
func ManualModeActive(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
