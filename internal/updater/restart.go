package updater

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/tomtom215/wavealert360/internal/procfile"
)

// SignalRole sends SIGTERM directly to the named role's process, found
// via its role-lock file under lockDir. The supervisor's own liveness
// check then observes the process gone and respawns it with the
// freshly-pulled code. The updater applies it to the dashboard only; the
// resolver and LED service are not signalled after an update.
func SignalRole(lockDir, role string) error {
	lockPath := filepath.Join(lockDir, role+".lock")
	pid, ok := procfile.PIDFromLock(lockPath)
	if !ok {
		return fmt.Errorf("no recorded pid for role %s", role)
	}
	if running, err := process.PidExists(int32(pid)); err != nil || !running {
		return fmt.Errorf("role %s (pid %d) not running", role, pid)
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("find process for role %s: %w", role, err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("signal role %s (pid %d): %w", role, pid, err)
	}
	return nil
}
