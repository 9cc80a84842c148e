// Package procfile implements the appliance's only form of inter-process
// coordination: advisory, PID-bearing role-lock files and atomic
// (write-then-rename) document writes. There is no shared memory and no
// cross-process mutex anywhere in WaveAlert360 — exclusivity, ordering,
// and atomicity between the five processes all rest on these two
// primitives.
package procfile

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
	"golang.org/x/sys/unix"

	"github.com/tomtom215/wavealert360/internal/logging"
)

// RoleLock is a PID-bearing advisory lock file keyed by process role
// (supervisor, updater, resolver, ledservice). Modeled directly on the
// ProcessLock class used by the original watchdog: an exclusive,
// non-blocking flock on a file containing the owning PID, reclaimed at
// startup if the recorded PID is no longer alive.
type RoleLock struct {
	path string
	file *os.File
}

// NewRoleLock returns a lock bound to path. It does not acquire anything
// yet.
func NewRoleLock(path string) *RoleLock {
	return &RoleLock{path: path}
}

// ErrLockHeld is returned by Acquire when another live process already
// holds the lock.
var ErrLockHeld = fmt.Errorf("role lock held by a live process")

// Acquire takes the exclusive, non-blocking lock. If the lock file exists
// but its recorded PID is no longer alive, the lock is reclaimed
// automatically at startup. On success the caller's PID is written into
// the file and the lock is held until Release is called.
func (l *RoleLock) Acquire() error {
	if pid, ok := readPID(l.path); ok && pidAlive(pid) {
		return fmt.Errorf("%w: pid %d", ErrLockHeld, pid)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open role lock %s: %w", l.path, err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		return fmt.Errorf("%w: %s", ErrLockHeld, l.path)
	}

	if err := f.Truncate(0); err != nil {
		f.Close()
		return fmt.Errorf("truncate role lock %s: %w", l.path, err)
	}
	if _, err := f.WriteAt([]byte(strconv.Itoa(os.Getpid())), 0); err != nil {
		f.Close()
		return fmt.Errorf("write role lock %s: %w", l.path, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync role lock %s: %w", l.path, err)
	}

	l.file = f
	return nil
}

// Release unlocks and removes the lock file. Safe to call on an
// unacquired lock.
func (l *RoleLock) Release() error {
	if l.file == nil {
		return nil
	}
	_ = unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("close role lock %s: %w", l.path, err)
	}
	l.file = nil
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove role lock %s: %w", l.path, err)
	}
	return nil
}

// PIDFromLock reads the PID recorded in the role-lock file at path,
// without taking the lock itself. Used by the updater to find another
// role's process so it can signal it directly rather than waiting for
// the supervisor to notice staleness on its own.
func PIDFromLock(path string) (int, bool) {
	return readPID(path)
}

func readPID(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

// pidAlive reports whether pid refers to a live, running process. Uses
// gopsutil instead of a raw kill(pid, 0) syscall so the check is portable
// across the platforms the appliance's toolchain targets.
func pidAlive(pid int) bool {
	running, err := process.PidExists(int32(pid))
	if err != nil {
		logging.Warn().Err(err).Int("pid", pid).Msg("pid liveness check failed, assuming dead")
		return false
	}
	return running
}
