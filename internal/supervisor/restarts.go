package supervisor

import (
	"sync"
	"time"

	"github.com/tomtom215/wavealert360/internal/models"
	"github.com/tomtom215/wavealert360/internal/procfile"
)

// RestartTracker maintains the per-role RestartRecord bookkeeping: a
// windowed counter that the dashboard and heartbeat log can render,
// independent of (and in addition to) suture's own internal failure
// accounting which actually throttles the restarts.
type RestartTracker struct {
	mu      sync.Mutex
	records map[string]*models.RestartRecord
	window  time.Duration
	maxInWindow int
	statePath string
}

// NewRestartTracker builds a tracker. If statePath is non-empty, each
// update is persisted atomically so the dashboard can read it from a
// separate process.
func NewRestartTracker(window time.Duration, maxInWindow int, statePath string) *RestartTracker {
	return &RestartTracker{
		records:     make(map[string]*models.RestartRecord),
		window:      window,
		maxInWindow: maxInWindow,
		statePath:   statePath,
	}
}

// Record logs a restart for role, rolling the window counter over if it
// has expired and setting CooldownUntil once the cap is hit.
func (t *RestartTracker) Record(role, reason string) models.RestartRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	rec, ok := t.records[role]
	if !ok {
		rec = &models.RestartRecord{Name: role}
		t.records[role] = rec
	}

	if rec.InCooldown(now) {
		// Still suppressed; the record itself doesn't change further
		// until the cooldown elapses, per restart_policy()'s "skip until
		// the window advances" behavior.
		rec.LastFailureReason = reason
		t.persist()
		return *rec
	}

	if !rec.LastStart.IsZero() && now.Sub(rec.LastStart) > t.window {
		rec.RestartCountInWindow = 0
	}

	rec.LastStart = now
	rec.RestartCountInWindow++
	rec.LastFailureReason = reason

	if rec.RestartCountInWindow > t.maxInWindow {
		rec.CooldownUntil = now.Add(t.window)
	}

	t.persist()
	return *rec
}

// Get returns a copy of the record for role, if any.
func (t *RestartTracker) Get(role string) (models.RestartRecord, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, ok := t.records[role]
	if !ok {
		return models.RestartRecord{}, false
	}
	return *rec, true
}

// All returns a snapshot of every tracked role's record.
func (t *RestartTracker) All() []models.RestartRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.RestartRecord, 0, len(t.records))
	for _, rec := range t.records {
		out = append(out, *rec)
	}
	return out
}

// persist must be called with t.mu held.
func (t *RestartTracker) persist() {
	if t.statePath == "" {
		return
	}
	snapshot := make([]models.RestartRecord, 0, len(t.records))
	for _, rec := range t.records {
		snapshot = append(snapshot, *rec)
	}
	_ = procfile.WriteJSONAtomic(t.statePath, snapshot, 0o644)
}
