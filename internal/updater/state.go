package updater

import (
	"errors"
	"os"
	"time"

	"github.com/tomtom215/wavealert360/internal/models"
	"github.com/tomtom215/wavealert360/internal/procfile"
)

// StateStore persists models.UpdateState, replacing the original's bare
// ".last_commit" text file with a structured, atomically-written
// document that also records the previous commit for rollback context.
type StateStore struct {
	path string
}

// NewStateStore builds a store backed by path.
func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

// Load reads the persisted state. A missing file returns a zero-value
// state and no error: first run has no prior commit to compare against.
func (s *StateStore) Load() (models.UpdateState, error) {
	var state models.UpdateState
	err := procfile.ReadJSON(s.path, &state)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return models.UpdateState{}, nil
	}
	return state, err
}

// Save records the applied commit, keeping the prior one for rollback
// bookkeeping.
func (s *StateStore) Save(newCommit string, previous models.UpdateState, now time.Time) error {
	state := models.UpdateState{
		CommitHash:     newCommit,
		PreviousCommit: previous.CommitHash,
		UpdatedAt:      now,
	}
	return procfile.WriteJSONAtomic(s.path, state, 0o644)
}
