package updater

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/wavealert360/internal/models"
)

func TestStateStoreLoadMissingReturnsZeroValue(t *testing.T) {
	store := NewStateStore(filepath.Join(t.TempDir(), "update_state.json"))

	state, err := store.Load()
	if err != nil {
		t.Fatalf("Load() on missing file error = %v, want nil", err)
	}
	if state.CommitHash != "" {
		t.Errorf("Load() on missing file = %+v, want zero value", state)
	}
}

func TestStateStoreSaveThenLoadRoundTrips(t *testing.T) {
	store := NewStateStore(filepath.Join(t.TempDir(), "update_state.json"))

	previous := models.UpdateState{CommitHash: "aaaa"}
	if err := store.Save("bbbb", previous, time.Now()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.CommitHash != "bbbb" || got.PreviousCommit != "aaaa" {
		t.Errorf("Load() = %+v, want CommitHash=bbbb PreviousCommit=aaaa", got)
	}
}
