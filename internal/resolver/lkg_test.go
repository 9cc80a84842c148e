package resolver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/wavealert360/internal/models"
)

func TestLKGStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lkg.json")
	store := NewLKGStore(path)

	want := models.ResolverDecision{
		Level:      models.AlertCaution,
		Source:     models.SourceLive,
		ObtainedAt: time.Now().Truncate(time.Second),
	}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Level != want.Level || got.Source != want.Source {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestLKGStoreLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	store := NewLKGStore(path)

	_, err := store.Load()
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist", err)
	}
}
