package resolver

import (
	"errors"
	"fmt"
	"os"

	"github.com/tomtom215/wavealert360/internal/models"
	"github.com/tomtom215/wavealert360/internal/procfile"
)

// LKGStore persists the last-known-good ResolverDecision to disk so a
// resolver restart, or a double failure of cloud and weather fallback,
// still has a recent decision to serve instead of going straight to
// failsafe SAFE.
type LKGStore struct {
	path string
}

// NewLKGStore builds a store backed by path.
func NewLKGStore(path string) *LKGStore {
	return &LKGStore{path: path}
}

// Save atomically persists decision as the new last-known-good value.
func (s *LKGStore) Save(decision models.ResolverDecision) error {
	if err := procfile.WriteJSONAtomic(s.path, decision, 0o644); err != nil {
		return fmt.Errorf("persist lkg cache: %w", err)
	}
	return nil
}

// Load reads the persisted decision. A missing file is reported via
// os.ErrNotExist so callers can distinguish "never written" from
// "corrupt".
func (s *LKGStore) Load() (models.ResolverDecision, error) {
	var decision models.ResolverDecision
	if err := procfile.ReadJSON(s.path, &decision); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.ResolverDecision{}, os.ErrNotExist
		}
		return models.ResolverDecision{}, err
	}
	return decision, nil
}
