package procfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// WriteAtomic writes data to path by creating a temp file in the same
// directory, flushing it, and renaming it over path. Rename within a
// single filesystem is atomic, so a concurrent reader either sees the old
// content or the new content in full, never a torn value — this backs
// every document the five processes share (control token, LKG cache,
// LED status, update state).
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once the rename below succeeds

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file for %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file for %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file for %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("chmod temp file for %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename into place %s: %w", path, err)
	}
	return nil
}

// WriteAtomicFallback is WriteAtomic, but on failure falls back to a
// direct (non-atomic) write so the writer makes forward progress even on
// filesystems without atomic rename support. Used only for the control
// token, where a late but present write beats none at all.
func WriteAtomicFallback(path string, data []byte, perm os.FileMode) error {
	if err := WriteAtomic(path, data, perm); err != nil {
		if fallbackErr := os.WriteFile(path, data, perm); fallbackErr != nil {
			return fmt.Errorf("atomic write failed (%v) and fallback write failed: %w", err, fallbackErr)
		}
	}
	return nil
}

// WriteJSONAtomic marshals v and writes it atomically.
func WriteJSONAtomic(path string, v interface{}, perm os.FileMode) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json for %s: %w", path, err)
	}
	return WriteAtomic(path, data, perm)
}

// ReadJSON unmarshals the document at path into v. Returns an error
// wrapping os.ErrNotExist when the file is absent so callers can treat
// absence distinctly from corruption.
func ReadJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
