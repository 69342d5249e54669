package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SaveAtomic stages content into a temporary file next to path and renames it
// over the destination only after write succeeds completely. On any failure
// the destination is left untouched and the temporary file is removed, so a
// crashed or failed save never corrupts an existing file.
func SaveAtomic(path string, write func(w io.Writer) error) error {
	if path == "" {
		return fmt.Errorf("store: save path cannot be empty")
	}
	if write == nil {
		return fmt.Errorf("store: save writer cannot be nil")
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("store: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if err := write(tmp); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("store: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: replace destination: %w", err)
	}
	return nil
}
