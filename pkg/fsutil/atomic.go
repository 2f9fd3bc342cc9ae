package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is used when the caller passes a zero mode.
const DefaultFileMode os.FileMode = 0644

// WriteAtomic writes content through a temp file in the target's
// directory and renames it into place, so a crash mid-write never
// leaves a truncated file. The temp file is removed on any failure.
func WriteAtomic(path string, content []byte, mode os.FileMode) error {
	if mode == 0 {
		mode = DefaultFileMode
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}
