package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// AtomicWriteFile replaces path with data without ever exposing a partial
// file: the data is staged in a temp file in the target directory, synced,
// then renamed over the target. An existing target keeps its permissions;
// perm applies only to new files.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	base := filepath.Base(path)
	tmp, err := os.CreateTemp(filepath.Dir(path), ".recplan-*.tmp")
	if err != nil {
		return fmt.Errorf("stage %s: %w", base, err)
	}
	tmpPath := tmp.Name()
	discard := func(err error) error {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		return discard(fmt.Errorf("stage %s: %w", base, err))
	}
	// Flush before rename; a crash must not leave the target truncated.
	if err := tmp.Sync(); err != nil {
		return discard(fmt.Errorf("sync %s: %w", base, err))
	}
	if err := tmp.Chmod(perm); err != nil {
		return discard(fmt.Errorf("stage %s: %w", base, err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("stage %s: %w", base, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", base, err)
	}
	return nil
}
