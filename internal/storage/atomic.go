// Package storage provides the crash-safe file primitives shared by the
// schedule, rotation-state, and task-log stores: atomic whole-file replacement
// and typed CSV row access.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// AtomicWriteFile writes content to path via a temp file in the same
// directory followed by a rename, so a crash mid-write can never leave a
// half-written file where the next load will see it. On failure the previous
// file is untouched.
func AtomicWriteFile(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".choreclock-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		// No-ops once the rename has succeeded
		_ = tmp.Close()
		_ = os.Remove(tmpName)
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

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}
