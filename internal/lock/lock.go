// Package lock enforces the single-active-process assumption: one choreclock
// scheduler per household data directory.
package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"syscall"
)

// FileLock is an advisory flock on a well-known path. Held for the lifetime
// of the scheduler process.
type FileLock struct {
	path string
	file *os.File
}

func New(path string) *FileLock {
	return &FileLock{path: path}
}

// TryLock acquires the lock without blocking. Failure means another
// scheduler already owns this data directory.
func (fl *FileLock) TryLock() error {
	if err := os.MkdirAll(filepath.Dir(fl.path), 0755); err != nil {
		return fmt.Errorf("create lock dir: %w", err)
	}
	f, err := os.OpenFile(fl.path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		f.Close()
		return fmt.Errorf("acquire lock (another choreclock may be running): %w", err)
	}

	// Record the holder's pid for operator diagnosis
	if err := f.Truncate(0); err == nil {
		_, _ = f.WriteAt([]byte(strconv.Itoa(os.Getpid())+"\n"), 0)
	}

	fl.file = f
	return nil
}

// Unlock releases the lock and removes the file.
func (fl *FileLock) Unlock() {
	if fl.file == nil {
		return
	}
	_ = syscall.Flock(int(fl.file.Fd()), syscall.LOCK_UN)
	_ = fl.file.Close()
	_ = os.Remove(fl.path)
	fl.file = nil
}
