package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileLock provides file-based locking for cross-process synchronization.
// It uses a separate lock file rather than locking the data file directly.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock creates a new FileLock guarding path.
// The lock file is named lockName and lives in the same directory as path.
func NewFileLock(path, lockName string) *FileLock {
	lockPath := filepath.Join(filepath.Dir(path), lockName)
	return &FileLock{
		path: lockPath,
	}
}

// GetConfigLock returns the FileLock guarding the config file.
func GetConfigLock() (*FileLock, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}
	return NewFileLock(filepath.Join(configDir, ConfigFileName), configLockName), nil
}

// ErrLocked is returned by TryLock when another process holds the lock.
var ErrLocked = errors.New("lock held by another process")

// Lock acquires an exclusive lock on the file.
// This blocks until the lock is available.
func (l *FileLock) Lock() error {
	return l.acquire(os.O_CREATE|os.O_RDWR, true, true)
}

// RLock acquires a shared (read) lock on the file.
// Multiple processes can hold a shared lock simultaneously.
// This blocks until the lock is available.
func (l *FileLock) RLock() error {
	return l.acquire(os.O_CREATE|os.O_RDONLY, false, true)
}

// TryLock acquires an exclusive lock without waiting. It returns ErrLocked
// when the lock is taken.
func (l *FileLock) TryLock() error {
	return l.acquire(os.O_CREATE|os.O_RDWR, true, false)
}

// Unlock releases the lock on the file.
func (l *FileLock) Unlock() error {
	if l.file == nil {
		return nil
	}

	if err := unlockFile(l.file); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}

	if err := l.file.Close(); err != nil {
		return fmt.Errorf("failed to close lock file: %w", err)
	}

	l.file = nil
	return nil
}

func (l *FileLock) acquire(flag int, exclusive, wait bool) error {
	if l.file != nil {
		return fmt.Errorf("lock already held")
	}

	f, err := os.OpenFile(l.path, flag, 0644)
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := lockFile(f, exclusive, wait); err != nil {
		f.Close()
		if errors.Is(err, ErrLocked) {
			return err
		}
		kind := "shared"
		if exclusive {
			kind = "exclusive"
		}
		return fmt.Errorf("failed to acquire %s lock: %w", kind, err)
	}

	l.file = f
	return nil
}
