// Package filelock serializes writers of the config directory: config.yml
// saves and activity log appends from concurrent dateentry processes.
package filelock

import (
	"fmt"
	"os"
)

const lockFileMode = 0o600

// Lock blocks until it holds an exclusive advisory lock on path, creating
// the file if needed. The returned func releases the lock and closes the file.
func Lock(path string) (unlock func() error, err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFileMode) //nolint:gosec // lock path inside the config dir
	if err != nil {
		return nil, err
	}

	if err := lockFile(f); err != nil {
		_ = f.Close()
		return nil, err
	}

	return func() error {
		unlockErr := unlockFile(f)
		closeErr := f.Close()
		if unlockErr != nil {
			return unlockErr
		}
		return closeErr
	}, nil
}

// With runs fn while holding the lock on path.
func With(path string, fn func() error) (err error) {
	unlock, err := Lock(path)
	if err != nil {
		return fmt.Errorf("locking %s: %w", path, err)
	}
	defer func() {
		if uerr := unlock(); err == nil && uerr != nil {
			err = fmt.Errorf("unlocking %s: %w", path, uerr)
		}
	}()
	return fn()
}
