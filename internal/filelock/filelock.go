// Package filelock serializes writers of a shared file across processes
// using an advisory lock on a sidecar ".lock" file.
package filelock

import (
	"fmt"
	"os"
)

const lockMode = 0o600

// Suffix is appended to a guarded file's path to name its lock file.
const Suffix = ".lock"

// PathFor returns the lock file path guarding target.
func PathFor(target string) string {
	return target + Suffix
}

// Lock blocks until an exclusive lock on lockPath is held and returns the
// function that releases it. The lock file is created if missing and left in
// place after unlock.
func Lock(lockPath string) (func() error, error) {
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, lockMode) //nolint:gosec // lock path derived from catalog path
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}
	if err := lockFile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("acquiring lock %s: %w", lockPath, err)
	}

	return func() error {
		unlockErr := unlockFile(f)
		closeErr := f.Close()
		if unlockErr != nil {
			return fmt.Errorf("releasing lock %s: %w", lockPath, unlockErr)
		}
		return closeErr
	}, nil
}
