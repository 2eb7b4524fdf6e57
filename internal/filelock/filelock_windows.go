//go:build windows

package filelock

import (
	"math"
	"os"

	"golang.org/x/sys/windows"
)

// The whole file is locked so readers and writers agree on the range.
const lockRange = math.MaxUint32

func lockFile(f *os.File) error {
	return windows.LockFileEx(
		windows.Handle(f.Fd()),
		windows.LOCKFILE_EXCLUSIVE_LOCK,
		0,
		lockRange,
		lockRange,
		new(windows.Overlapped),
	)
}

func unlockFile(f *os.File) error {
	return windows.UnlockFileEx(
		windows.Handle(f.Fd()),
		0,
		lockRange,
		lockRange,
		new(windows.Overlapped),
	)
}
