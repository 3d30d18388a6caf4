//go:build windows

package fs

import (
	"errors"

	"golang.org/x/sys/windows"
)

func lockExclusive(fd uintptr) error {
	ol := new(windows.Overlapped)
	return windows.LockFileEx(windows.Handle(fd), windows.LOCKFILE_EXCLUSIVE_LOCK, 0, 1, 0, ol)
}

func unlock(fd uintptr) error {
	ol := new(windows.Overlapped)
	return windows.UnlockFileEx(windows.Handle(fd), 0, 1, 0, ol)
}

func isLockNotSupportedError(err error) bool {
	return errors.Is(err, windows.ERROR_NOT_SUPPORTED)
}
