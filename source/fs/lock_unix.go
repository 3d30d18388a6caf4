//go:build unix

package fs

import (
	"errors"

	"golang.org/x/sys/unix"
)

func lockExclusive(fd uintptr) error {
	return unix.Flock(int(fd), unix.LOCK_EX)
}

func unlock(fd uintptr) error {
	return unix.Flock(int(fd), unix.LOCK_UN)
}

// isLockNotSupportedError reports errors returned by filesystems without
// flock support, typically NFS or SMB mounts.
func isLockNotSupportedError(err error) bool {
	return errors.Is(err, unix.ENOTSUP) ||
		errors.Is(err, unix.EOPNOTSUPP) ||
		errors.Is(err, unix.ENOLCK)
}
