//go:build unix

package nativefs

import (
	"errors"

	"golang.org/x/sys/unix"
)

// checkAccess performs a plain existence check with access(2). It follows
// symlinks, like the stat-based fallback on other platforms.
func checkAccess(path string) error {
	return unix.Access(path, unix.F_OK)
}

// isCrossDevice reports whether a rename failed because source and
// destination live on different filesystems.
func isCrossDevice(err error) bool {
	return errors.Is(err, unix.EXDEV)
}
