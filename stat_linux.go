//go:build linux

package nativefs

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// birthTime extracts the birth time on Linux via statx(2). Birth time
// requires kernel 4.11+ and filesystem support; when the kernel does not
// report STATX_BTIME the zero value is returned.
func birthTime(path string, _ os.FileInfo, nofollow bool) time.Time {
	var flags int
	if nofollow {
		flags = unix.AT_SYMLINK_NOFOLLOW
	}

	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, flags, unix.STATX_BTIME, &stx); err != nil {
		return time.Time{}
	}
	if stx.Mask&unix.STATX_BTIME == 0 {
		return time.Time{}
	}
	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
}

// setCreationTime is unsupported on Linux: there is no syscall to write the
// birth time. The creation-time capability probe turns this into a clean
// "unsupported" verdict.
func setCreationTime(path string, _ time.Time) error {
	return fmt.Errorf("set creation time %s: %w", path, ErrNotSupported)
}
