//go:build darwin

package nativefs

import (
	"fmt"
	"os"
	"syscall"
	"time"
)

// birthTime extracts the birth time on macOS, where Stat_t carries
// Birthtimespec natively.
func birthTime(_ string, info os.FileInfo, _ bool) time.Time {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}
	}
	return time.Unix(stat.Birthtimespec.Sec, stat.Birthtimespec.Nsec)
}

// setCreationTime is unsupported on macOS through the portable syscall
// surface. The creation-time capability probe turns this into a clean
// "unsupported" verdict.
func setCreationTime(path string, _ time.Time) error {
	return fmt.Errorf("set creation time %s: %w", path, ErrNotSupported)
}
