//go:build windows

package nativefs

import (
	"errors"
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/windows"
)

// birthTime extracts the creation time on Windows, where the file attribute
// data carries it natively.
func birthTime(_ string, info os.FileInfo, _ bool) time.Time {
	data, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return time.Time{}
	}
	return time.Unix(0, data.CreationTime.Nanoseconds())
}

// setCreationTime writes the creation time through SetFileTime. The handle
// is opened for attribute access only, so it coexists with open byte
// channels on the same file.
func setCreationTime(path string, t time.Time) error {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	h, err := windows.CreateFile(p,
		windows.FILE_WRITE_ATTRIBUTES,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS,
		0)
	if err != nil {
		return err
	}
	defer windows.CloseHandle(h)

	ft := windows.NsecToFiletime(t.UnixNano())
	return windows.SetFileTime(h, &ft, nil, nil)
}

// checkAccess performs a plain existence check. Windows has no access(2);
// a stat that follows symlinks is the closest equivalent.
func checkAccess(path string) error {
	_, err := os.Stat(path)
	return err
}

// isCrossDevice reports whether a rename failed because source and
// destination live on different volumes.
func isCrossDevice(err error) bool {
	return errors.Is(err, windows.ERROR_NOT_SAME_DEVICE)
}
