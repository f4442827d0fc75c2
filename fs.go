package nativefs

import (
	"io"
	"io/fs"
	"time"
)

// ============================================================================
// Native Filesystem Port
// ============================================================================

// NativeFS is the single pluggable boundary to the operating system's
// filesystem. Production code uses [OSFS]; tests substitute a fake so the
// gateway logic can be exercised without touching disk.
//
// Implementations perform one native call per method and report failures as
// plain errors; the [Gateway] is responsible for wrapping them into
// [PathError] values with operation context.
type NativeFS interface {
	// NewFileChannel opens a byte channel to path with the given flags.
	// Ownership of the returned channel transfers to the caller.
	NewFileChannel(path string, opts ...OpenOption) (Channel, error)

	// ReadAttributes reads the basic attributes of path in a single call.
	ReadAttributes(path string, opts ...LinkOption) (Attributes, error)

	// AttributeView returns a mutable view of the timestamps of path.
	AttributeView(path string, opts ...LinkOption) (AttributeView, error)

	// CheckAccess verifies that path can be accessed. A nil return means
	// the path exists and is reachable.
	CheckAccess(path string) error

	// NewDirStream opens a one-shot stream over the entries of path.
	// The caller must close the stream on every exit path.
	NewDirStream(path string) (DirStream, error)

	// CreateDirectories creates the directory at path, including any
	// missing parents, with the given permission bits.
	CreateDirectories(path string, perm fs.FileMode) error

	// Delete removes exactly one path.
	Delete(path string) error

	// Move renames src to dst with the given flags.
	Move(src, dst string, opts ...CopyOption) error

	// Separator returns the path separator of the native filesystem.
	Separator() string
}

// Channel is a live OS byte channel. It is an independent OS resource owned
// by the caller; [Gateway.Close] must be invoked exactly once on every exit
// path.
type Channel interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer

	// Truncate changes the size of the underlying file.
	Truncate(size int64) error

	// Sync flushes the channel's content to stable storage.
	Sync() error
}

// Attributes is a single-read snapshot of a path's basic metadata.
// CreationTime is the zero value on filesystems that do not record it.
type Attributes struct {
	Size          int64
	ModTime       time.Time
	CreationTime  time.Time
	IsRegularFile bool
	IsDir         bool
}

// AttributeView is a mutable handle for the timestamps of one path.
type AttributeView interface {
	// SetTimes updates the timestamp fields of the path. A nil pointer is
	// the "no change" marker: the corresponding field is left untouched.
	SetTimes(modified, accessed, created *time.Time) error
}

// DirStream produces directory entry names in native iteration order.
// It is finite and one-shot: once exhausted or abandoned it cannot be
// restarted, and Close must release the native handle.
type DirStream interface {
	// Next returns the next entry name, or io.EOF when the stream is
	// exhausted.
	Next() (string, error)

	// Close releases the underlying native directory handle.
	Close() error
}

// ============================================================================
// Pass-Through Option Vocabularies
// ============================================================================
// These flags are forwarded verbatim to the native layer; the gateway does
// not interpret their semantics.

// OpenOption is a flag for NewFileChannel.
type OpenOption int

const (
	// OpenRead opens the channel for reading.
	OpenRead OpenOption = 1 << iota
	// OpenWrite opens the channel for writing.
	OpenWrite
	// OpenCreate creates the file if it does not exist.
	OpenCreate
	// OpenCreateNew creates the file, failing if it already exists.
	OpenCreateNew
	// OpenAppend positions every write at the end of the file.
	OpenAppend
	// OpenTruncate truncates an existing file to zero length.
	OpenTruncate
)

// LinkOption is a flag for attribute operations.
type LinkOption int

const (
	// NoFollowLinks reads attributes of a symlink itself rather than its
	// target.
	NoFollowLinks LinkOption = 1 << iota
)

// CopyOption is a flag for Move.
type CopyOption int

const (
	// AtomicMove requires the move to be performed as a single indivisible
	// operation; if the native layer cannot satisfy that (for example
	// across devices) the move fails instead of degrading.
	AtomicMove CopyOption = 1 << iota
	// ReplaceExisting allows the move to replace an existing destination.
	ReplaceExisting
)

func hasOpenOption(opts []OpenOption, o OpenOption) bool {
	for _, opt := range opts {
		if opt&o != 0 {
			return true
		}
	}
	return false
}

func hasLinkOption(opts []LinkOption, o LinkOption) bool {
	for _, opt := range opts {
		if opt&o != 0 {
			return true
		}
	}
	return false
}

func hasCopyOption(opts []CopyOption, o CopyOption) bool {
	for _, opt := range opts {
		if opt&o != 0 {
			return true
		}
	}
	return false
}
