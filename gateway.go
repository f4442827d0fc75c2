package nativefs

import (
	"io"
	"io/fs"
	"iter"
	"time"

	"go.uber.org/zap"
)

// Gateway translates logical filesystem intents into native calls on a
// [NativeFS] and normalizes the results. It holds no state between calls, so
// one Gateway may be shared freely across goroutines; concurrency guarantees
// are exactly those of the underlying native filesystem.
//
// All operations are synchronous and blocking. There is no retry logic and
// no cancellation: a native call runs to completion or failure on the
// calling goroutine.
type Gateway struct {
	native     NativeFS
	logger     *zap.Logger
	dirMode    fs.FileMode
	tempPrefix string

	// now supplies the reference instant for the creation-time probe.
	// Overridable in tests.
	now func() time.Time
}

// New creates a Gateway over the given native filesystem port.
func New(native NativeFS, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		native:     native,
		logger:     zap.NewNop(),
		dirMode:    defaultDirMode,
		tempPrefix: defaultTempPrefix,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Open requests a byte channel for path with the given flags. Ownership of
// the channel transfers to the caller, who must release it with [Gateway.Close]
// exactly once. Depending on the flags the call may create the file.
func (g *Gateway) Open(path string, opts ...OpenOption) (Channel, error) {
	ch, err := g.native.NewFileChannel(path, opts...)
	if err != nil {
		return nil, &PathError{Op: "open", Path: path, Err: err}
	}
	g.logger.Debug("opened channel", zap.String("path", path))
	return ch, nil
}

// IsRegularFile reads the attributes of path once and reports whether it is
// a regular file. A path that does not exist yields false without error.
func (g *Gateway) IsRegularFile(path string, opts ...LinkOption) (bool, error) {
	attrs, err := g.native.ReadAttributes(path, opts...)
	if err != nil {
		if IsNotExist(err) {
			return false, nil
		}
		return false, &PathError{Op: "stat", Path: path, Err: err}
	}
	return attrs.IsRegularFile, nil
}

// IsDirectory reads the attributes of path once and reports whether it is a
// directory. A path that does not exist yields false without error.
func (g *Gateway) IsDirectory(path string, opts ...LinkOption) (bool, error) {
	attrs, err := g.native.ReadAttributes(path, opts...)
	if err != nil {
		if IsNotExist(err) {
			return false, nil
		}
		return false, &PathError{Op: "stat", Path: path, Err: err}
	}
	return attrs.IsDir, nil
}

// Exists reports whether an access check on path succeeds.
//
// Known imprecision, preserved for compatibility: any failed check is
// reported as false, so a permission-denied path is indistinguishable from
// an absent one.
func (g *Gateway) Exists(path string) bool {
	return g.native.CheckAccess(path) == nil
}

// List returns a lazy, one-shot sequence over the entries of path, in
// whatever order the native layer yields them. The underlying directory
// handle is released on every exit path, including early break and error.
// Errors are yielded in place of entries and terminate the sequence.
func (g *Gateway) List(path string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		stream, err := g.native.NewDirStream(path)
		if err != nil {
			yield("", &PathError{Op: "list", Path: path, Err: err})
			return
		}
		defer stream.Close()
		for {
			name, err := stream.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield("", &PathError{Op: "list", Path: path, Err: err})
				return
			}
			if !yield(name, nil) {
				return
			}
		}
	}
}

// CreateDirectories creates the directory at path and any missing parents.
func (g *Gateway) CreateDirectories(path string) error {
	if err := g.native.CreateDirectories(path, g.dirMode); err != nil {
		return &PathError{Op: "mkdir", Path: path, Err: err}
	}
	g.logger.Debug("created directories", zap.String("path", path))
	return nil
}

// GetLastModifiedTime reads the attributes of path once and returns the
// last-modified timestamp.
func (g *Gateway) GetLastModifiedTime(path string, opts ...LinkOption) (time.Time, error) {
	attrs, err := g.native.ReadAttributes(path, opts...)
	if err != nil {
		return time.Time{}, &PathError{Op: "stat", Path: path, Err: err}
	}
	return attrs.ModTime, nil
}

// GetCreationTime reads the attributes of path once and returns the
// creation timestamp. On filesystems that do not record creation time the
// result is the zero value.
func (g *Gateway) GetCreationTime(path string, opts ...LinkOption) (time.Time, error) {
	attrs, err := g.native.ReadAttributes(path, opts...)
	if err != nil {
		return time.Time{}, &PathError{Op: "stat", Path: path, Err: err}
	}
	return attrs.CreationTime, nil
}

// SetLastModifiedTime sets only the modified-time field of path, passing
// "no change" markers for the access and creation fields.
func (g *Gateway) SetLastModifiedTime(path string, t time.Time) error {
	view, err := g.native.AttributeView(path)
	if err != nil {
		return &PathError{Op: "settimes", Path: path, Err: err}
	}
	if err := view.SetTimes(&t, nil, nil); err != nil {
		return &PathError{Op: "settimes", Path: path, Err: err}
	}
	return nil
}

// SetCreationTime sets only the creation-time field of path, passing
// "no change" markers for the modified and access fields.
func (g *Gateway) SetCreationTime(path string, t time.Time, opts ...LinkOption) error {
	view, err := g.native.AttributeView(path, opts...)
	if err != nil {
		return &PathError{Op: "settimes", Path: path, Err: err}
	}
	if err := view.SetTimes(nil, nil, &t); err != nil {
		return &PathError{Op: "settimes", Path: path, Err: err}
	}
	return nil
}

// Delete removes exactly one path. Failures, including "not found" and
// "directory not empty", surface as typed errors.
func (g *Gateway) Delete(path string) error {
	if err := g.native.Delete(path); err != nil {
		return &PathError{Op: "delete", Path: path, Err: err}
	}
	g.logger.Debug("deleted", zap.String("path", path))
	return nil
}

// Move forwards to the native move primitive with the given flags. With
// [AtomicMove] the move fails rather than degrading when the native layer
// cannot perform it atomically.
func (g *Gateway) Move(src, dst string, opts ...CopyOption) error {
	if err := g.native.Move(src, dst, opts...); err != nil {
		return &PathError{Op: "move", Path: src, Err: err}
	}
	g.logger.Debug("moved", zap.String("from", src), zap.String("to", dst))
	return nil
}

// Close releases the channel's underlying OS resource. It must be invoked
// exactly once per channel, as the sole finalizer on every exit path.
func (g *Gateway) Close(ch Channel) error {
	if err := ch.Close(); err != nil {
		return &PathError{Op: "close", Path: "", Err: err}
	}
	return nil
}

// Separator returns the path-separator of the native filesystem in use.
func (g *Gateway) Separator() string {
	return g.native.Separator()
}
