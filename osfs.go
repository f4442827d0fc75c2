package nativefs

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"
)

// OSFS is the production [NativeFS] backed by the operating system's
// filesystem. Each method issues exactly one native call (plus a fallback
// copy for non-atomic cross-device moves) and returns the OS error
// unchanged; sentinel classification happens through errors.Is chains in the
// Is* helpers.
type OSFS struct {
	// FilePerm is applied to files created through NewFileChannel.
	FilePerm fs.FileMode
}

// NewOSFS creates an OS-backed native filesystem port with default
// permissions.
func NewOSFS() *OSFS {
	return &OSFS{FilePerm: 0644}
}

var _ NativeFS = (*OSFS)(nil)

// NewFileChannel implements NativeFS. *os.File satisfies Channel directly.
func (o *OSFS) NewFileChannel(path string, opts ...OpenOption) (Channel, error) {
	return os.OpenFile(path, openFlags(opts), o.FilePerm)
}

// openFlags maps the pass-through open vocabulary onto os package flags.
// With no flags the channel is read-only.
func openFlags(opts []OpenOption) int {
	read := hasOpenOption(opts, OpenRead)
	write := hasOpenOption(opts, OpenWrite) ||
		hasOpenOption(opts, OpenAppend) ||
		hasOpenOption(opts, OpenTruncate) ||
		hasOpenOption(opts, OpenCreateNew)

	var flag int
	switch {
	case read && write:
		flag = os.O_RDWR
	case write:
		flag = os.O_WRONLY
	default:
		flag = os.O_RDONLY
	}
	if hasOpenOption(opts, OpenCreate) {
		flag |= os.O_CREATE
	}
	if hasOpenOption(opts, OpenCreateNew) {
		flag |= os.O_CREATE | os.O_EXCL
	}
	if hasOpenOption(opts, OpenAppend) {
		flag |= os.O_APPEND
	}
	if hasOpenOption(opts, OpenTruncate) {
		flag |= os.O_TRUNC
	}
	return flag
}

// ReadAttributes implements NativeFS.
func (o *OSFS) ReadAttributes(path string, opts ...LinkOption) (Attributes, error) {
	nofollow := hasLinkOption(opts, NoFollowLinks)

	var info os.FileInfo
	var err error
	if nofollow {
		info, err = os.Lstat(path)
	} else {
		info, err = os.Stat(path)
	}
	if err != nil {
		return Attributes{}, err
	}

	return Attributes{
		Size:          info.Size(),
		ModTime:       info.ModTime(),
		CreationTime:  birthTime(path, info, nofollow),
		IsRegularFile: info.Mode().IsRegular(),
		IsDir:         info.IsDir(),
	}, nil
}

// AttributeView implements NativeFS. The view verifies the path is readable
// before handing out a mutable handle, so a view on a missing path fails
// eagerly rather than on the first SetTimes.
func (o *OSFS) AttributeView(path string, opts ...LinkOption) (AttributeView, error) {
	if _, err := o.ReadAttributes(path, opts...); err != nil {
		return nil, err
	}
	return &osAttributeView{path: path}, nil
}

type osAttributeView struct {
	path string
}

// SetTimes updates only the non-nil timestamp fields. os.Chtimes treats the
// zero time as "leave unchanged", which maps directly onto the nil markers.
func (v *osAttributeView) SetTimes(modified, accessed, created *time.Time) error {
	if modified != nil || accessed != nil {
		var atime, mtime time.Time
		if accessed != nil {
			atime = *accessed
		}
		if modified != nil {
			mtime = *modified
		}
		if err := os.Chtimes(v.path, atime, mtime); err != nil {
			return err
		}
	}
	if created != nil {
		if err := setCreationTime(v.path, *created); err != nil {
			return err
		}
	}
	return nil
}

// CheckAccess implements NativeFS.
func (o *OSFS) CheckAccess(path string) error {
	return checkAccess(path)
}

// dirStreamBatch is the number of names read from the OS per Readdirnames
// call. Entries are produced lazily, one batch at a time.
const dirStreamBatch = 128

// NewDirStream implements NativeFS.
func (o *OSFS) NewDirStream(path string) (DirStream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &osDirStream{f: f}, nil
}

type osDirStream struct {
	f     *os.File
	names []string
	err   error
}

func (s *osDirStream) Next() (string, error) {
	if len(s.names) == 0 {
		if s.err != nil {
			return "", s.err
		}
		names, err := s.f.Readdirnames(dirStreamBatch)
		if len(names) == 0 {
			if err == nil {
				err = io.EOF
			}
			return "", err
		}
		// An error alongside a partial batch is held back until the
		// buffered names drain.
		s.names = names
		s.err = err
	}
	name := s.names[0]
	s.names = s.names[1:]
	return name, nil
}

func (s *osDirStream) Close() error {
	return s.f.Close()
}

// CreateDirectories implements NativeFS. Missing parents are created; a
// directory that already exists is not an error, an existing non-directory
// is.
func (o *OSFS) CreateDirectories(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Delete implements NativeFS.
func (o *OSFS) Delete(path string) error {
	return os.Remove(path)
}

// Move implements NativeFS. Rename is atomic within one filesystem. Across
// devices rename fails; without AtomicMove the move degrades to copy plus
// delete, with AtomicMove the cross-device failure is surfaced.
func (o *OSFS) Move(src, dst string, opts ...CopyOption) error {
	if !hasCopyOption(opts, ReplaceExisting) {
		if _, err := os.Lstat(dst); err == nil {
			return fmt.Errorf("%s: %w", dst, ErrExist)
		}
	}

	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !isCrossDevice(err) {
		return err
	}
	if hasCopyOption(opts, AtomicMove) {
		return fmt.Errorf("%w: %v", ErrCrossDevice, err)
	}
	return o.copyAndDelete(src, dst)
}

func (o *OSFS) copyAndDelete(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, o.FilePerm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}
	return os.Remove(src)
}

// Separator implements NativeFS.
func (o *OSFS) Separator() string {
	return string(os.PathSeparator)
}
