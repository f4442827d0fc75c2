package nativefs

import (
	"io"
	"io/fs"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockNativeFS is a testify mock of the native filesystem port. Variadic
// option arguments are passed to Called as a single slice, so expectations
// match on the full option set (nil for calls without options).
type MockNativeFS struct {
	mock.Mock
}

var _ NativeFS = (*MockNativeFS)(nil)

func (m *MockNativeFS) NewFileChannel(path string, opts ...OpenOption) (Channel, error) {
	args := m.Called(path, opts)
	ch, _ := args.Get(0).(Channel)
	return ch, args.Error(1)
}

func (m *MockNativeFS) ReadAttributes(path string, opts ...LinkOption) (Attributes, error) {
	args := m.Called(path, opts)
	attrs, _ := args.Get(0).(Attributes)
	return attrs, args.Error(1)
}

func (m *MockNativeFS) AttributeView(path string, opts ...LinkOption) (AttributeView, error) {
	args := m.Called(path, opts)
	view, _ := args.Get(0).(AttributeView)
	return view, args.Error(1)
}

func (m *MockNativeFS) CheckAccess(path string) error {
	return m.Called(path).Error(0)
}

func (m *MockNativeFS) NewDirStream(path string) (DirStream, error) {
	args := m.Called(path)
	stream, _ := args.Get(0).(DirStream)
	return stream, args.Error(1)
}

func (m *MockNativeFS) CreateDirectories(path string, perm fs.FileMode) error {
	return m.Called(path, perm).Error(0)
}

func (m *MockNativeFS) Delete(path string) error {
	return m.Called(path).Error(0)
}

func (m *MockNativeFS) Move(src, dst string, opts ...CopyOption) error {
	return m.Called(src, dst, opts).Error(0)
}

func (m *MockNativeFS) Separator() string {
	return m.Called().String(0)
}

// MockAttributeView is a testify mock of a mutable timestamp view.
type MockAttributeView struct {
	mock.Mock
}

var _ AttributeView = (*MockAttributeView)(nil)

func (m *MockAttributeView) SetTimes(modified, accessed, created *time.Time) error {
	return m.Called(modified, accessed, created).Error(0)
}

// fakeChannel is a hand-rolled Channel that counts closes.
type fakeChannel struct {
	closes   int
	closeErr error
}

func (c *fakeChannel) Read(p []byte) (int, error)     { return 0, io.EOF }
func (c *fakeChannel) Write(p []byte) (int, error)    { return len(p), nil }
func (c *fakeChannel) Seek(int64, int) (int64, error) { return 0, nil }
func (c *fakeChannel) Truncate(int64) error           { return nil }
func (c *fakeChannel) Sync() error                    { return nil }
func (c *fakeChannel) Close() error                   { c.closes++; return c.closeErr }

// fakeDirStream yields a fixed entry list and counts closes. If err is set
// it is returned once the names are exhausted, instead of io.EOF.
type fakeDirStream struct {
	names  []string
	err    error
	closes int
}

func (s *fakeDirStream) Next() (string, error) {
	if len(s.names) == 0 {
		if s.err != nil {
			return "", s.err
		}
		return "", io.EOF
	}
	name := s.names[0]
	s.names = s.names[1:]
	return name, nil
}

func (s *fakeDirStream) Close() error {
	s.closes++
	return nil
}
