package nativefs

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"
	"time"
)

func newTestGateway(t *testing.T) (*Gateway, string) {
	t.Helper()
	return New(NewOSFS()), t.TempDir()
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
}

func TestOSFSExists(t *testing.T) {
	g, dir := newTestGateway(t)
	file := filepath.Join(dir, "present.txt")
	writeTestFile(t, file, "x")

	if !g.Exists(file) {
		t.Errorf("Exists(%s) = false, want true", file)
	}
	if g.Exists(filepath.Join(dir, "absent.txt")) {
		t.Error("Exists on a missing path = true, want false")
	}
}

func TestOSFSOpenCreateWriteRead(t *testing.T) {
	g, dir := newTestGateway(t)
	file := filepath.Join(dir, "data.bin")

	ch, err := g.Open(file, OpenWrite, OpenCreateNew)
	if err != nil {
		t.Fatalf("Open for create failed: %v", err)
	}
	if _, err := ch.Write([]byte("hello")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := g.Close(ch); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	ch, err = g.Open(file, OpenRead)
	if err != nil {
		t.Fatalf("Open for read failed: %v", err)
	}
	defer g.Close(ch)

	content, err := io.ReadAll(ch)
	if err != nil {
		t.Fatalf("reading channel: %v", err)
	}
	if string(content) != "hello" {
		t.Errorf("content = %q, want %q", content, "hello")
	}
}

func TestOSFSOpenCreateNewFailsOnExisting(t *testing.T) {
	g, dir := newTestGateway(t)
	file := filepath.Join(dir, "taken")
	writeTestFile(t, file, "x")

	_, err := g.Open(file, OpenWrite, OpenCreateNew)
	if !IsExist(err) {
		t.Errorf("Open with CreateNew on existing file: err = %v, want exists", err)
	}
}

func TestOSFSOpenAppend(t *testing.T) {
	g, dir := newTestGateway(t)
	file := filepath.Join(dir, "log")
	writeTestFile(t, file, "one,")

	ch, err := g.Open(file, OpenAppend)
	if err != nil {
		t.Fatalf("Open append failed: %v", err)
	}
	if _, err := ch.Write([]byte("two")); err != nil {
		t.Fatalf("append write failed: %v", err)
	}
	g.Close(ch)

	content, _ := os.ReadFile(file)
	if string(content) != "one,two" {
		t.Errorf("content = %q, want %q", content, "one,two")
	}
}

func TestOSFSList(t *testing.T) {
	g, dir := newTestGateway(t)
	writeTestFile(t, filepath.Join(dir, "a"), "")
	writeTestFile(t, filepath.Join(dir, "b"), "")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}

	var names []string
	for name, err := range g.List(dir) {
		if err != nil {
			t.Fatalf("List yielded error: %v", err)
		}
		names = append(names, name)
	}

	sort.Strings(names)
	want := []string{"a", "b", "sub"}
	if len(names) != len(want) {
		t.Fatalf("List produced %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestOSFSListMissingDir(t *testing.T) {
	g, dir := newTestGateway(t)

	var got error
	for _, err := range g.List(filepath.Join(dir, "nope")) {
		got = err
	}
	if !IsNotExist(got) {
		t.Errorf("List on missing dir: err = %v, want not-exist", got)
	}
}

func TestOSFSIsRegularFileAndIsDirectory(t *testing.T) {
	g, dir := newTestGateway(t)
	file := filepath.Join(dir, "f")
	writeTestFile(t, file, "x")

	if ok, err := g.IsRegularFile(file); err != nil || !ok {
		t.Errorf("IsRegularFile(file) = %v, %v; want true, nil", ok, err)
	}
	if ok, err := g.IsDirectory(file); err != nil || ok {
		t.Errorf("IsDirectory(file) = %v, %v; want false, nil", ok, err)
	}
	if ok, err := g.IsDirectory(dir); err != nil || !ok {
		t.Errorf("IsDirectory(dir) = %v, %v; want true, nil", ok, err)
	}
	if ok, err := g.IsRegularFile(filepath.Join(dir, "missing")); err != nil || ok {
		t.Errorf("IsRegularFile(missing) = %v, %v; want false, nil", ok, err)
	}
}

func TestOSFSNoFollowLinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on windows")
	}
	g, dir := newTestGateway(t)
	target := filepath.Join(dir, "target")
	link := filepath.Join(dir, "link")
	writeTestFile(t, target, "x")
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}

	if ok, _ := g.IsRegularFile(link); !ok {
		t.Error("IsRegularFile(link) following links = false, want true")
	}
	if ok, _ := g.IsRegularFile(link, NoFollowLinks); ok {
		t.Error("IsRegularFile(link, NoFollowLinks) = true, want false")
	}
}

func TestOSFSCreateDirectoriesCreatesParents(t *testing.T) {
	g, dir := newTestGateway(t)
	nested := filepath.Join(dir, "a", "b", "c")

	if err := g.CreateDirectories(nested); err != nil {
		t.Fatalf("CreateDirectories failed: %v", err)
	}
	if ok, _ := g.IsDirectory(nested); !ok {
		t.Error("nested directory was not created")
	}
}

func TestOSFSCreateDirectoriesOverFile(t *testing.T) {
	g, dir := newTestGateway(t)
	file := filepath.Join(dir, "f")
	writeTestFile(t, file, "x")

	if err := g.CreateDirectories(file); err == nil {
		t.Error("CreateDirectories over an existing file succeeded, want error")
	}
}

func TestOSFSModifiedTimeRoundTrip(t *testing.T) {
	g, dir := newTestGateway(t)
	file := filepath.Join(dir, "f")
	writeTestFile(t, file, "x")

	want := time.Date(2016, 1, 8, 22, 32, 0, 0, time.UTC)
	if err := g.SetLastModifiedTime(file, want); err != nil {
		t.Fatalf("SetLastModifiedTime failed: %v", err)
	}

	got, err := g.GetLastModifiedTime(file)
	if err != nil {
		t.Fatalf("GetLastModifiedTime failed: %v", err)
	}
	diff := got.Sub(want)
	if diff < 0 {
		diff = -diff
	}
	// Native precision can be as coarse as one second.
	if diff > time.Second {
		t.Errorf("mod time round trip: got %v, want %v (±1s)", got, want)
	}
}

func TestOSFSSetTimesOnMissingPath(t *testing.T) {
	g, dir := newTestGateway(t)

	err := g.SetLastModifiedTime(filepath.Join(dir, "missing"), time.Now())
	if !IsNotExist(err) {
		t.Errorf("SetLastModifiedTime on missing path: err = %v, want not-exist", err)
	}
}

func TestOSFSMove(t *testing.T) {
	g, dir := newTestGateway(t)
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	writeTestFile(t, src, "payload")

	if err := g.Move(src, dst, AtomicMove); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if g.Exists(src) {
		t.Error("source still exists after move")
	}
	content, err := os.ReadFile(dst)
	if err != nil || string(content) != "payload" {
		t.Errorf("destination content = %q, %v; want %q", content, err, "payload")
	}
}

func TestOSFSMoveRefusesExistingDestination(t *testing.T) {
	g, dir := newTestGateway(t)
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	writeTestFile(t, src, "new")
	writeTestFile(t, dst, "old")

	err := g.Move(src, dst)
	if !IsExist(err) {
		t.Errorf("Move onto existing destination: err = %v, want exists", err)
	}

	if err := g.Move(src, dst, ReplaceExisting); err != nil {
		t.Fatalf("Move with ReplaceExisting failed: %v", err)
	}
	content, _ := os.ReadFile(dst)
	if string(content) != "new" {
		t.Errorf("destination content = %q, want %q", content, "new")
	}
}

func TestOSFSDelete(t *testing.T) {
	g, dir := newTestGateway(t)
	file := filepath.Join(dir, "f")
	writeTestFile(t, file, "x")

	if err := g.Delete(file); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := g.Delete(file); !IsNotExist(err) {
		t.Errorf("Delete on missing path: err = %v, want not-exist", err)
	}
}

func TestOSFSDeleteNonEmptyDir(t *testing.T) {
	g, dir := newTestGateway(t)
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	writeTestFile(t, filepath.Join(sub, "f"), "x")

	if err := g.Delete(sub); err == nil {
		t.Error("Delete on non-empty directory succeeded, want error")
	}
}

func TestOSFSDirStreamHoldsErrorUntilBatchDrains(t *testing.T) {
	// A partial batch delivered alongside an error must yield its names
	// first and the error after, never io.EOF.
	want := errors.New("readdir failed")
	stream := &osDirStream{names: []string{"a", "b"}, err: want}

	for _, expected := range []string{"a", "b"} {
		name, err := stream.Next()
		if err != nil {
			t.Fatalf("Next returned error before batch drained: %v", err)
		}
		if name != expected {
			t.Errorf("Next = %q, want %q", name, expected)
		}
	}

	if _, err := stream.Next(); !errors.Is(err, want) {
		t.Errorf("Next after drain: err = %v, want %v", err, want)
	}
}

func TestOSFSSeparator(t *testing.T) {
	g, _ := newTestGateway(t)
	if g.Separator() != string(os.PathSeparator) {
		t.Errorf("Separator = %q, want %q", g.Separator(), string(os.PathSeparator))
	}
}

func TestOSFSSupportsCreationTimeLeavesNoTempFiles(t *testing.T) {
	g, dir := newTestGateway(t)

	// The verdict is platform dependent; the cleanup contract is not.
	g.SupportsCreationTime(dir)

	for name, err := range g.List(dir) {
		if err != nil {
			t.Fatalf("List after probe: %v", err)
		}
		if strings.HasPrefix(name, defaultTempPrefix) {
			t.Errorf("probe left temp file %q behind", name)
		}
	}
}

func TestOSFSGetCreationTimeDoesNotFail(t *testing.T) {
	g, dir := newTestGateway(t)
	file := filepath.Join(dir, "f")
	writeTestFile(t, file, "x")

	// Creation time may be the zero value on filesystems without birth
	// time; reading it must still succeed.
	if _, err := g.GetCreationTime(file); err != nil {
		t.Errorf("GetCreationTime failed: %v", err)
	}
}
