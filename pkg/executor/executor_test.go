// pkg/executor/executor_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Mock FS, Memory FS
// PURPOSE: Test per-pair collision handling and outcome bookkeeping

package executor_test

import (
	stderrors "errors"
	"io/fs"
	"os"
	"testing"
	"time"

	"github.com/arthur-debert/bulkmv/pkg/errors"
	"github.com/arthur-debert/bulkmv/pkg/executor"
	"github.com/arthur-debert/bulkmv/pkg/filesystem"
	"github.com/arthur-debert/bulkmv/pkg/scheduler"
	"github.com/arthur-debert/bulkmv/pkg/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFS implements types.FS for testing
type MockFS struct {
	mock.Mock
}

func (m *MockFS) Stat(name string) (os.FileInfo, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(os.FileInfo), args.Error(1)
}

func (m *MockFS) Lstat(name string) (os.FileInfo, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(os.FileInfo), args.Error(1)
}

func (m *MockFS) ReadFile(name string) ([]byte, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	args := m.Called(name, data, perm)
	return args.Error(0)
}

func (m *MockFS) CreateNew(name string, data []byte, perm os.FileMode) error {
	args := m.Called(name, data, perm)
	return args.Error(0)
}

func (m *MockFS) MkdirAll(path string, perm os.FileMode) error {
	args := m.Called(path, perm)
	return args.Error(0)
}

func (m *MockFS) Readlink(name string) (string, error) {
	args := m.Called(name)
	return args.String(0), args.Error(1)
}

func (m *MockFS) Remove(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func (m *MockFS) Rename(oldpath, newpath string) error {
	args := m.Called(oldpath, newpath)
	return args.Error(0)
}

// fileInfo is a minimal fs.FileInfo for mock returns
type fileInfo struct {
	name string
	size int64
}

func (f fileInfo) Name() string       { return f.name }
func (f fileInfo) Size() int64        { return f.size }
func (f fileInfo) Mode() fs.FileMode  { return 0644 }
func (f fileInfo) ModTime() time.Time { return time.Time{} }
func (f fileInfo) IsDir() bool        { return false }
func (f fileInfo) Sys() interface{}   { return nil }

var nop = zerolog.Nop()

func pair(o, n string) types.RenamePair {
	return types.RenamePair{Old: types.PathID(o), New: types.PathID(n)}
}

func memFS(t *testing.T, files map[string]string) types.FS {
	t.Helper()
	fsys := filesystem.NewMemoryFS()
	require.NoError(t, fsys.MkdirAll("/root", 0755))
	for name, content := range files {
		require.NoError(t, fsys.WriteFile("/root/"+name, []byte(content), 0644))
	}
	return fsys
}

func read(t *testing.T, fsys types.FS, name string) string {
	t.Helper()
	data, err := fsys.ReadFile("/root/" + name)
	require.NoError(t, err)
	return string(data)
}

func TestNew_ProvidesDefaults(t *testing.T) {
	// Arrange / Act
	exec := executor.New(executor.Options{Root: "/root"})

	// Assert
	require.NotNil(t, exec)
	outcome := exec.Execute(nil)
	assert.Empty(t, outcome.Succeeded)
	assert.Empty(t, outcome.Failed)
}

func TestExecute_ScheduledChainSucceeds(t *testing.T) {
	// Arrange
	fsys := memFS(t, map[string]string{"1": "one", "2": "two", "3": "three"})
	order := scheduler.Sort([]types.RenamePair{pair("2", "3"), pair("1", "2"), pair("3", "4")})
	exec := executor.New(executor.Options{Root: "/root", FS: fsys, Logger: &nop})

	// Act
	outcome := exec.Execute(order)

	// Assert
	require.Empty(t, outcome.Failed)
	require.Len(t, outcome.Succeeded, 3)
	assert.Equal(t, "one", read(t, fsys, "2"))
	assert.Equal(t, "two", read(t, fsys, "3"))
	assert.Equal(t, "three", read(t, fsys, "4"))
	assert.False(t, filesystem.MaybeExists(fsys, "/root/1"))

	// Succeeded entries follow completion order.
	assert.Equal(t, "/root/3", outcome.Succeeded[0].Old)
	assert.Equal(t, types.PathID("4"), outcome.Succeeded[0].New.ID)
	assert.Equal(t, "/root/1", outcome.Succeeded[2].Old)
	assert.Equal(t, types.PathID("2"), outcome.Succeeded[2].New.ID)
}

func TestExecute_CollisionIsRecordedAndSkipped(t *testing.T) {
	// Arrange
	fsys := memFS(t, map[string]string{"a": "A", "b": "B", "keep": "K"})
	exec := executor.New(executor.Options{Root: "/root", FS: fsys, Logger: &nop})

	// Act
	outcome := exec.Execute([]types.RenamePair{pair("a", "keep"), pair("b", "c")})

	// Assert
	require.Len(t, outcome.Failed, 1)
	failure := outcome.Failed[0]
	assert.Equal(t, types.PathID("a"), failure.Old)
	assert.Equal(t, types.PathID("keep"), failure.New)
	assert.True(t, errors.IsErrorCode(failure.Err, errors.ErrCollision))
	assert.Equal(t, executor.MsgDestinationExists, failure.Reason())

	assert.Equal(t, "A", read(t, fsys, "a"), "source must be untouched")
	assert.Equal(t, "K", read(t, fsys, "keep"), "destination must be untouched")

	require.Len(t, outcome.Succeeded, 1, "a failure must not halt the batch")
	assert.Equal(t, "B", read(t, fsys, "c"))
}

func TestExecute_UnchangedPairIsNotACollision(t *testing.T) {
	fsys := memFS(t, map[string]string{"same": "S"})
	exec := executor.New(executor.Options{Root: "/root", FS: fsys, Logger: &nop})

	outcome := exec.Execute([]types.RenamePair{pair("same", "same")})

	assert.Empty(t, outcome.Failed)
	require.Len(t, outcome.Succeeded, 1)
	assert.Equal(t, "S", read(t, fsys, "same"))
}

func TestExecute_SwapSurfacesCollisions(t *testing.T) {
	fsys := memFS(t, map[string]string{"a": "A", "b": "B"})
	exec := executor.New(executor.Options{Root: "/root", FS: fsys, Logger: &nop})
	order := scheduler.Sort([]types.RenamePair{pair("a", "b"), pair("b", "a")})

	outcome := exec.Execute(order)

	assert.Empty(t, outcome.Succeeded)
	require.Len(t, outcome.Failed, 2)
	for _, f := range outcome.Failed {
		assert.True(t, errors.IsErrorCode(f.Err, errors.ErrCollision))
	}
	assert.Equal(t, "A", read(t, fsys, "a"))
	assert.Equal(t, "B", read(t, fsys, "b"))
}

func TestExecute_RenameErrorIsVerbatim(t *testing.T) {
	// Arrange
	m := &MockFS{}
	ioErr := &os.LinkError{Op: "rename", Old: "/root/a", New: "/root/b", Err: stderrors.New("invalid cross-device link")}
	m.On("Lstat", "/root/b").Return(nil, fs.ErrNotExist)
	m.On("Rename", "/root/a", "/root/b").Return(ioErr)

	exec := executor.New(executor.Options{Root: "/root", FS: m, Logger: &nop})

	// Act
	outcome := exec.Execute([]types.RenamePair{pair("a", "b")})

	// Assert
	require.Len(t, outcome.Failed, 1)
	assert.True(t, errors.IsErrorCode(outcome.Failed[0].Err, errors.ErrRename))
	assert.ErrorIs(t, outcome.Failed[0].Err, ioErr)
	assert.Equal(t, ioErr.Error(), outcome.Failed[0].Reason())
	m.AssertExpectations(t)
}

func TestExecute_MetadataFailureKeepsRename(t *testing.T) {
	// Arrange
	m := &MockFS{}
	m.On("Lstat", "/root/b").Return(nil, fs.ErrNotExist).Once()
	m.On("Rename", "/root/a", "/root/b").Return(nil)
	m.On("Lstat", "/root/b").Return(nil, fs.ErrPermission).Once()
	m.On("Lstat", "/root/d").Return(nil, fs.ErrNotExist).Once()
	m.On("Rename", "/root/c", "/root/d").Return(nil)
	m.On("Lstat", "/root/d").Return(fileInfo{name: "d", size: 3}, nil).Once()

	exec := executor.New(executor.Options{Root: "/root", FS: m, Logger: &nop})

	// Act
	outcome := exec.Execute([]types.RenamePair{pair("a", "b"), pair("c", "d")})

	// Assert
	require.Len(t, outcome.Failed, 1)
	assert.True(t, errors.IsErrorCode(outcome.Failed[0].Err, errors.ErrFileInfo))
	assert.Equal(t, executor.MsgFileInfo, outcome.Failed[0].Reason())

	require.Len(t, outcome.Succeeded, 1)
	assert.Equal(t, "/root/c", outcome.Succeeded[0].Old)
	assert.Equal(t, int64(3), outcome.Succeeded[0].New.Size)
	m.AssertNumberOfCalls(t, "Rename", 2)
}

func TestExecute_UnreadableDestinationCountsAsOccupied(t *testing.T) {
	m := &MockFS{}
	m.On("Lstat", "/root/b").Return(nil, fs.ErrPermission)
	m.On("Lstat", "/root/a").Return(fileInfo{name: "a"}, nil)

	exec := executor.New(executor.Options{Root: "/root", FS: m, Logger: &nop})
	outcome := exec.Execute([]types.RenamePair{pair("a", "b")})

	require.Len(t, outcome.Failed, 1)
	assert.True(t, errors.IsErrorCode(outcome.Failed[0].Err, errors.ErrCollision))
	m.AssertNotCalled(t, "Rename", mock.Anything, mock.Anything)
}
