package testutil

import (
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/bulkmv/pkg/types"
)

// Operations that FaultFS can fail.
const (
	OpStat      = "stat"
	OpLstat     = "lstat"
	OpReadFile  = "readfile"
	OpWriteFile = "writefile"
	OpCreateNew = "createnew"
	OpMkdirAll  = "mkdirall"
	OpReadlink  = "readlink"
	OpRemove    = "remove"
	OpRename    = "rename"
)

// FaultFS wraps a types.FS, failing chosen operations on chosen paths and
// recording every mutation it lets through.
type FaultFS struct {
	types.FS

	mu      sync.Mutex
	faults  map[string]error
	renames [][2]string
	writes  int
	removes int
}

// NewFaultFS wraps inner
func NewFaultFS(inner types.FS) *FaultFS {
	return &FaultFS{FS: inner, faults: make(map[string]error)}
}

// WithError makes op fail with err for path. Rename faults match the
// source path.
func (f *FaultFS) WithError(op, path string, err error) *FaultFS {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults[op+"\x00"+filepath.Clean(path)] = err
	return f
}

func (f *FaultFS) fault(op, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.faults[op+"\x00"+filepath.Clean(path)]
}

// Renames returns the renames performed so far, in order
func (f *FaultFS) Renames() [][2]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][2]string(nil), f.renames...)
}

// Mutations returns how many writes, removes and renames went through
func (f *FaultFS) Mutations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes + f.removes + len(f.renames)
}

func (f *FaultFS) Stat(name string) (fs.FileInfo, error) {
	if err := f.fault(OpStat, name); err != nil {
		return nil, err
	}
	return f.FS.Stat(name)
}

func (f *FaultFS) Lstat(name string) (fs.FileInfo, error) {
	if err := f.fault(OpLstat, name); err != nil {
		return nil, err
	}
	return f.FS.Lstat(name)
}

func (f *FaultFS) ReadFile(name string) ([]byte, error) {
	if err := f.fault(OpReadFile, name); err != nil {
		return nil, err
	}
	return f.FS.ReadFile(name)
}

func (f *FaultFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err := f.fault(OpWriteFile, name); err != nil {
		return err
	}
	f.mu.Lock()
	f.writes++
	f.mu.Unlock()
	return f.FS.WriteFile(name, data, perm)
}

func (f *FaultFS) CreateNew(name string, data []byte, perm fs.FileMode) error {
	if err := f.fault(OpCreateNew, name); err != nil {
		return err
	}
	return f.FS.CreateNew(name, data, perm)
}

func (f *FaultFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := f.fault(OpMkdirAll, path); err != nil {
		return err
	}
	return f.FS.MkdirAll(path, perm)
}

func (f *FaultFS) Readlink(name string) (string, error) {
	if err := f.fault(OpReadlink, name); err != nil {
		return "", err
	}
	return f.FS.Readlink(name)
}

func (f *FaultFS) Remove(name string) error {
	if err := f.fault(OpRemove, name); err != nil {
		return err
	}
	f.mu.Lock()
	f.removes++
	f.mu.Unlock()
	return f.FS.Remove(name)
}

func (f *FaultFS) Rename(oldpath, newpath string) error {
	if err := f.fault(OpRename, oldpath); err != nil {
		return err
	}
	if err := f.FS.Rename(oldpath, newpath); err != nil {
		return err
	}
	f.mu.Lock()
	f.renames = append(f.renames, [2]string{oldpath, newpath})
	f.mu.Unlock()
	return nil
}
