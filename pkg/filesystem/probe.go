package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/bulkmv/pkg/types"
)

// MaybeExists reports whether something may occupy path. Only a definite
// not-exist answer counts as absent; permission and other stat errors are
// treated as occupied.
func MaybeExists(fsys types.FS, path string) bool {
	_, err := fsys.Lstat(path)
	if err == nil {
		return true
	}
	return !errors.Is(err, fs.ErrNotExist)
}

// SameFile reports whether a and b name the same underlying file. Identity
// comes from Lstat, so a case-insensitive alias or a hard link of the source
// is recognised while a symlink pointing at it is not.
func SameFile(fsys types.FS, a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}

	ia, err := fsys.Lstat(a)
	if err != nil {
		return false
	}
	ib, err := fsys.Lstat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ia, ib)
}

// Meta reads the metadata of the entry at root/id.
func Meta(fsys types.FS, root string, id types.PathID) (types.FileMeta, error) {
	path := id.Abs(root)
	info, err := fsys.Lstat(path)
	if err != nil {
		return types.FileMeta{}, err
	}

	meta := types.FileMeta{
		ID:      id,
		Path:    path,
		Size:    info.Size(),
		Mode:    info.Mode(),
		ModTime: info.ModTime(),
		IsDir:   info.IsDir(),
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		target, err := fsys.Readlink(path)
		if err != nil {
			return types.FileMeta{}, err
		}
		meta.Link = target
	}
	return meta, nil
}
