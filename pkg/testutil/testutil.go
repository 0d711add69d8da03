package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/arthur-debert/bulkmv/pkg/types"
	"github.com/stretchr/testify/require"
)

// FileTree represents a directory structure for testing. Values are either
// file contents (string) or nested FileTrees.
type FileTree map[string]interface{}

// WriteTree creates tree below base on fsys
func WriteTree(t *testing.T, fsys types.FS, base string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(base, name)

		switch v := content.(type) {
		case string:
			require.NoError(t, fsys.MkdirAll(filepath.Dir(fullPath), 0755))
			require.NoError(t, fsys.WriteFile(fullPath, []byte(v), 0644), "write %s", fullPath)
		case FileTree:
			require.NoError(t, fsys.MkdirAll(fullPath, 0755), "mkdir %s", fullPath)
			WriteTree(t, fsys, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}

// ReadTree snapshots the regular files below dir on the real filesystem,
// keyed by slash-separated relative path. Symlinks map to "-> target".
func ReadTree(t *testing.T, dir string) map[string]string {
	t.Helper()

	out := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil || rel == "." {
			return err
		}
		rel = filepath.ToSlash(rel)

		switch {
		case d.Type()&fs.ModeSymlink != 0:
			target, err := os.Readlink(path)
			if err != nil {
				return err
			}
			out[rel] = "-> " + target
		case d.Type().IsRegular():
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			out[rel] = string(data)
		}
		return nil
	})
	require.NoError(t, err)
	return out
}

// CreateFile creates a file with the given content in the specified directory.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// SkipOnWindows skips tests that rely on POSIX rename and link semantics
func SkipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("Skipping test on Windows")
	}
}
