package builder

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/bulkmv/pkg/errors"
	"github.com/arthur-debert/bulkmv/pkg/types"
)

// Set is the relativized selection of one batch.
type Set struct {
	// Root is the common ancestor every ID is relative to
	Root string
	// Old holds the relative source paths in selection order
	Old []types.PathID
}

// New relativizes sources against their common root. Sources must be
// absolute; duplicates are rejected.
func New(sources []string) (*Set, error) {
	if len(sources) == 0 {
		return nil, errors.New(errors.ErrNoSources, "no files selected")
	}

	cleaned := make([]string, len(sources))
	for i, s := range sources {
		if !filepath.IsAbs(s) {
			return nil, errors.Newf(errors.ErrInvalidInput, "source is not absolute: %s", s).
				WithDetail("source", s)
		}
		cleaned[i] = filepath.Clean(s)
	}

	root := MaxCommonRoot(cleaned)
	old, err := Relativize(root, cleaned)
	if err != nil {
		return nil, err
	}

	seen := make(map[types.PathID]int, len(old))
	for i, id := range old {
		if j, ok := seen[id]; ok {
			return nil, errors.Newf(errors.ErrDuplicateSource, "file selected twice: %s", id).
				WithDetails(map[string]interface{}{"path": string(id), "first": j, "second": i})
		}
		seen[id] = i
	}

	return &Set{Root: root, Old: old}, nil
}

// Len returns the number of sources.
func (s *Set) Len() int {
	return len(s.Old)
}

// Pair zips the sources with the edited names. The counts must match.
func (s *Set) Pair(names []string) ([]types.RenamePair, error) {
	if len(names) != len(s.Old) {
		return nil, errors.Newf(errors.ErrCountMismatch,
			"Number of old and new differ (%d old, %d new)", len(s.Old), len(names)).
			WithDetails(map[string]interface{}{"old": len(s.Old), "new": len(names)})
	}

	pairs := make([]types.RenamePair, len(names))
	for i, n := range names {
		pairs[i] = types.RenamePair{Old: s.Old[i], New: types.PathID(path.Clean(filepath.ToSlash(n)))}
	}
	return pairs, nil
}

// Abs returns the absolute form of every source in selection order.
func (s *Set) Abs() []string {
	out := make([]string, len(s.Old))
	for i, id := range s.Old {
		out[i] = id.Abs(s.Root)
	}
	return out
}

// MaxCommonRoot returns the deepest directory that contains every path.
// A single path yields its parent. When the common prefix is itself one of
// the selected paths, its parent is returned so that the path keeps a
// non-empty relative name.
func MaxCommonRoot(paths []string) string {
	switch len(paths) {
	case 0:
		return ""
	case 1:
		return filepath.Dir(paths[0])
	}

	prefix := split(paths[0])
	for _, p := range paths[1:] {
		parts := split(p)
		n := 0
		for n < len(prefix) && n < len(parts) && prefix[n] == parts[n] {
			n++
		}
		prefix = prefix[:n]
	}

	root := join(prefix)
	for _, p := range paths {
		if filepath.Clean(p) == root {
			return filepath.Dir(root)
		}
	}
	return root
}

// Relativize strips root from every path.
func Relativize(root string, paths []string) ([]types.PathID, error) {
	ids := make([]types.PathID, len(paths))
	for i, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil, errors.Newf(errors.ErrInvalidInput, "%s is not below %s", p, root).
				WithDetails(map[string]interface{}{"path": p, "root": root})
		}
		ids[i] = types.PathID(filepath.ToSlash(rel))
	}
	return ids, nil
}

func split(p string) []string {
	p = filepath.Clean(p)
	vol := filepath.VolumeName(p)
	rest := strings.TrimPrefix(p[len(vol):], string(filepath.Separator))
	parts := []string{vol + string(filepath.Separator)}
	if rest != "" {
		parts = append(parts, strings.Split(rest, string(filepath.Separator))...)
	}
	return parts
}

func join(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	return filepath.Join(parts...)
}
