// Package index keeps the program's view of which files exist where, and
// follows them through batch renames.
package index

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/arthur-debert/bulkmv/pkg/events"
	"github.com/arthur-debert/bulkmv/pkg/types"
)

// Entry is an indexed file. Meta is nil until the file has been observed.
type Entry struct {
	Path string
	Meta *types.FileMeta
}

// Index is an insertion-ordered set of absolute paths. It is safe for
// concurrent use.
type Index struct {
	mu      sync.RWMutex
	entries []Entry
	byPath  map[string]int
}

// New creates an index holding paths.
func New(paths ...string) *Index {
	idx := &Index{byPath: make(map[string]int)}
	idx.Add(paths...)
	return idx
}

// Add appends paths that are not indexed yet.
func (x *Index) Add(paths ...string) {
	x.mu.Lock()
	defer x.mu.Unlock()

	for _, p := range paths {
		p = filepath.Clean(p)
		if _, ok := x.byPath[p]; ok {
			continue
		}
		x.byPath[p] = len(x.entries)
		x.entries = append(x.entries, Entry{Path: p})
	}
}

// Rename moves every renamed entry to its new path, in order. Entries below
// a renamed directory move with it. Old paths that are not indexed are
// added at their new location.
func (x *Index) Rename(renamed []types.Renamed) {
	x.mu.Lock()
	defer x.mu.Unlock()

	for _, r := range renamed {
		x.rename(filepath.Clean(r.Old), r.New)
	}
}

func (x *Index) rename(old string, meta types.FileMeta) {
	newPath := filepath.Clean(meta.Path)
	m := meta

	i, ok := x.byPath[old]
	if !ok {
		x.byPath[newPath] = len(x.entries)
		x.entries = append(x.entries, Entry{Path: newPath, Meta: &m})
		return
	}

	// An alias of the same file may already be indexed under the new path
	if k, taken := x.byPath[newPath]; taken && k != i {
		x.removeAt(k)
		i = x.byPath[old]
	}

	delete(x.byPath, old)
	x.entries[i] = Entry{Path: newPath, Meta: &m}
	x.byPath[newPath] = i

	if !meta.IsDir {
		return
	}
	prefix := old + string(filepath.Separator)
	for j, e := range x.entries {
		if !strings.HasPrefix(e.Path, prefix) {
			continue
		}
		delete(x.byPath, e.Path)
		moved := filepath.Join(newPath, strings.TrimPrefix(e.Path, prefix))
		x.entries[j].Path = moved
		if x.entries[j].Meta != nil {
			copied := *x.entries[j].Meta
			copied.Path = moved
			x.entries[j].Meta = &copied
		}
		x.byPath[moved] = j
	}
}

func (x *Index) removeAt(k int) {
	x.entries = append(x.entries[:k], x.entries[k+1:]...)
	x.byPath = make(map[string]int, len(x.entries))
	for j, e := range x.entries {
		x.byPath[e.Path] = j
	}
}

// Handle applies BulkRenamed events; it can be subscribed to an events.Bus.
func (x *Index) Handle(ev events.Event) error {
	if bulk, ok := ev.(*events.BulkRenamed); ok {
		x.Rename(bulk.Changes)
	}
	return nil
}

// Get returns the entry currently at path.
func (x *Index) Get(path string) (Entry, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	i, ok := x.byPath[filepath.Clean(path)]
	if !ok {
		return Entry{}, false
	}
	return x.entries[i], true
}

// Paths returns the current path of every entry in insertion order.
func (x *Index) Paths() []string {
	x.mu.RLock()
	defer x.mu.RUnlock()

	out := make([]string, len(x.entries))
	for i, e := range x.entries {
		out[i] = e.Path
	}
	return out
}

// Len returns the number of entries.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.entries)
}
