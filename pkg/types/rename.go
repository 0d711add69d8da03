package types

import (
	"fmt"
	"path/filepath"
)

// PathID is a path relative to the common root of a batch. It identifies both
// a file to be renamed and a possible destination.
type PathID string

// Abs resolves the id against root.
func (p PathID) Abs(root string) string {
	return filepath.Join(root, string(p))
}

// String returns the id in the platform's path form.
func (p PathID) String() string {
	return filepath.FromSlash(string(p))
}

// RenamePair is one old -> new entry of a batch.
type RenamePair struct {
	Old PathID `json:"old"`
	New PathID `json:"new"`
}

// Unchanged reports whether the pair renames a file onto itself.
func (p RenamePair) Unchanged() bool {
	return filepath.Clean(string(p.Old)) == filepath.Clean(string(p.New))
}

func (p RenamePair) String() string {
	return fmt.Sprintf("%s -> %s", p.Old, p.New)
}
