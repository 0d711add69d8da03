package types

import (
	"io/fs"
	"time"
)

// FileMeta describes a file as observed right after it was renamed.
type FileMeta struct {
	ID      PathID      `json:"id"`
	Path    string      `json:"path"`
	Size    int64       `json:"size"`
	Mode    fs.FileMode `json:"mode"`
	ModTime time.Time   `json:"modTime"`
	IsDir   bool        `json:"isDir"`
	Link    string      `json:"link,omitempty"` // symlink target, empty for regular entries
}

// Renamed pairs the absolute pre-rename path with the metadata of the file
// at its new location.
type Renamed struct {
	Old string   `json:"old"`
	New FileMeta `json:"new"`
}

// Failure records a pair that could not be completed.
type Failure struct {
	Old PathID
	New PathID
	Err error
}

// Reason returns the operator-facing failure reason.
func (f Failure) Reason() string {
	if f.Err == nil {
		return ""
	}
	if r, ok := f.Err.(interface{ Reason() string }); ok {
		return r.Reason()
	}
	return f.Err.Error()
}

// Outcome partitions the processed pairs of one batch. Both slices are in
// execution order.
type Outcome struct {
	Succeeded []Renamed
	Failed    []Failure
}

// SucceededByOld returns the succeeded renames keyed by their absolute
// pre-rename path.
func (o *Outcome) SucceededByOld() map[string]FileMeta {
	m := make(map[string]FileMeta, len(o.Succeeded))
	for _, r := range o.Succeeded {
		m[r.Old] = r.New
	}
	return m
}

// Attempted is the number of pairs the executor processed.
func (o *Outcome) Attempted() int {
	return len(o.Succeeded) + len(o.Failed)
}
