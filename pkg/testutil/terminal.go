package testutil

import (
	"bytes"
	"context"
	"strings"
	"sync"

	"github.com/arthur-debert/bulkmv/pkg/editor"
	"github.com/arthur-debert/bulkmv/pkg/types"
)

// Terminal is an in-memory operator: In holds the keys they will press and
// Out collects everything written to the diagnostic stream.
type Terminal struct {
	In  *strings.Reader
	Out *bytes.Buffer
}

// NewTerminal creates a terminal whose operator types input
func NewTerminal(input string) *Terminal {
	return &Terminal{In: strings.NewReader(input), Out: &bytes.Buffer{}}
}

// Remaining returns the input not consumed yet
func (t *Terminal) Remaining() string {
	rest := make([]byte, t.In.Len())
	_, _ = t.In.Read(rest)
	return string(rest)
}

// FakeEditor replaces the handoff contents with prepared text and records
// what it was shown.
type FakeEditor struct {
	mu    sync.Mutex
	fs    types.FS
	text  string
	err   error
	paths []string
	shown []string
}

// NewFakeEditor returns an editor that saves names, one per line, through fsys
func NewFakeEditor(fsys types.FS, names ...string) *FakeEditor {
	return &FakeEditor{fs: fsys, text: strings.Join(names, "\n")}
}

// WithText makes the editor save raw text instead of joined names
func (e *FakeEditor) WithText(text string) *FakeEditor {
	e.text = text
	return e
}

// WithError makes the editor fail without touching the file
func (e *FakeEditor) WithError(err error) *FakeEditor {
	e.err = err
	return e
}

// Editor returns the fake as an editor.Editor
func (e *FakeEditor) Editor() editor.Editor {
	return editor.Func(e.edit)
}

func (e *FakeEditor) edit(_ context.Context, path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.paths = append(e.paths, path)
	data, err := e.fs.ReadFile(path)
	if err != nil {
		return err
	}
	e.shown = append(e.shown, string(data))

	if e.err != nil {
		return e.err
	}
	return e.fs.WriteFile(path, []byte(e.text), 0600)
}

// Calls returns how many times the editor ran
func (e *FakeEditor) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.paths)
}

// Paths returns the handoff paths the editor was given
func (e *FakeEditor) Paths() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.paths...)
}

// Shown returns the handoff contents as the editor found them
func (e *FakeEditor) Shown() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.shown...)
}
