package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/bulkmv/pkg/errors"
	"github.com/arthur-debert/bulkmv/pkg/logging"
)

// MsgNoEditor is reported when no editor command can be found.
const MsgNoEditor = "No text opener found"

// Editor lets the operator edit the file at path and returns once the edit
// session is over.
type Editor interface {
	Edit(ctx context.Context, path string) error
}

// Func adapts a plain function to Editor.
type Func func(ctx context.Context, path string) error

// Edit calls f.
func (f Func) Edit(ctx context.Context, path string) error {
	return f(ctx, path)
}

// Command runs an external program with the handoff path appended to Argv.
// The program inherits the terminal unless the streams are overridden.
type Command struct {
	Argv   []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Resolve picks the editor command: the configured argv if any, then
// $VISUAL, then $EDITOR.
func Resolve(configured []string) (*Command, error) {
	return ResolveWith(configured, os.Getenv)
}

// ResolveWith is Resolve with a custom environment lookup.
func ResolveWith(configured []string, getenv func(string) string) (*Command, error) {
	argv := nonEmpty(configured)
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if len(argv) > 0 {
			break
		}
		argv = strings.Fields(getenv(key))
	}
	if len(argv) == 0 {
		return nil, errors.New(errors.ErrNoEditor, MsgNoEditor)
	}

	return &Command{
		Argv:   argv,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}, nil
}

// Edit runs the editor and waits for it to exit.
func (c *Command) Edit(ctx context.Context, path string) error {
	args := append(append([]string{}, c.Argv[1:]...), path)
	logging.LogCommand(logging.GetLogger("editor"), c.Argv[0], args)

	cmd := exec.CommandContext(ctx, c.Argv[0], args...)
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, errors.ErrEditorFailed, "editor %s failed", c.Argv[0]).
			WithDetail("command", strings.Join(c.Argv, " "))
	}
	return nil
}

func nonEmpty(argv []string) []string {
	out := make([]string, 0, len(argv))
	for _, a := range argv {
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}
