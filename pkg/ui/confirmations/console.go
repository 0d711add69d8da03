// Package confirmations provides the console prompts a batch shows on the
// diagnostic stream.
package confirmations

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/arthur-debert/bulkmv/pkg/errors"
	"github.com/arthur-debert/bulkmv/pkg/types"
	"github.com/arthur-debert/bulkmv/pkg/ui"
)

// Prompt texts.
const (
	MsgContinue   = "Continue to rename? (y/N): "
	MsgPressEnter = "Press ENTER to exit"
)

// answerSize bounds how much of the operator's answer is consumed.
const answerSize = 10

// ConsoleDialog asks for confirmation on a console
type ConsoleDialog struct {
	in      io.Reader
	out     io.Writer
	painter *ui.Painter
	clear   bool
}

// NewConsoleDialog creates a dialog reading answers from in and writing to
// out. When clear is set the screen is cleared before the diff is shown.
func NewConsoleDialog(in io.Reader, out io.Writer, painter *ui.Painter, clear bool) *ConsoleDialog {
	if painter == nil {
		painter = ui.NewPainter(ui.FormatAuto, out)
	}
	return &ConsoleDialog{in: in, out: out, painter: painter, clear: clear}
}

// Confirm shows every pair as "old -> new" followed by the yes/no prompt.
// Only an answer starting with y or Y approves; anything else, including
// end of input, declines.
func (d *ConsoleDialog) Confirm(ctx context.Context, pairs []types.RenamePair) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, errors.Wrap(err, errors.ErrCanceled, "confirmation canceled")
	}

	if d.clear {
		ui.ClearScreen(d.out)
	}

	w := bufio.NewWriter(d.out)
	for _, p := range pairs {
		_, _ = fmt.Fprintln(w, d.painter.Pair(p))
	}
	_, _ = fmt.Fprint(w, d.painter.Paint("Prompt", MsgContinue))
	if err := w.Flush(); err != nil {
		return false, errors.Wrap(err, errors.ErrPromptWrite, "failed to write confirmation prompt")
	}

	buf := make([]byte, answerSize)
	n, err := d.in.Read(buf)
	if err != nil && err != io.EOF {
		return false, errors.Wrap(err, errors.ErrPromptRead, "failed to read user input")
	}
	if n == 0 {
		return false, nil
	}
	return buf[0] == 'y' || buf[0] == 'Y', nil
}

// WaitForEnter reads a single byte from in. End of input counts as an
// acknowledgement.
func WaitForEnter(in io.Reader) error {
	var b [1]byte
	if _, err := in.Read(b[:]); err != nil && err != io.EOF {
		return errors.Wrap(err, errors.ErrPromptRead, "failed to read user input")
	}
	return nil
}
