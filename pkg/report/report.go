// Package report presents the failed renames of a batch to the operator
// once every mutation has completed.
package report

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/arthur-debert/bulkmv/pkg/errors"
	"github.com/arthur-debert/bulkmv/pkg/types"
	"github.com/arthur-debert/bulkmv/pkg/ui"
	"github.com/arthur-debert/bulkmv/pkg/ui/confirmations"
)

// MsgHeader opens the failure report.
const MsgHeader = "Failed to rename:"

// Reporter writes failure reports and waits for acknowledgement.
type Reporter struct {
	in      io.Reader
	out     io.Writer
	painter *ui.Painter
	clear   bool
	// wait disables the ENTER acknowledgement when false
	wait bool
}

// Options configures a Reporter
type Options struct {
	In      io.Reader
	Out     io.Writer
	Painter *ui.Painter
	// Clear clears the terminal before the report
	Clear bool
	// NoWait skips the ENTER acknowledgement, for non-interactive runs
	NoWait bool
}

// New creates a reporter.
func New(opts Options) *Reporter {
	painter := opts.Painter
	if painter == nil {
		painter = ui.NewPainter(ui.FormatAuto, opts.Out)
	}
	return &Reporter{
		in:      opts.In,
		out:     opts.Out,
		painter: painter,
		clear:   opts.Clear,
		wait:    !opts.NoWait,
	}
}

// Report writes one "old -> new: reason" line per failure, in the order
// given, then waits for ENTER. An empty list produces no output.
func (r *Reporter) Report(ctx context.Context, failed []types.Failure) error {
	if len(failed) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, errors.ErrCanceled, "failure report canceled")
	}

	if r.clear {
		ui.ClearScreen(r.out)
	}

	w := bufio.NewWriter(r.out)
	_, _ = fmt.Fprintln(w, r.painter.Paint("Header", MsgHeader))
	for _, f := range failed {
		pair := types.RenamePair{Old: f.Old, New: f.New}
		_, _ = fmt.Fprintf(w, "%s: %s\n", r.painter.Pair(pair), r.painter.Paint("Reason", f.Reason()))
	}
	if r.wait {
		_, _ = fmt.Fprintf(w, "\n%s\n", confirmations.MsgPressEnter)
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(err, errors.ErrPromptWrite, "failed to write failure report")
	}

	if !r.wait {
		return nil
	}
	return confirmations.WaitForEnter(r.in)
}
