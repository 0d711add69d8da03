package bulk

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/arthur-debert/bulkmv/pkg/builder"
	"github.com/arthur-debert/bulkmv/pkg/config"
	"github.com/arthur-debert/bulkmv/pkg/editor"
	"github.com/arthur-debert/bulkmv/pkg/errors"
	"github.com/arthur-debert/bulkmv/pkg/events"
	"github.com/arthur-debert/bulkmv/pkg/executor"
	"github.com/arthur-debert/bulkmv/pkg/filesystem"
	"github.com/arthur-debert/bulkmv/pkg/guard"
	"github.com/arthur-debert/bulkmv/pkg/index"
	"github.com/arthur-debert/bulkmv/pkg/logging"
	"github.com/arthur-debert/bulkmv/pkg/report"
	"github.com/arthur-debert/bulkmv/pkg/scheduler"
	"github.com/arthur-debert/bulkmv/pkg/types"
	"github.com/arthur-debert/bulkmv/pkg/ui"
	"github.com/arthur-debert/bulkmv/pkg/ui/confirmations"
	"github.com/rs/zerolog"
)

// MsgCountMismatch is shown when the edited list has the wrong length.
const MsgCountMismatch = "Number of old and new differ, press ENTER to exit"

// Options configures a batch
type Options struct {
	// Config defaults to config.Default()
	Config *config.Config
	// FS defaults to the OS filesystem
	FS types.FS
	// Editor overrides the editor resolved from Config
	Editor editor.Editor
	// Names supplies the new names directly; no editor is started
	Names io.Reader
	// In and Out are the operator's input and the diagnostic stream;
	// they default to os.Stdin and os.Stderr
	In  io.Reader
	Out io.Writer
	// Bus receives the BulkRenamed event; optional
	Bus *events.Bus
	// Index is updated with the renames; one is created over the sources when nil
	Index *index.Index
	// DryRun stops after ordering
	DryRun bool
	// NoWait skips the ENTER acknowledgements
	NoWait bool
	// Now stamps handoff file names; defaults to time.Now
	Now    func() time.Time
	Logger *zerolog.Logger
}

// Result describes what a batch did
type Result struct {
	Root string
	// Pairs in the order the files were selected
	Pairs []types.RenamePair
	// Order is the execution order
	Order []types.RenamePair
	// Cyclic is set when part of Order is a best-effort fallback
	Cyclic bool
	// Confirmed is false when the operator declined or the run was dry
	Confirmed bool
	Outcome   types.Outcome
	Index     *index.Index
}

type runner struct {
	opts    Options
	cfg     *config.Config
	fs      types.FS
	painter *ui.Painter
	logger  zerolog.Logger
}

// Run executes a batch over sources, which must be absolute paths.
func Run(ctx context.Context, opts Options, sources []string) (*Result, error) {
	r := newRunner(opts)
	return r.run(ctx, sources)
}

func newRunner(opts Options) *runner {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stderr
	}
	r := &runner{opts: opts, cfg: opts.Config, fs: opts.FS, logger: logging.GetLogger("bulk")}
	if r.cfg == nil {
		r.cfg = config.Default()
	}
	if r.fs == nil {
		r.fs = filesystem.NewOS()
	}
	if opts.Logger != nil {
		r.logger = *opts.Logger
	}
	format, err := ui.ParseFormat(r.cfg.UI.Format)
	if err != nil {
		format = ui.FormatAuto
	}
	r.painter = ui.NewPainter(format, opts.Out)
	return r
}

func (r *runner) run(ctx context.Context, sources []string) (*Result, error) {
	done := logging.LogOperationStart(r.logger, "bulk rename")
	defer done()

	set, err := builder.New(sources)
	if err != nil {
		return nil, err
	}
	r.logger.Info().Str("root", set.Root).Int("files", set.Len()).Msg("Batch started")

	idx := r.opts.Index
	if idx == nil {
		idx = index.New(set.Abs()...)
	}
	result := &Result{Root: set.Root, Index: idx}

	ed, err := r.resolveEditor()
	if err != nil {
		return result, err
	}

	uiLease, err := guard.UI.Acquire(ctx)
	if err != nil {
		return result, err
	}
	defer uiLease.Release()

	names, err := r.names(ctx, set, ed)
	if err != nil {
		return result, err
	}

	pairs, err := set.Pair(names)
	if err != nil {
		r.countMismatch()
		return result, err
	}
	result.Pairs = pairs

	result.Order = scheduler.Sort(pairs)
	result.Cyclic = scheduler.HasCycle(pairs)
	r.logger.Debug().
		Int("pairs", len(result.Order)).
		Bool("cyclic", result.Cyclic).
		Msg("Execution order computed")

	if len(result.Order) == 0 || r.opts.DryRun {
		return result, nil
	}

	if r.cfg.Confirm {
		dialog := confirmations.NewConsoleDialog(r.opts.In, r.opts.Out, r.painter, r.cfg.UI.Clear)
		ok, err := dialog.Confirm(ctx, result.Order)
		if err != nil {
			return result, err
		}
		if !ok {
			r.logger.Info().Msg("Batch declined")
			return result, nil
		}
	}
	result.Confirmed = true

	if err := r.execute(ctx, set.Root, result); err != nil {
		return result, err
	}

	rep := report.New(report.Options{
		In:      r.opts.In,
		Out:     r.opts.Out,
		Painter: r.painter,
		Clear:   r.cfg.UI.Clear,
		NoWait:  r.opts.NoWait,
	})
	return result, rep.Report(ctx, result.Outcome.Failed)
}

// resolveEditor runs before anything is written, so a missing editor
// leaves no handoff file behind
func (r *runner) resolveEditor() (editor.Editor, error) {
	if r.opts.Names != nil {
		return nil, nil
	}
	if r.opts.Editor != nil {
		return r.opts.Editor, nil
	}
	cmd, err := editor.Resolve(r.cfg.Editor)
	if err != nil {
		return nil, err
	}
	return cmd, nil
}

func (r *runner) names(ctx context.Context, set *builder.Set, ed editor.Editor) ([]string, error) {
	if r.opts.Names != nil {
		data, err := io.ReadAll(r.opts.Names)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrHandoffRead, "failed to read names")
		}
		return builder.DecodeHandoff(data), nil
	}

	h, err := editor.CreateHandoff(editor.HandoffOptions{
		FS:     r.fs,
		Dir:    r.cfg.Handoff.Dir,
		Prefix: r.cfg.Handoff.Prefix,
		Now:    r.opts.Now,
	}, set.Old)
	if err != nil {
		return nil, err
	}
	defer h.Remove()

	if err := ed.Edit(ctx, h.Path()); err != nil {
		return nil, err
	}
	return h.Read()
}

func (r *runner) countMismatch() {
	if r.cfg.UI.Clear {
		ui.ClearScreen(r.opts.Out)
	}
	_, _ = fmt.Fprintln(r.opts.Out, r.painter.Paint("Error", MsgCountMismatch))
	if r.opts.NoWait {
		return
	}
	if err := confirmations.WaitForEnter(r.opts.In); err != nil {
		r.logger.Warn().Err(err).Msg("Failed to read acknowledgement")
	}
}

// execute performs the rename pass while holding the watch permit, then
// announces the renames before the permit is given back
func (r *runner) execute(ctx context.Context, root string, result *Result) error {
	lease, err := guard.Watch.Acquire(ctx)
	if err != nil {
		return err
	}
	defer lease.Release()

	exec := executor.New(executor.Options{Root: root, FS: r.fs, Logger: r.opts.Logger})
	result.Outcome = exec.Execute(result.Order)

	if len(result.Outcome.Succeeded) > 0 {
		if r.opts.Bus != nil {
			r.opts.Bus.Publish(events.NewBulkRenamed(root, result.Outcome.Succeeded))
		}
		result.Index.Rename(result.Outcome.Succeeded)
	}
	return nil
}
