package bulkmv

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/bulkmv/pkg/bulk"
	"github.com/arthur-debert/bulkmv/pkg/config"
	"github.com/arthur-debert/bulkmv/pkg/errors"
	"github.com/arthur-debert/bulkmv/pkg/events"
	"github.com/arthur-debert/bulkmv/pkg/logging"
	"github.com/arthur-debert/bulkmv/pkg/ui"
	"github.com/arthur-debert/bulkmv/pkg/watch"
	"github.com/spf13/cobra"
)

// loadConfig layers the command line over the configuration sources
func loadConfig(flags *batchFlags, batch bool) (*config.Config, error) {
	overrides := map[string]interface{}{}
	if flags.format != "" {
		overrides["ui.format"] = flags.format
	}
	if batch && flags.yes {
		overrides["confirm"] = false
	}
	if batch && flags.json {
		overrides["events.json"] = true
	}
	return config.Load(config.Options{Path: flags.configPath, Overrides: overrides})
}

// topicFormat is the output format help topics are rendered in. Errors in the
// configuration fall back to auto detection; they surface on batch commands.
func topicFormat(flags *batchFlags) ui.Format {
	cfg, err := loadConfig(flags, false)
	if err != nil {
		return ui.FormatAuto
	}
	format, err := ui.ParseFormat(cfg.UI.Format)
	if err != nil {
		return ui.FormatAuto
	}
	return format
}

func runBatch(cmd *cobra.Command, flags *batchFlags, args []string, dryRun bool) error {
	logger := logging.GetLogger("cli")

	cfg, err := loadConfig(flags, true)
	if err != nil {
		return err
	}
	logger.Debug().Str("config", cfg.Source).Msg("Configuration loaded")

	sources := make([]string, len(args))
	for i, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInvalidInput, MsgErrAbsPath, arg)
		}
		sources[i] = abs
	}

	names, closeNames, err := openNames(cmd, flags, cfg)
	if err != nil {
		return err
	}
	defer closeNames()

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	bus := events.NewBus()
	if cfg.Events.JSON && !dryRun {
		bus.Subscribe(events.KindBulk, events.NewJSONSink(stdout).Handle)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Watch.Enabled && !dryRun {
		stop, err := startWatch(ctx, cfg, sources)
		if err != nil {
			return err
		}
		defer stop()
	}

	result, err := bulk.Run(ctx, bulk.Options{
		Config: cfg,
		Names:  names,
		In:     cmd.InOrStdin(),
		Out:    stderr,
		Bus:    bus,
		DryRun: dryRun,
		NoWait: flags.noWait,
	}, sources)
	if err != nil {
		return err
	}

	format, _ := ui.ParseFormat(cfg.UI.Format)
	painter := ui.NewPainter(format, stderr)

	if dryRun {
		return printOrder(stdout, stderr, painter, result)
	}
	if result.Confirmed {
		_, _ = fmt.Fprintln(stderr, painter.Summary(result.Outcome))
	}
	if flags.print {
		for _, p := range result.Index.Paths() {
			_, _ = fmt.Fprintln(stdout, p)
		}
	}
	return nil
}

// openNames returns the reader new names come from, nil when an editor
// should be used
func openNames(cmd *cobra.Command, flags *batchFlags, cfg *config.Config) (io.Reader, func(), error) {
	nop := func() {}
	switch flags.names {
	case "":
		return nil, nop, nil
	case "-":
		if cfg.Confirm {
			return nil, nop, errors.New(errors.ErrInvalidInput, MsgErrStdinNames)
		}
		return cmd.InOrStdin(), nop, nil
	}

	f, err := os.Open(flags.names)
	if err != nil {
		return nil, nop, errors.Wrapf(err, errors.ErrNotFound, MsgErrOpenNames, flags.names).
			WithDetail("path", flags.names)
	}
	return f, func() { _ = f.Close() }, nil
}

func printOrder(stdout, stderr io.Writer, painter *ui.Painter, result *bulk.Result) error {
	if len(result.Order) == 0 {
		_, _ = fmt.Fprintln(stderr, MsgNothingToDo)
		return nil
	}
	for _, pair := range result.Order {
		if _, err := fmt.Fprintln(stdout, pair.String()); err != nil {
			return err
		}
	}
	_, _ = fmt.Fprintln(stderr, painter.Paint("Muted", MsgDryRunNotice))
	return nil
}

// startWatch watches the directories holding the sources and logs what
// changed once each batch settles. The returned stop func lets the batch
// made by the rename pass settle before shutting down.
func startWatch(ctx context.Context, cfg *config.Config, sources []string) (func(), error) {
	logger := logging.GetLogger("watch")
	w, err := watch.New(watch.Options{
		Settle: cfg.Watch.Settle,
		Handler: func(batch []watch.Change) {
			for _, c := range batch {
				logger.Info().Str("path", c.Path).Str("op", c.Op.String()).Msg(MsgWatchChanges)
			}
		},
	})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, src := range sources {
		dir := filepath.Dir(src)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := w.Run(ctx); err != nil {
			logger.Warn().Err(err).Msg("Watcher stopped")
		}
	}()

	settle := cfg.Watch.Settle
	if settle <= 0 {
		settle = watch.DefaultSettle
	}
	return func() {
		timer := time.NewTimer(2 * settle)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-done:
		}
		cancel()
		<-done
		_ = w.Close()
	}, nil
}
