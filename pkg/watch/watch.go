// Package watch reports filesystem changes under watched directories.
//
// Changes are delivered in settled batches, and a batch is only delivered
// while the watcher holds the Watch permit. A bulk rename holds that permit
// for its whole rename pass, so the watcher never reacts to intermediate
// states; changes made during the pass arrive afterwards, coalesced per path.
package watch

import (
	"context"
	"time"

	"github.com/arthur-debert/bulkmv/pkg/errors"
	"github.com/arthur-debert/bulkmv/pkg/guard"
	"github.com/arthur-debert/bulkmv/pkg/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultSettle is how long the watcher waits for more events before it
// delivers a batch.
const DefaultSettle = 50 * time.Millisecond

// Change is the coalesced set of operations seen on one path.
type Change struct {
	Path string
	Op   fsnotify.Op
}

// Handler receives settled batches. It runs while the permit is held.
type Handler func(batch []Change)

// Options configures a Watcher
type Options struct {
	// Permit gates delivery; defaults to guard.Watch
	Permit *guard.Permit
	// Settle defaults to DefaultSettle when zero
	Settle  time.Duration
	Handler Handler
	Logger  *zerolog.Logger
}

// Watcher wraps an fsnotify watcher with settling and permit gating
type Watcher struct {
	fsw     *fsnotify.Watcher
	permit  *guard.Permit
	settle  time.Duration
	handler Handler
	logger  zerolog.Logger
}

// New creates a watcher. Call Add for every directory, then Run.
func New(opts Options) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot create filesystem watcher")
	}

	w := &Watcher{
		fsw:     fsw,
		permit:  opts.Permit,
		settle:  opts.Settle,
		handler: opts.Handler,
		logger:  logging.GetLogger("watch"),
	}
	if w.permit == nil {
		w.permit = guard.Watch
	}
	if w.settle <= 0 {
		w.settle = DefaultSettle
	}
	if w.handler == nil {
		w.handler = func([]Change) {}
	}
	if opts.Logger != nil {
		w.logger = *opts.Logger
	}
	return w, nil
}

// Add starts watching dir.
func (w *Watcher) Add(dir string) error {
	if err := w.fsw.Add(dir); err != nil {
		return errors.Wrapf(err, errors.ErrNotFound, "cannot watch %s", dir).WithDetail("path", dir)
	}
	w.logger.Debug().Str("path", dir).Msg("Watching directory")
	return nil
}

// Close stops the underlying watcher. Run returns once it notices.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run delivers batches until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	var pending coalescer
	timer := time.NewTimer(w.settle)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if pending.empty() {
				timer.Reset(w.settle)
			}
			pending.add(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("Watcher error")

		case <-timer.C:
			if err := w.deliver(ctx, &pending); err != nil {
				// Canceled while waiting for the permit
				return nil
			}
		}
	}
}

func (w *Watcher) deliver(ctx context.Context, pending *coalescer) error {
	lease, err := w.permit.Acquire(ctx)
	if err != nil {
		return err
	}
	defer lease.Release()

	// Events that queued up while a batch held the permit join this delivery
	for drained := false; !drained; {
		select {
		case ev, ok := <-w.fsw.Events:
			if ok {
				pending.add(ev)
			} else {
				drained = true
			}
		default:
			drained = true
		}
	}

	batch := pending.take()
	w.logger.Debug().Int("changes", len(batch)).Msg("Delivering changes")
	w.handler(batch)
	return nil
}

// coalescer merges events per path, keeping first-seen order.
type coalescer struct {
	order []string
	ops   map[string]fsnotify.Op
}

func (c *coalescer) empty() bool {
	return len(c.order) == 0
}

func (c *coalescer) add(ev fsnotify.Event) {
	if c.ops == nil {
		c.ops = make(map[string]fsnotify.Op)
	}
	if _, ok := c.ops[ev.Name]; !ok {
		c.order = append(c.order, ev.Name)
	}
	c.ops[ev.Name] |= ev.Op
}

func (c *coalescer) take() []Change {
	batch := make([]Change, len(c.order))
	for i, p := range c.order {
		batch[i] = Change{Path: p, Op: c.ops[p]}
	}
	c.order, c.ops = nil, nil
	return batch
}
