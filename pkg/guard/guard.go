package guard

import (
	"context"
	"sync"

	"github.com/arthur-debert/bulkmv/pkg/errors"
	"github.com/arthur-debert/bulkmv/pkg/logging"
)

// Process-wide permits shared by every batch and by the watch subsystem.
var (
	UI    = NewPermit("ui")
	Watch = NewPermit("watch")
)

// Permit is a binary semaphore that can be waited on with a context.
type Permit struct {
	name string
	slot chan struct{}
}

// NewPermit returns a free permit. Most callers want UI or Watch.
func NewPermit(name string) *Permit {
	return &Permit{name: name, slot: make(chan struct{}, 1)}
}

// Name returns the permit name used in logs.
func (p *Permit) Name() string {
	return p.name
}

// Acquire blocks until the permit is free or ctx is done.
func (p *Permit) Acquire(ctx context.Context) (*Lease, error) {
	select {
	case p.slot <- struct{}{}:
		logger := logging.GetLogger("guard")
		logger.Trace().Str("permit", p.name).Msg("Permit acquired")
		return &Lease{permit: p}, nil
	case <-ctx.Done():
		return nil, errors.Wrapf(ctx.Err(), errors.ErrCanceled, "waiting for %s permit", p.name)
	}
}

// TryAcquire takes the permit only if it is free right now.
func (p *Permit) TryAcquire() (*Lease, bool) {
	select {
	case p.slot <- struct{}{}:
		return &Lease{permit: p}, true
	default:
		return nil, false
	}
}

// Held reports whether some lease currently holds the permit.
func (p *Permit) Held() bool {
	return len(p.slot) == 1
}

// Lease is proof of holding a permit. Release may be called any number of
// times; only the first call frees the permit.
type Lease struct {
	permit *Permit
	once   sync.Once
}

// Release frees the permit. It is safe to call on a nil lease.
func (l *Lease) Release() {
	if l == nil {
		return
	}
	l.once.Do(func() {
		<-l.permit.slot
		logger := logging.GetLogger("guard")
		logger.Trace().Str("permit", l.permit.name).Msg("Permit released")
	})
}
