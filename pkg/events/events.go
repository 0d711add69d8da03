// Package events announces completed batch renames to the rest of the
// program through a small synchronous publish/subscribe bus.
package events

import (
	"sync"

	"github.com/arthur-debert/bulkmv/pkg/logging"
	"github.com/arthur-debert/bulkmv/pkg/types"
)

// KindBulk identifies BulkRenamed events.
const KindBulk = "bulk"

// Event is anything published on a Bus.
type Event interface {
	EventKind() string
}

// BulkRenamed carries the old identity to new metadata mapping of a batch,
// in the order the renames completed.
type BulkRenamed struct {
	Kind    string          `json:"kind"`
	Root    string          `json:"root"`
	Changes []types.Renamed `json:"changes"`
}

// NewBulkRenamed builds the event for the succeeded renames of a batch.
func NewBulkRenamed(root string, succeeded []types.Renamed) *BulkRenamed {
	changes := make([]types.Renamed, len(succeeded))
	copy(changes, succeeded)
	return &BulkRenamed{Kind: KindBulk, Root: root, Changes: changes}
}

// EventKind implements Event.
func (e *BulkRenamed) EventKind() string {
	return KindBulk
}

// Handler receives published events. A returned error is logged and does
// not stop delivery to other handlers.
type Handler func(Event) error

type subscription struct {
	id      int
	handler Handler
}

// Bus delivers events to the handlers subscribed to their kind, in
// subscription order, on the publishing goroutine.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string][]subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string][]subscription)}
}

// Subscribe registers h for events of kind and returns a function that
// removes it again.
func (b *Bus) Subscribe(kind string, h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[kind] = append(b.subs[kind], subscription{id: id, handler: h})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(kind, id) })
	}
}

func (b *Bus) remove(kind string, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[kind]
	for i, s := range subs {
		if s.id == id {
			b.subs[kind] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish delivers ev and returns the number of handlers that received it.
func (b *Bus) Publish(ev Event) int {
	b.mu.RLock()
	subs := b.subs[ev.EventKind()]
	b.mu.RUnlock()

	logger := logging.GetLogger("events")
	for _, s := range subs {
		if err := s.handler(ev); err != nil {
			logger.Warn().
				Err(err).
				Str("kind", ev.EventKind()).
				Msg("Event handler failed")
		}
	}

	logger.Debug().
		Str("kind", ev.EventKind()).
		Int("handlers", len(subs)).
		Msg("Event published")
	return len(subs)
}
