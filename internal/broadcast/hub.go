// Package broadcast – Hub
//
// This file implements the in-process publish/subscribe hub. Each subscriber
// owns a bounded buffered channel; Publish never blocks on a slow or stalled
// observer, it drops that observer's event instead. Delivery is therefore
// at-most-once per subscriber, in publish order per subscriber, with no
// replay after a disconnect — reconnecting displays re-fetch current state
// through the REST endpoints.
package broadcast

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// DefaultBuffer is the per-subscriber queue depth used when the hub is
// constructed with a non-positive size.
const DefaultBuffer = 16

// Subscriber is one registered observer. Read events from C until it is
// closed, then discard the subscriber.
type Subscriber struct {
	// C delivers events in publish order. Closed on Unsubscribe or Close.
	C <-chan Event

	id uint64
	ch chan Event
}

// Hub fans events out to all current subscribers. The zero value is not
// usable; construct with NewHub. All methods are safe for concurrent use.
type Hub struct {
	mu     sync.Mutex
	subs   map[uint64]*Subscriber
	nextID uint64
	buffer int
	closed bool

	// dropped counts events discarded because a subscriber queue was full.
	// Exposed for tests and metrics.
	dropped uint64
}

// NewHub returns a hub whose subscribers each buffer up to buffer events.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		subs:   make(map[uint64]*Subscriber),
		buffer: buffer,
	}
}

// Subscribe registers a new observer and returns its subscription.
// Returns nil if the hub is closed.
func (h *Hub) Subscribe() *Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.nextID++
	ch := make(chan Event, h.buffer)
	s := &Subscriber{C: ch, id: h.nextID, ch: ch}
	h.subs[s.id] = s
	return s
}

// Unsubscribe removes the observer and closes its channel. Safe to call
// more than once.
func (h *Hub) Unsubscribe(s *Subscriber) {
	if s == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[s.id]; !ok {
		return
	}
	delete(h.subs, s.id)
	close(s.ch)
}

// Publish delivers ev to every subscriber whose queue has room. It never
// blocks and never fails the caller: a committed queue transition must not
// be rolled back because a display is slow or gone.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	for _, s := range h.subs {
		select {
		case s.ch <- ev:
		default:
			h.dropped++
			log.Warn().
				Str("kind", string(ev.Kind)).
				Uint64("subscriber", s.id).
				Msg("broadcast queue full, dropping event")
		}
	}
}

// SubscriberCount returns the number of currently registered observers.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Dropped returns the total number of events discarded due to full
// subscriber queues since the hub was created.
func (h *Hub) Dropped() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}

// Close unregisters every subscriber and closes their channels. Subsequent
// Publish calls are no-ops and Subscribe returns nil.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, s := range h.subs {
		delete(h.subs, id)
		close(s.ch)
	}
}
