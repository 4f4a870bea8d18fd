// Package realtime fans change signals out to connected clients so open
// dashboards refresh without waiting for the next poll. Delivery is
// best-effort; a dropped signal is healed by polling.
package realtime

import "sync"

// Signal is a no-payload change notification. Receivers must re-fetch; the
// signal itself says nothing about what changed.
type Signal struct{}

type Hub struct {
	mutex       sync.RWMutex
	subscribers map[chan Signal]struct{}
	closed      bool
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[chan Signal]struct{}),
	}
}

// Subscribe registers a listener and returns its channel together with an
// unsubscribe function. The channel is buffered: a slow listener misses
// intermediate signals instead of blocking the broadcaster, which is fine
// because one pending signal already means "re-fetch".
func (h *Hub) Subscribe() (<-chan Signal, func()) {
	ch := make(chan Signal, 1)

	h.mutex.Lock()
	defer h.mutex.Unlock()
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	h.subscribers[ch] = struct{}{}

	return ch, func() {
		h.mutex.Lock()
		defer h.mutex.Unlock()
		if _, ok := h.subscribers[ch]; ok {
			delete(h.subscribers, ch)
			close(ch)
		}
	}
}

// Broadcast notifies every subscriber. Subscribers whose buffer is full
// already have a pending signal and are skipped.
func (h *Hub) Broadcast() {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for ch := range h.subscribers {
		select {
		case ch <- Signal{}:
		default:
		}
	}
}

func (h *Hub) SubscriberCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.subscribers)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.subscribers {
		delete(h.subscribers, ch)
		close(ch)
	}
}
