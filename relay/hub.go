// Package relay fans out named events to every connected client. It is a
// broadcast-only channel: no per-client routing, no replay, no acks.
package relay

import (
	"log/slog"
	"sync"
)

// Event is a named payload pushed to all subscribers
type Event struct {
	Name string
	Data any
}

// subscriberBuffer is the per-subscriber event backlog. A subscriber that
// falls further behind than this drops events instead of blocking the
// broadcaster.
const subscriberBuffer = 16

// Hub is a concurrency-safe set of active subscribers
type Hub struct {
	mu          sync.RWMutex
	subscribers map[*Subscriber]struct{}
}

// Subscriber is one connected client's view of the hub
type Subscriber struct {
	hub  *Hub
	ch   chan Event
	once sync.Once
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[*Subscriber]struct{}),
	}
}

// Subscribe registers a new client. The caller must Close the subscriber
// when the connection ends.
func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{
		hub: h,
		ch:  make(chan Event, subscriberBuffer),
	}

	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	count := len(h.subscribers)
	h.mu.Unlock()

	slog.Info("relay client connected", "clients", count)
	return sub
}

// Broadcast delivers the event to every currently connected subscriber.
// Delivery is at-most-once: subscribers with a full buffer miss the event,
// and clients connecting afterwards never see it.
func (h *Hub) Broadcast(name string, data any) {
	ev := Event{Name: name, Data: data}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subscribers {
		select {
		case sub.ch <- ev:
		default:
			slog.Debug("relay event dropped for slow client", "event", name)
		}
	}
}

// Count returns the number of connected subscribers
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Events returns the subscriber's event stream. The channel is closed
// when the subscriber is closed.
func (s *Subscriber) Events() <-chan Event {
	return s.ch
}

// Close removes the subscriber from the hub and closes its event channel
func (s *Subscriber) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subscribers, s)
		count := len(s.hub.subscribers)
		close(s.ch)
		s.hub.mu.Unlock()

		slog.Info("relay client disconnected", "clients", count)
	})
}
