package realtime

import (
	"log/slog"
	"sync"

	v1 "github.com/storefront-lab/pulse/internal/api/v1"
)

// Notification announces that one analytics event was inserted. A zero
// Notification means inserts may have been missed and readers should resync.
type Notification struct {
	ID        string `json:"id"`
	EventType string `json:"event_type"`
}

// Filter restricts which notifications a subscriber receives.
type Filter struct {
	// EventType matches exactly; empty matches every insert.
	EventType string
}

func (f Filter) matches(n Notification) bool {
	return f.EventType == "" || n.EventType == "" || f.EventType == n.EventType
}

type subscription struct {
	filter Filter
	fn     func(Notification)
}

// Hub fans insert notifications out to in-process subscribers.
// Callbacks run on the publisher's goroutine and must not block.
type Hub struct {
	mu   sync.RWMutex
	subs map[uint64]subscription
	next uint64
}

// NewHub creates a hub with no subscribers.
func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]subscription)}
}

// Subscribe registers fn for notifications matching filter and returns a
// func that cancels the subscription. Calling it more than once is safe.
func (h *Hub) Subscribe(filter Filter, fn func(Notification)) func() {
	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = subscription{filter: filter, fn: fn}
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

// Publish delivers n to every matching subscriber.
func (h *Hub) Publish(n Notification) {
	h.mu.RLock()
	targets := make([]func(Notification), 0, len(h.subs))
	for _, sub := range h.subs {
		if sub.filter.matches(n) {
			targets = append(targets, sub.fn)
		}
	}
	h.mu.RUnlock()

	slog.Debug("[Realtime] Publishing notification",
		"event_id", n.ID,
		"event_type", n.EventType,
		"subscribers", len(targets))

	for _, fn := range targets {
		fn(n)
	}
}

// PublishEvent adapts Publish to the in-memory store's append hook.
func (h *Hub) PublishEvent(evt v1.AnalyticsEvent) {
	h.Publish(Notification{ID: evt.ID, EventType: evt.EventType})
}

// Subscribers returns the current subscriber count.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
