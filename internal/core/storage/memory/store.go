package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	v1 "github.com/storefront-lab/pulse/internal/api/v1"
	"github.com/storefront-lab/pulse/internal/core/storage"
)

// Store is an in-memory implementation of storage.EventStore.
// Useful for testing and single-process development.
type Store struct {
	mu     sync.RWMutex
	events []*v1.AnalyticsEvent
	last   time.Time

	now      func() time.Time
	onAppend func(v1.AnalyticsEvent)
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used to stamp CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithAppendHook registers fn to run after every successful append, outside
// the store lock. fn receives a copy of the stored event.
func WithAppendHook(fn func(v1.AnalyticsEvent)) Option {
	return func(s *Store) { s.onAppend = fn }
}

// NewStore creates an empty in-memory event store.
func NewStore(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) AppendEvent(ctx context.Context, evt *v1.AnalyticsEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if evt == nil {
		return fmt.Errorf("%w: nil event", storage.ErrInvalidEvent)
	}
	if err := evt.Validate(); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrInvalidEvent, err)
	}

	s.mu.Lock()
	createdAt := s.now().UTC()
	// CreatedAt never goes backwards relative to the previous append.
	if createdAt.Before(s.last) {
		createdAt = s.last
	}
	s.last = createdAt

	stored := cloneEvent(evt)
	stored.ID = uuid.NewString()
	stored.CreatedAt = createdAt
	s.events = append(s.events, stored)
	hook := s.onAppend
	s.mu.Unlock()

	evt.ID = stored.ID
	evt.CreatedAt = stored.CreatedAt

	if hook != nil {
		hook(*cloneEvent(stored))
	}
	return nil
}

func (s *Store) CountEvents(ctx context.Context, filter storage.EventFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, evt := range s.events {
		if filter.Matches(evt) {
			n++
		}
	}
	return n, nil
}

func (s *Store) RetrieveEvents(ctx context.Context, filter storage.EventFilter) ([]*v1.AnalyticsEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	result := make([]*v1.AnalyticsEvent, 0)
	for _, evt := range s.events {
		if filter.Matches(evt) {
			// Return a copy to prevent external modification
			result = append(result, cloneEvent(evt))
		}
	}
	s.mu.RUnlock()

	// Appends are already in CreatedAt order; stable keeps ties in insertion order.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Len returns the number of stored events.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

func cloneEvent(evt *v1.AnalyticsEvent) *v1.AnalyticsEvent {
	copy := *evt
	if evt.Metadata != nil {
		copy.Metadata = make(map[string]interface{}, len(evt.Metadata))
		for k, v := range evt.Metadata {
			copy.Metadata[k] = v
		}
	}
	return &copy
}
