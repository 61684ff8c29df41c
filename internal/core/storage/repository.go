package storage

import (
	"context"
	"errors"
	"time"

	v1 "github.com/storefront-lab/pulse/internal/api/v1"
)

// ErrInvalidEvent is returned when an event fails validation before append.
var ErrInvalidEvent = errors.New("invalid analytics event")

// EventFilter restricts counts and reads. Zero values are unbounded.
type EventFilter struct {
	// EventType matches exactly; empty matches every type.
	EventType string
	// Since is an inclusive lower bound on CreatedAt.
	Since time.Time
	// Before is an exclusive upper bound on CreatedAt.
	Before time.Time
	// Through is an inclusive upper bound on CreatedAt.
	Through time.Time
}

// Matches reports whether evt falls inside the filter.
func (f EventFilter) Matches(evt *v1.AnalyticsEvent) bool {
	if evt == nil {
		return false
	}
	if f.EventType != "" && evt.EventType != f.EventType {
		return false
	}
	if !f.Since.IsZero() && evt.CreatedAt.Before(f.Since) {
		return false
	}
	if !f.Before.IsZero() && !evt.CreatedAt.Before(f.Before) {
		return false
	}
	if !f.Through.IsZero() && evt.CreatedAt.After(f.Through) {
		return false
	}
	return true
}

// EventStore is the append-only analytics log.
type EventStore interface {
	// AppendEvent inserts evt and populates its ID and CreatedAt.
	AppendEvent(ctx context.Context, evt *v1.AnalyticsEvent) error

	CountEvents(ctx context.Context, filter EventFilter) (int64, error)

	// RetrieveEvents returns matching events ordered by CreatedAt ascending.
	RetrieveEvents(ctx context.Context, filter EventFilter) ([]*v1.AnalyticsEvent, error)

	Ping(ctx context.Context) error
}
