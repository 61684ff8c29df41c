package tracking

import (
	"context"
	"log/slog"

	v1 "github.com/storefront-lab/pulse/internal/api/v1"
	"github.com/storefront-lab/pulse/internal/async"
	"github.com/storefront-lab/pulse/internal/core/storage"
	"github.com/storefront-lab/pulse/internal/session"
)

// Recorder captures visitor events without ever blocking or failing the caller.
type Recorder struct {
	store      storage.EventStore
	oracle     session.Oracle
	dispatcher *async.Dispatcher
}

func NewRecorder(store storage.EventStore, oracle session.Oracle, dispatcher *async.Dispatcher) *Recorder {
	if store == nil {
		panic("tracking: store must not be nil")
	}
	if oracle == nil {
		panic("tracking: oracle must not be nil")
	}
	if dispatcher == nil {
		panic("tracking: dispatcher must not be nil")
	}
	return &Recorder{
		store:      store,
		oracle:     oracle,
		dispatcher: dispatcher,
	}
}

// Record appends one event in the background unless the actor is an
// administrator. It returns as soon as the write is dispatched; failures
// are logged and dropped.
func (r *Recorder) Record(ctx context.Context, eventType string, metadata map[string]interface{}) {
	admin, err := r.oracle.IsAdmin(ctx)
	if err != nil {
		// Unknown session: losing a visitor event beats counting the owner.
		slog.Warn("[Tracking] Session check failed, dropping event",
			"event_type", eventType,
			"error", err)
		return
	}
	if admin {
		slog.Debug("[Tracking] Admin session, event not recorded", "event_type", eventType)
		return
	}

	evt := &v1.AnalyticsEvent{
		EventType: eventType,
		Metadata:  metadata,
	}
	if err := evt.Validate(); err != nil {
		slog.Warn("[Tracking] Dropping invalid event", "event_type", eventType, "error", err)
		return
	}

	err = r.dispatcher.Go(ctx, "record "+eventType, func(ctx context.Context) error {
		if err := r.store.AppendEvent(ctx, evt); err != nil {
			return err
		}
		slog.Debug("[Tracking] Recorded event",
			"event_id", evt.ID,
			"event_type", evt.EventType)
		return nil
	})
	if err != nil {
		slog.Warn("[Tracking] Event not dispatched", "event_type", eventType, "error", err)
	}
}
