// Package async runs fire-and-forget work on detached goroutines that
// recover from panics, respect a per-task timeout and can be drained on
// shutdown.
package async

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

// ErrDraining is returned by Go once Drain has started.
var ErrDraining = errors.New("dispatcher is draining")

// Dispatcher launches detached tasks.
type Dispatcher struct {
	timeout time.Duration

	mu       sync.RWMutex
	draining bool
	wg       sync.WaitGroup

	inFlight atomic.Int64
	failed   atomic.Int64
}

// NewDispatcher creates a dispatcher whose tasks are each bounded by timeout.
func NewDispatcher(timeout time.Duration) *Dispatcher {
	return &Dispatcher{timeout: timeout}
}

// Go runs fn on its own goroutine and returns immediately. The task context
// keeps parent's values but not its cancellation, so a finished HTTP request
// does not abort the write. Errors and panics are logged, never returned.
//
// Example:
//
//	dispatcher.Go(c.Request.Context(), "record page_view", func(ctx context.Context) error {
//	    return store.AppendEvent(ctx, evt)
//	})
func (d *Dispatcher) Go(parent context.Context, taskName string, fn func(context.Context) error) error {
	d.mu.RLock()
	if d.draining {
		d.mu.RUnlock()
		return ErrDraining
	}
	d.wg.Add(1)
	d.mu.RUnlock()

	d.inFlight.Add(1)
	go func() {
		defer d.wg.Done()
		defer d.inFlight.Add(-1)

		ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), d.timeout)
		defer cancel()

		defer func() {
			if r := recover(); r != nil {
				d.failed.Add(1)
				slog.Error("[Dispatcher] Panic in task",
					"task", taskName,
					"panic", fmt.Sprint(r),
					"stack", string(debug.Stack()))
			}
		}()

		if err := fn(ctx); err != nil {
			d.failed.Add(1)
			slog.Error("[Dispatcher] Task failed",
				"task", taskName,
				"error", err)
		}
	}()
	return nil
}

// InFlight returns the number of tasks still running.
func (d *Dispatcher) InFlight() int64 {
	return d.inFlight.Load()
}

// Failed returns how many tasks have returned an error or panicked.
func (d *Dispatcher) Failed() int64 {
	return d.failed.Load()
}

// Drain stops accepting tasks and waits up to timeout for running ones.
func (d *Dispatcher) Drain(timeout time.Duration) error {
	d.mu.Lock()
	d.draining = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("[Dispatcher] Drained")
		return nil
	case <-time.After(timeout):
		remaining := d.InFlight()
		slog.Warn("[Dispatcher] Drain timed out", "timeout", timeout, "in_flight", remaining)
		return fmt.Errorf("dispatcher drain timed out after %v with %d task(s) in flight", timeout, remaining)
	}
}
