package async

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type ctxKey struct{}

func TestDispatcher_RunsDetachedFromCallerCancellation(t *testing.T) {
	d := NewDispatcher(time.Second)

	parent, cancel := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, "req-1"))
	release := make(chan struct{})
	result := make(chan error, 1)
	value := make(chan interface{}, 1)

	require.NoError(t, d.Go(parent, "detached", func(ctx context.Context) error {
		<-release
		value <- ctx.Value(ctxKey{})
		result <- ctx.Err()
		return nil
	}))

	// The caller finishing must not abort the task.
	cancel()
	close(release)

	require.NoError(t, <-result)
	require.Equal(t, "req-1", <-value)
	require.NoError(t, d.Drain(time.Second))
}

func TestDispatcher_EnforcesTimeout(t *testing.T) {
	d := NewDispatcher(20 * time.Millisecond)

	result := make(chan error, 1)
	require.NoError(t, d.Go(context.Background(), "slow", func(ctx context.Context) error {
		<-ctx.Done()
		result <- ctx.Err()
		return ctx.Err()
	}))

	require.ErrorIs(t, <-result, context.DeadlineExceeded)
	require.NoError(t, d.Drain(time.Second))
	require.Equal(t, int64(1), d.Failed())
}

func TestDispatcher_RecoversPanics(t *testing.T) {
	d := NewDispatcher(time.Second)

	require.NoError(t, d.Go(context.Background(), "panics", func(ctx context.Context) error {
		panic("boom")
	}))
	require.NoError(t, d.Go(context.Background(), "fails", func(ctx context.Context) error {
		return errors.New("write failed")
	}))

	require.NoError(t, d.Drain(time.Second))
	require.Equal(t, int64(2), d.Failed())
	require.Zero(t, d.InFlight())
}

func TestDispatcher_DrainWaitsForTasks(t *testing.T) {
	d := NewDispatcher(time.Second)

	var done atomic.Int32
	for i := 0; i < 10; i++ {
		require.NoError(t, d.Go(context.Background(), "work", func(ctx context.Context) error {
			time.Sleep(5 * time.Millisecond)
			done.Add(1)
			return nil
		}))
	}

	require.NoError(t, d.Drain(time.Second))
	require.Equal(t, int32(10), done.Load())
}

func TestDispatcher_DrainTimesOut(t *testing.T) {
	d := NewDispatcher(time.Second)

	release := make(chan struct{})
	defer close(release)

	require.NoError(t, d.Go(context.Background(), "stuck", func(ctx context.Context) error {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil
	}))

	err := d.Drain(10 * time.Millisecond)
	require.Error(t, err)
	require.ErrorContains(t, err, "timed out")
}

func TestDispatcher_RejectsAfterDrain(t *testing.T) {
	d := NewDispatcher(time.Second)
	require.NoError(t, d.Drain(time.Second))

	var ran atomic.Bool
	err := d.Go(context.Background(), "late", func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})
	require.ErrorIs(t, err, ErrDraining)
	require.False(t, ran.Load())
}
