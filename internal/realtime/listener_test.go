package realtime

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lib/pq"
	v1 "github.com/storefront-lab/pulse/internal/api/v1"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	listenErr error
	listened  string
	ch        chan *pq.Notification
	pings     atomic.Int32
	closed    atomic.Bool
}

func newFakeSource() *fakeSource {
	return &fakeSource{ch: make(chan *pq.Notification, 8)}
}

func (f *fakeSource) Listen(channel string) error {
	f.listened = channel
	return f.listenErr
}

func (f *fakeSource) NotificationChannel() <-chan *pq.Notification { return f.ch }

func (f *fakeSource) Ping() error {
	f.pings.Add(1)
	return nil
}

func (f *fakeSource) Close() error {
	f.closed.Store(true)
	return nil
}

func TestParsePayload(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		want      Notification
		wantError bool
	}{
		{
			name:    "trigger payload",
			payload: `{"id":"6f1c","event_type":"page_view"}`,
			want:    Notification{ID: "6f1c", EventType: v1.EventPageView},
		},
		{name: "not json", payload: "page_view", wantError: true},
		{name: "missing type", payload: `{"id":"6f1c"}`, wantError: true},
		{name: "empty", payload: "", wantError: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParsePayload(tc.payload)
			if tc.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestListener_PublishesNotifications(t *testing.T) {
	hub := NewHub()
	received := make(chan Notification, 8)
	hub.Subscribe(Filter{}, func(n Notification) { received <- n })

	source := newFakeSource()
	listener := newListener(source, "analytics_events", time.Hour, hub)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- listener.Run(ctx) }()

	source.ch <- &pq.Notification{Channel: "analytics_events", Extra: `{"id":"a","event_type":"click_buy"}`}
	source.ch <- &pq.Notification{Channel: "analytics_events", Extra: `garbage`}
	source.ch <- nil
	source.ch <- &pq.Notification{Channel: "analytics_events", Extra: `{"id":"b","event_type":"page_view"}`}

	require.Equal(t, Notification{ID: "a", EventType: v1.EventClickBuy}, <-received)
	require.Equal(t, Notification{}, <-received)
	require.Equal(t, Notification{ID: "b", EventType: v1.EventPageView}, <-received)

	cancel()
	require.NoError(t, <-done)
	require.True(t, source.closed.Load())
	require.Equal(t, "analytics_events", source.listened)
}

func TestListener_ListenFailure(t *testing.T) {
	source := newFakeSource()
	source.listenErr = errors.New("permission denied")

	err := newListener(source, "analytics_events", time.Hour, NewHub()).Run(context.Background())
	require.ErrorContains(t, err, "permission denied")
	require.True(t, source.closed.Load())
}

func TestListener_PingsWhileIdle(t *testing.T) {
	source := newFakeSource()
	listener := newListener(source, "analytics_events", 5*time.Millisecond, NewHub())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- listener.Run(ctx) }()

	require.Eventually(t, func() bool { return source.pings.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}

func TestListener_ClosedChannel(t *testing.T) {
	source := newFakeSource()
	close(source.ch)

	err := newListener(source, "analytics_events", time.Hour, NewHub()).Run(context.Background())
	require.ErrorContains(t, err, "notification channel closed")
}
