package realtime

import (
	"sync"
	"testing"

	v1 "github.com/storefront-lab/pulse/internal/api/v1"
	"github.com/stretchr/testify/require"
)

type collector struct {
	mu  sync.Mutex
	got []Notification
}

func (c *collector) add(n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.got = append(c.got, n)
}

func (c *collector) all() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Notification(nil), c.got...)
}

func TestHub_DeliversToMatchingSubscribers(t *testing.T) {
	hub := NewHub()

	var all, views, clicks collector
	hub.Subscribe(Filter{}, all.add)
	hub.Subscribe(Filter{EventType: v1.EventPageView}, views.add)
	hub.Subscribe(Filter{EventType: v1.EventClickBuy}, clicks.add)

	hub.Publish(Notification{ID: "1", EventType: v1.EventPageView})
	hub.Publish(Notification{ID: "2", EventType: v1.EventClickBuy})
	hub.Publish(Notification{ID: "3", EventType: "newsletter"})

	require.Len(t, all.all(), 3)
	require.Equal(t, []Notification{{ID: "1", EventType: v1.EventPageView}}, views.all())
	require.Equal(t, []Notification{{ID: "2", EventType: v1.EventClickBuy}}, clicks.all())
}

func TestHub_ResyncReachesFilteredSubscribers(t *testing.T) {
	hub := NewHub()

	var views collector
	hub.Subscribe(Filter{EventType: v1.EventPageView}, views.add)

	hub.Publish(Notification{})
	require.Equal(t, []Notification{{}}, views.all())
}

func TestHub_UnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub()

	var c collector
	unsubscribe := hub.Subscribe(Filter{}, c.add)
	require.Equal(t, 1, hub.Subscribers())

	hub.Publish(Notification{ID: "1", EventType: v1.EventPageView})
	unsubscribe()
	unsubscribe()
	hub.Publish(Notification{ID: "2", EventType: v1.EventPageView})

	require.Len(t, c.all(), 1)
	require.Equal(t, 0, hub.Subscribers())
}

func TestHub_PublishEvent(t *testing.T) {
	hub := NewHub()

	var c collector
	hub.Subscribe(Filter{}, c.add)
	hub.PublishEvent(v1.AnalyticsEvent{ID: "evt-9", EventType: v1.EventClickBuy})

	require.Equal(t, []Notification{{ID: "evt-9", EventType: v1.EventClickBuy}}, c.all())
}

func TestHub_ConcurrentSubscribeAndPublish(t *testing.T) {
	hub := NewHub()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			unsubscribe := hub.Subscribe(Filter{}, func(Notification) {})
			unsubscribe()
		}()
		go func() {
			defer wg.Done()
			hub.Publish(Notification{ID: "x", EventType: v1.EventPageView})
		}()
	}
	wg.Wait()

	require.Equal(t, 0, hub.Subscribers())
}
