package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"
)

// ListenerConfig holds the LISTEN connection settings.
type ListenerConfig struct {
	DSN          string
	Channel      string
	MinReconnect time.Duration
	MaxReconnect time.Duration
	PingInterval time.Duration
}

// notificationSource is the subset of *pq.Listener the run loop needs.
type notificationSource interface {
	Listen(channel string) error
	NotificationChannel() <-chan *pq.Notification
	Ping() error
	Close() error
}

// Listener forwards PostgreSQL NOTIFY payloads on one channel into a Hub.
type Listener struct {
	source       notificationSource
	channel      string
	pingInterval time.Duration
	hub          *Hub
}

// NewListener opens a dedicated LISTEN connection. pq reconnects on its
// own with backoff between MinReconnect and MaxReconnect.
func NewListener(cfg ListenerConfig, hub *Hub) *Listener {
	pqListener := pq.NewListener(cfg.DSN, cfg.MinReconnect, cfg.MaxReconnect, logListenerEvent)
	return newListener(pqListener, cfg.Channel, cfg.PingInterval, hub)
}

const defaultPingInterval = 90 * time.Second

func newListener(source notificationSource, channel string, pingInterval time.Duration, hub *Hub) *Listener {
	if pingInterval <= 0 {
		pingInterval = defaultPingInterval
	}
	return &Listener{
		source:       source,
		channel:      channel,
		pingInterval: pingInterval,
		hub:          hub,
	}
}

// Run subscribes to the channel and publishes notifications until ctx is
// cancelled. The underlying connection is closed on return.
func (l *Listener) Run(ctx context.Context) error {
	defer l.source.Close()

	if err := l.source.Listen(l.channel); err != nil {
		return fmt.Errorf("failed to listen on channel %q: %w", l.channel, err)
	}
	slog.Info("[Realtime] Listening for inserts", "channel", l.channel)

	ticker := time.NewTicker(l.pingInterval)
	defer ticker.Stop()

	notifications := l.source.NotificationChannel()
	for {
		select {
		case <-ctx.Done():
			slog.Info("[Realtime] Listener stopped", "channel", l.channel)
			return nil

		case n, ok := <-notifications:
			if !ok {
				return fmt.Errorf("notification channel closed")
			}
			if n == nil {
				// pq sends nil after a reconnect; notifications may have been missed.
				slog.Warn("[Realtime] Listener reconnected, publishing resync")
				l.hub.Publish(Notification{})
				continue
			}
			notification, err := ParsePayload(n.Extra)
			if err != nil {
				slog.Warn("[Realtime] Dropping malformed notification",
					"channel", n.Channel,
					"payload", n.Extra,
					"error", err)
				continue
			}
			l.hub.Publish(notification)

		case <-ticker.C:
			if err := l.source.Ping(); err != nil {
				slog.Warn("[Realtime] Listener ping failed", "error", err)
			}
		}
	}
}

// ParsePayload decodes the JSON body the insert trigger sends.
func ParsePayload(payload string) (Notification, error) {
	var n Notification
	if err := json.Unmarshal([]byte(payload), &n); err != nil {
		return Notification{}, fmt.Errorf("invalid notification payload: %w", err)
	}
	if n.EventType == "" {
		return Notification{}, fmt.Errorf("notification payload has no event_type")
	}
	return n, nil
}

func logListenerEvent(event pq.ListenerEventType, err error) {
	switch event {
	case pq.ListenerEventConnected:
		slog.Info("[Realtime] Listener connected")
	case pq.ListenerEventDisconnected:
		slog.Warn("[Realtime] Listener disconnected", "error", err)
	case pq.ListenerEventReconnected:
		slog.Info("[Realtime] Listener reconnected")
	case pq.ListenerEventConnectionAttemptFailed:
		slog.Error("[Realtime] Listener connection attempt failed", "error", err)
	}
}
