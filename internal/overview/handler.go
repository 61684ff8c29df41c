package overview

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/storefront-lab/pulse/internal/realtime"
	"github.com/storefront-lab/pulse/internal/session"
)

const (
	eventSnapshot = "snapshot"
	eventPing     = "ping"
)

// RegisterRoutes registers the admin dashboard routes. Every route requires
// an admin session.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	admin := r.Group("/v1/admin", session.RequireAdmin())
	admin.GET("/overview", s.OverviewHandler)
	admin.GET("/overview/stream", s.StreamHandler)
}

// OverviewHandler returns the current dashboard.
func (s *Service) OverviewHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.Snapshot(c.Request.Context()))
}

// StreamHandler serves the dashboard as server-sent events. A snapshot is
// sent on connect and again after each stored event.
func (s *Service) StreamHandler(c *gin.Context) {
	ctx := c.Request.Context()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	// One pending refresh is enough; a burst of inserts collapses into it.
	updates := make(chan struct{}, 1)
	if s.hub != nil {
		unsubscribe := s.hub.Subscribe(realtime.Filter{}, func(realtime.Notification) {
			// Advance before signalling; hub callback order is unspecified.
			s.invalidate()
			select {
			case updates <- struct{}{}:
			default:
			}
		})
		defer unsubscribe()
	}

	keepalive := time.NewTicker(s.opts.Keepalive)
	defer keepalive.Stop()

	slog.Debug("[Overview] Stream opened", "remote", c.ClientIP())

	c.SSEvent(eventSnapshot, s.Snapshot(ctx))
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-updates:
			c.SSEvent(eventSnapshot, s.Snapshot(ctx))
			return true
		case <-keepalive.C:
			c.SSEvent(eventPing, gin.H{"at": s.nowFn()})
			return true
		}
	})

	slog.Debug("[Overview] Stream closed", "remote", c.ClientIP())
}
