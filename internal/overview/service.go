package overview

import (
	"context"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	v1 "github.com/storefront-lab/pulse/internal/api/v1"
	"github.com/storefront-lab/pulse/internal/core/analytics"
	"github.com/storefront-lab/pulse/internal/core/storage"
	"github.com/storefront-lab/pulse/internal/realtime"
)

const (
	defaultVelocityPeriod = 10 * analytics.Day
	defaultGraphFloor     = 5
	defaultKeepalive      = 25 * time.Second
	snapshotTimeout       = 10 * time.Second
)

// Options tunes the aggregation windows. Zero values take the defaults.
type Options struct {
	VelocityPeriod  time.Duration
	GraphWindowDays int
	GraphFloor      int // negative disables the floor
	Keepalive       time.Duration
}

func (o Options) withDefaults() Options {
	if o.VelocityPeriod <= 0 {
		o.VelocityPeriod = defaultVelocityPeriod
	}
	if o.GraphWindowDays <= 0 {
		o.GraphWindowDays = analytics.DefaultWindowDays
	}
	if o.GraphFloor < 0 {
		o.GraphFloor = 0
	} else if o.GraphFloor == 0 {
		o.GraphFloor = defaultGraphFloor
	}
	if o.Keepalive <= 0 {
		o.Keepalive = defaultKeepalive
	}
	return o
}

// Service computes dashboard metrics from the event store.
type Service struct {
	store  storage.EventStore
	hub    *realtime.Hub
	opts   Options
	nowFn  func() time.Time
	flight singleflight.Group

	// generation advances on every insert notification. Snapshot callers
	// only share a computation started within the same generation.
	generation atomic.Uint64
}

// NewService creates the dashboard service. hub may be nil when realtime
// refresh is disabled.
func NewService(store storage.EventStore, hub *realtime.Hub, opts Options) *Service {
	if store == nil {
		panic("overview: store must not be nil")
	}
	s := &Service{
		store: store,
		hub:   hub,
		opts:  opts.withDefaults(),
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
	if hub != nil {
		hub.Subscribe(realtime.Filter{}, func(realtime.Notification) {
			s.invalidate()
		})
	}
	return s
}

// invalidate makes later Snapshot calls start a fresh computation instead
// of joining one that may have read the store before the latest insert.
func (s *Service) invalidate() {
	s.generation.Add(1)
}

// ComputeOverview runs the four counts concurrently. Any read failure yields
// a zero Overview; the error is logged, not returned.
func (s *Service) ComputeOverview(ctx context.Context, now time.Time) Overview {
	periods := analytics.TrailingPeriods(now, s.opts.VelocityPeriod)

	var views, clicks, current, previous int64
	g, gctx := errgroup.WithContext(ctx)

	count := func(dst *int64, filter storage.EventFilter) func() error {
		return func() error {
			n, err := s.store.CountEvents(gctx, filter)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		}
	}

	g.Go(count(&views, storage.EventFilter{EventType: v1.EventPageView}))
	g.Go(count(&clicks, storage.EventFilter{EventType: v1.EventClickBuy}))
	g.Go(count(&current, storage.EventFilter{
		EventType: v1.EventPageView,
		Since:     periods.CurrentStart,
		Through:   periods.Now,
	}))
	g.Go(count(&previous, storage.EventFilter{
		EventType: v1.EventPageView,
		Since:     periods.PreviousStart,
		Before:    periods.CurrentStart,
	}))

	if err := g.Wait(); err != nil {
		slog.Error("[Overview] Failed to compute overview", "error", err)
		return Overview{}
	}

	velocity := analytics.NewVelocitySnapshot(current, previous)
	return Overview{
		LifetimeViews:         views,
		LifetimeClicks:        clicks,
		CurrentPeriodViews:    velocity.CurrentPeriodCount,
		PreviousPeriodViews:   velocity.PreviousPeriodCount,
		VelocityPercent:       velocity.VelocityPercent,
		ConversionRatePercent: analytics.ConversionRate(views, clicks),
	}
}

// Traffic buckets recent page views and builds the chart paths. A read
// failure yields an empty series with empty paths.
func (s *Service) Traffic(ctx context.Context, now time.Time) Traffic {
	windowDays := s.opts.GraphWindowDays

	events, err := s.store.RetrieveEvents(ctx, storage.EventFilter{
		EventType: v1.EventPageView,
		Since:     now.Add(-time.Duration(windowDays) * analytics.Day),
	})
	if err != nil {
		slog.Error("[Overview] Failed to load traffic", "error", err)
		return emptyTraffic()
	}

	counts := analytics.BucketDaily(events, now, windowDays)
	path := analytics.SmoothPath(analytics.NormalizeSeries(counts, s.opts.GraphFloor))

	return Traffic{
		Counts: counts,
		Labels: analytics.DayLabels(now, windowDays),
		Max:    analytics.Ceiling(counts, s.opts.GraphFloor),
		Line:   path.String(),
		Area:   path.Area(),
	}
}

// Snapshot builds the full dashboard at the current time. Concurrent
// callers share one computation unless an insert was announced in between.
func (s *Service) Snapshot(ctx context.Context) Dashboard {
	key := "dashboard:" + strconv.FormatUint(s.generation.Load(), 10)
	v, _, _ := s.flight.Do(key, func() (interface{}, error) {
		// Shared by every waiting caller, so one caller leaving must not cancel it.
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), snapshotTimeout)
		defer cancel()
		return s.build(sctx), nil
	})
	return v.(Dashboard)
}

func (s *Service) build(ctx context.Context) Dashboard {
	now := s.nowFn()

	var (
		overview Overview
		traffic  Traffic
	)
	g := new(errgroup.Group)
	g.Go(func() error {
		overview = s.ComputeOverview(ctx, now)
		return nil
	})
	g.Go(func() error {
		traffic = s.Traffic(ctx, now)
		return nil
	})
	_ = g.Wait()

	return Dashboard{
		Overview:    overview,
		Traffic:     traffic,
		GeneratedAt: now,
	}
}
