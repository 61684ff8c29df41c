package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/storefront-lab/pulse/internal/async"
	"github.com/storefront-lab/pulse/internal/config"
	"github.com/storefront-lab/pulse/internal/core/storage"
	"github.com/storefront-lab/pulse/internal/core/storage/memory"
	"github.com/storefront-lab/pulse/internal/core/storage/postgres"
	"github.com/storefront-lab/pulse/internal/migrations"
	"github.com/storefront-lab/pulse/internal/overview"
	"github.com/storefront-lab/pulse/internal/realtime"
	"github.com/storefront-lab/pulse/internal/server"
	"github.com/storefront-lab/pulse/internal/session"
	"github.com/storefront-lab/pulse/internal/tracking"
)

func main() {
	configPath := flag.String("config", "pulse.yaml", "Path to configuration file")
	printConfig := flag.Bool("print-config", false, "Print the effective configuration as YAML and exit")
	issueToken := flag.Bool("issue-admin-token", false, "Print a signed admin session token and exit")
	flag.Parse()

	// 0. Initialize Logger
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	// 1. Load Configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Server.SlogLevel(),
	})))

	if *printConfig {
		out, err := yaml.Marshal(cfg.Redacted())
		if err != nil {
			slog.Error("Failed to render config", "error", err)
			os.Exit(1)
		}
		fmt.Print(string(out))
		return
	}

	tokens, err := session.NewTokenService(cfg.Session.Secret, cfg.Timing.TokenTTL)
	if err != nil {
		slog.Error("Failed to initialize session tokens", "error", err)
		os.Exit(1)
	}

	if *issueToken {
		token, expiresAt, err := tokens.Issue("admin", session.RoleAdmin)
		if err != nil {
			slog.Error("Failed to issue admin token", "error", err)
			os.Exit(1)
		}
		fmt.Println(token)
		fmt.Fprintf(os.Stderr, "expires %s; send as cookie %q or Authorization: Bearer\n",
			expiresAt.Format("2006-01-02T15:04:05Z07:00"), cfg.Session.CookieName)
		return
	}

	slog.Info("Loaded config", "config", cfg.Redacted())

	// 2. Initialize Storage
	hub := realtime.NewHub()
	store, listener, closeStore, err := openStore(cfg, hub)
	if err != nil {
		slog.Error("Failed to initialize event store", "type", cfg.Database.Type, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	var dashboardHub *realtime.Hub
	if cfg.Realtime.Enabled {
		dashboardHub = hub
	}

	// 3. Initialize Tracking (fire-and-forget writes)
	dispatcher := async.NewDispatcher(cfg.Timing.WriteTimeout)
	recorder := tracking.NewRecorder(store, session.ContextOracle{}, dispatcher)
	trackingSvc := tracking.NewService(recorder, cfg.Server.MaxBodySizeKB)

	// 4. Initialize Overview (admin dashboard)
	graphFloor := cfg.Overview.GraphFloor
	if graphFloor == 0 {
		graphFloor = -1 // Options treats 0 as unset
	}
	overviewSvc := overview.NewService(store, dashboardHub, overview.Options{
		VelocityPeriod:  cfg.Timing.VelocityPeriod,
		GraphWindowDays: cfg.Overview.GraphWindowDays,
		GraphFloor:      graphFloor,
		Keepalive:       cfg.Timing.Keepalive,
	})

	// 5. Initialize Server
	srv := server.New(cfg.Server.Addr(), store, cfg.Server.Mode)
	srv.Engine.Use(session.Middleware(tokens, cfg.Session.CookieName))
	trackingSvc.RegisterRoutes(srv.Engine)
	overviewSvc.RegisterRoutes(srv.Engine)

	// 6. Start Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if listener != nil {
		go func() {
			if err := listener.Run(ctx); err != nil {
				slog.Error("[Realtime] Listener stopped with error", "error", err)
			}
		}()
	}

	// Signal handler triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	if err := dispatcher.Drain(cfg.Timing.DrainTimeout); err != nil {
		slog.Warn("Pending event writes abandoned", "error", err, "in_flight", dispatcher.InFlight())
	}

	slog.Info("Shutdown complete")
}

// openStore builds the configured event store. For postgres it also runs
// migrations and, when realtime is enabled, prepares the NOTIFY listener.
func openStore(cfg *config.Config, hub *realtime.Hub) (storage.EventStore, *realtime.Listener, func(), error) {
	if cfg.Database.Type == config.StoreTypeMemory {
		var opts []memory.Option
		if cfg.Realtime.Enabled {
			opts = append(opts, memory.WithAppendHook(hub.PublishEvent))
		}
		slog.Warn("Using in-memory event store; events are lost on restart")
		return memory.NewStore(opts...), nil, func() {}, nil
	}

	db, err := postgres.Open(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := migrations.RunMigrations(db, cfg.Database.AutoMigrate); err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	adapter, err := postgres.NewAdapter(db)
	if err != nil {
		db.Close()
		return nil, nil, nil, err
	}

	var listener *realtime.Listener
	if cfg.Realtime.Enabled {
		listener = realtime.NewListener(realtime.ListenerConfig{
			DSN:          cfg.Database.DSN,
			Channel:      cfg.Realtime.Channel,
			MinReconnect: cfg.Timing.MinReconnect,
			MaxReconnect: cfg.Timing.MaxReconnect,
			PingInterval: cfg.Timing.PingInterval,
		}, hub)
	}

	closeFn := func() {
		if err := adapter.Close(); err != nil {
			slog.Error("[Postgres] Failed to close adapter", "error", err)
		}
	}
	return adapter, listener, closeFn, nil
}
