// Package main is the entry point for the course planner API server.
//
// The architecture follows Clean Architecture and DDD:
// - Domain: the planning engine, pure and store-agnostic
// - Application: query handlers orchestrating one operation each
// - Infrastructure: PostgreSQL graph store, Redis read-model cache
// - Interface: HTTP endpoints
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/unipath/course-planner/config"
	"github.com/unipath/course-planner/internal/application/query"
	"github.com/unipath/course-planner/internal/infrastructure/persistence/postgres"
	rediscache "github.com/unipath/course-planner/internal/infrastructure/persistence/redis"
	httpserver "github.com/unipath/course-planner/internal/interface/http"
	"github.com/unipath/course-planner/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURATION
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGGING
	// ─────────────────────────────────────────────────────────────────────────
	log := logger.New(logger.Options{
		Output:    os.Stdout,
		Level:     logger.ParseLevel(cfg.Observability.LogLevel),
		AddCaller: cfg.App.Debug,
	})
	log.Info("starting course planner",
		logger.String("env", string(cfg.App.Environment)),
		logger.String("version", cfg.App.Version),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. POSTGRESQL
	// ─────────────────────────────────────────────────────────────────────────
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	pgCfg := postgres.DefaultConfig()
	pgCfg.URL = cfg.Database.URL
	pgCfg.MaxConns = int32(cfg.Database.MaxOpenConns)
	pgCfg.MinConns = int32(cfg.Database.MaxIdleConns)
	pgCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime
	pgCfg.MaxConnIdleTime = cfg.Database.ConnMaxIdleTime
	pgCfg.QueryTimeout = cfg.Database.QueryTimeout

	conn, err := postgres.NewConnection(ctx, pgCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer conn.Close()
	log.Info("connected to postgres")

	if cfg.Database.MigrateOnStart {
		migrator := postgres.NewMigrator(conn)
		if err := migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("migrations applied")
	}

	store := postgres.NewGraphStore(conn, log)

	// ─────────────────────────────────────────────────────────────────────────
	// 4. REDIS (optional summary cache)
	// ─────────────────────────────────────────────────────────────────────────
	var summaryCache query.SummaryCache
	var cache *rediscache.Cache

	useCache := !cfg.Redis.Disabled && cfg.Features.IsEnabled(config.FeatureAnalyticsSummaryCache)
	if useCache {
		redisCfg := rediscache.DefaultConfig()
		redisCfg.Host = cfg.Redis.Host
		redisCfg.Port = cfg.Redis.Port
		redisCfg.Password = cfg.Redis.Password
		redisCfg.DB = cfg.Redis.DB
		redisCfg.PoolSize = cfg.Redis.PoolSize
		redisCfg.MinIdleConns = cfg.Redis.MinIdleConns
		redisCfg.DialTimeout = cfg.Redis.DialTimeout
		redisCfg.ReadTimeout = cfg.Redis.ReadTimeout
		redisCfg.WriteTimeout = cfg.Redis.WriteTimeout

		cache, err = rediscache.NewCache(redisCfg)
		if err != nil {
			// Redis is best-effort; the summary falls back to the store.
			log.Warn("redis unavailable, summary cache disabled", logger.Err(err))
		} else {
			defer cache.Close()
			summaryCache = rediscache.NewSummaryCache(cache)
			log.Info("connected to redis")
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. APPLICATION LAYER
	// ─────────────────────────────────────────────────────────────────────────
	deps := httpserver.Dependencies{
		CheckEligibilityHandler: query.NewCheckEligibilityHandler(store),
		PlanSequenceHandler:     query.NewPlanSequenceHandler(store),
		ShortestPathHandler:     query.NewShortestPathHandler(store),
		SummarizeHandler:        query.NewSummarizeHandler(store, summaryCache, log),
		Logger:                  log,
		HealthChecker:           newHealthChecker(conn, cache),
	}

	if cfg.Features.IsEnabled(config.FeatureDiagnosticsCycles) {
		deps.FindCyclesHandler = query.NewFindCyclesHandler(store)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. HTTP SERVER
	// ─────────────────────────────────────────────────────────────────────────
	serverCfg := httpserver.DefaultConfig()
	serverCfg.Host = cfg.Server.Host
	serverCfg.Port = cfg.Server.Port
	serverCfg.ReadTimeout = cfg.Server.ReadTimeout
	serverCfg.WriteTimeout = cfg.Server.WriteTimeout
	serverCfg.IdleTimeout = cfg.Server.IdleTimeout
	serverCfg.EnableCORS = cfg.Server.EnableCORS
	serverCfg.AllowedOrigins = cfg.Server.AllowedOrigins
	serverCfg.RateLimitPerMinute = cfg.Server.RateLimitPerMinute
	serverCfg.APIKeyHashes = cfg.Server.APIKeyHashes
	serverCfg.EnableShortestPath = cfg.Features.IsEnabled(config.FeaturePlannerShortestPath)

	server := httpserver.NewServer(serverCfg, deps)
	errCh := server.StartAsync()

	// ─────────────────────────────────────────────────────────────────────────
	// 7. GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// healthChecker aggregates backing-service health for the probe endpoints.
type healthChecker struct {
	conn  *postgres.Connection
	cache *rediscache.Cache
}

func newHealthChecker(conn *postgres.Connection, cache *rediscache.Cache) *healthChecker {
	return &healthChecker{conn: conn, cache: cache}
}

func (h *healthChecker) Check(ctx context.Context) httpserver.HealthReport {
	report := httpserver.HealthReport{
		Healthy:    true,
		Ready:      true,
		Components: make(map[string]string),
	}

	status, err := h.conn.Health(ctx)
	switch {
	case err != nil:
		report.Healthy = false
		report.Ready = false
		report.Message = "postgres unreachable"
		report.Components["postgres"] = err.Error()
	case !status.Healthy:
		report.Healthy = false
		report.Ready = false
		report.Message = "postgres unreachable"
		report.Components["postgres"] = status.Error
	default:
		report.Components["postgres"] = fmt.Sprintf(
			"ok (conns %d/%d, ping %s)",
			status.AcquiredConns, status.MaxConns, status.PingLatency,
		)
	}

	// Redis is optional: a dead cache degrades performance, not readiness.
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			report.Components["redis"] = err.Error()
		} else {
			report.Components["redis"] = "ok"
		}
	}

	return report
}
