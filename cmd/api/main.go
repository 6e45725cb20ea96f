package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/secintel/secintel/internal/adapter/controller/http/handlers"
	"github.com/secintel/secintel/internal/adapter/controller/http/middleware"
	"github.com/secintel/secintel/internal/adapter/repository/clickhouse"
	"github.com/secintel/secintel/internal/adapter/repository/memory"
	"github.com/secintel/secintel/internal/analytics"
	"github.com/secintel/secintel/internal/config"
	"github.com/secintel/secintel/internal/seed"
	usecase "github.com/secintel/secintel/internal/usecase/analytics"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logger := config.SetupLogger(cfg)
	logger.Info("Starting security intelligence API",
		"env", cfg.App.Env,
		"port", cfg.App.Port,
		"store", cfg.App.Store,
	)

	store, cleanup, err := buildStore(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize event store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	engine := analytics.NewEngine(store, cfg.Engine.MaxConcurrentScans, logger)
	service := usecase.NewService(engine, logger)
	analyticsHandler := handlers.NewAnalyticsHandler(service)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(cfg.Engine.QueryTimeout))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173", "https://*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Rate limiting
	r.Use(httprate.LimitByIP(100, time.Minute))

	// Health check
	r.Get("/health", handlers.HealthCheck(cfg))

	// Analytics routes
	r.Route("/api/analytics", func(r chi.Router) {
		r.Get("/kpis", analyticsHandler.GetKPIs)
		r.Get("/severity-trend", analyticsHandler.GetSeverityTrend)
		r.Get("/top-attackers", analyticsHandler.GetTopAttackers)
		r.Get("/threat-categories", analyticsHandler.GetThreatCategories)
		r.Get("/event-types", analyticsHandler.GetEventTypes)
		r.Get("/geo-distribution", analyticsHandler.GetGeoDistribution)
		r.Get("/recent-events", analyticsHandler.GetRecentEvents)
		r.Get("/severity-distribution", analyticsHandler.GetSeverityDistribution)
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Shutdown failed", "error", err)
	}
}

// buildStore selects the event store backend. The memory backend carries a
// small seeded corpus for local development without ClickHouse.
func buildStore(cfg *config.Config, logger *slog.Logger) (analytics.EventStore, func(), error) {
	if cfg.App.Store == "memory" {
		gen := seed.NewGenerator(cfg.Seed.Seed, time.Now().UTC().AddDate(0, 0, -cfg.Seed.SpanDays), time.Duration(cfg.Seed.SpanDays)*24*time.Hour)
		store := memory.NewStore(gen.Events(10_000))
		logger.Info("Using in-memory event store", "events", 10_000)
		return store, func() {}, nil
	}

	conn, err := clickhouse.NewConnection(&cfg.ClickHouse, logger)
	if err != nil {
		return nil, nil, err
	}
	repo := clickhouse.NewEventsRepository(conn, logger)
	return repo, func() { conn.Close() }, nil
}
