// Command seed populates ClickHouse with a synthetic security-event corpus.
// It is idempotent: when the table already holds the target volume it exits
// without inserting.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/secintel/secintel/internal/adapter/repository/clickhouse"
	"github.com/secintel/secintel/internal/config"
	"github.com/secintel/secintel/internal/entity"
	"github.com/secintel/secintel/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := config.SetupLogger(cfg)

	conn, err := waitForClickHouse(&cfg.ClickHouse, logger)
	if err != nil {
		logger.Error("ClickHouse never became available", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	repo := clickhouse.NewEventsRepository(conn, logger)
	ctx := context.Background()

	existing, err := repo.Count(ctx, entity.EventFilters{})
	if err != nil {
		logger.Error("Failed to count existing events", "error", err)
		os.Exit(1)
	}
	if existing >= uint64(cfg.Seed.TotalEvents) {
		logger.Info("Corpus already seeded", "events", existing)
		return
	}

	span := time.Duration(cfg.Seed.SpanDays) * 24 * time.Hour
	base := time.Now().UTC().Add(-span)
	gen := seed.NewGenerator(cfg.Seed.Seed, base, span)

	logger.Info("Seeding corpus",
		"total", cfg.Seed.TotalEvents,
		"batch_size", cfg.Seed.BatchSize,
		"span_days", cfg.Seed.SpanDays,
		"seed", cfg.Seed.Seed,
	)

	start := time.Now()
	inserted := 0
	for inserted < cfg.Seed.TotalEvents {
		batchCount := cfg.Seed.BatchSize
		if remaining := cfg.Seed.TotalEvents - inserted; remaining < batchCount {
			batchCount = remaining
		}

		batchStart := time.Now()
		if err := repo.InsertBatch(ctx, gen.Events(batchCount)); err != nil {
			logger.Error("Batch insert failed", "inserted", inserted, "error", err)
			os.Exit(1)
		}
		inserted += batchCount

		elapsed := time.Since(batchStart)
		logger.Info("Batch inserted",
			"inserted", inserted,
			"total", cfg.Seed.TotalEvents,
			"rate_per_sec", int(float64(batchCount)/elapsed.Seconds()),
		)
	}

	logger.Info("Seeding complete",
		"events", inserted,
		"elapsed", time.Since(start).Round(time.Second),
	)
}

func waitForClickHouse(cfg *config.ClickHouseConfig, logger *slog.Logger) (*clickhouse.Connection, error) {
	const maxRetries = 30

	var conn *clickhouse.Connection
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		conn, err = clickhouse.NewConnection(cfg, logger)
		if err == nil {
			return conn, nil
		}
		logger.Info("Waiting for ClickHouse", "attempt", attempt, "max", maxRetries)
		time.Sleep(2 * time.Second)
	}
	return nil, err
}
