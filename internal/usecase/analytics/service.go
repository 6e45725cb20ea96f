// Package analytics is the application service in front of the analytics
// engine: it owns the parameter contract of the query API (defaults and
// bounds) so the engine itself can assume pre-validated input.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/secintel/secintel/internal/analytics"
)

// ErrInvalidParam marks a caller-contract violation rejected before the
// engine is invoked.
var ErrInvalidParam = errors.New("invalid parameter")

// Parameter bounds and defaults of the query API.
const (
	DefaultTrendLookback = 168
	MaxTrendLookback     = 1000

	DefaultAttackerLimit = 20
	MaxAttackerLimit     = 100

	DefaultPageSize = 50
	MinPageSize     = 10
	MaxPageSize     = 200
)

// Engine is the computation core the service drives.
type Engine interface {
	Summary(ctx context.Context) (analytics.Summary, error)
	SeverityTrend(ctx context.Context, lookbackHours int) ([]analytics.TrendBucket, error)
	TopAttackers(ctx context.Context, limit int) ([]analytics.AttackerStat, error)
	CategoryBreakdown(ctx context.Context, dimension analytics.Dimension) ([]analytics.CategoryStat, error)
	RecentEvents(ctx context.Context, params analytics.PageParams) (analytics.EventPage, error)
	SeverityDistribution(ctx context.Context) ([]analytics.SeveritySlice, error)
}

// Service handles analytics query requests.
type Service struct {
	engine Engine
	logger *slog.Logger
}

// NewService creates a new analytics service
func NewService(engine Engine, logger *slog.Logger) *Service {
	return &Service{
		engine: engine,
		logger: logger,
	}
}

// KPISummary returns the single-row KPI rollup.
func (s *Service) KPISummary(ctx context.Context) (analytics.Summary, error) {
	summary, err := s.engine.Summary(ctx)
	if err != nil {
		s.logger.Error("Failed to compute KPI summary", "error", err)
		return analytics.Summary{}, err
	}
	return summary, nil
}

// SeverityTrend returns hourly trend buckets. A zero lookback selects the
// default window; out-of-range values are rejected.
func (s *Service) SeverityTrend(ctx context.Context, lookbackHours int) ([]analytics.TrendBucket, error) {
	if lookbackHours == 0 {
		lookbackHours = DefaultTrendLookback
	}
	if lookbackHours < 1 || lookbackHours > MaxTrendLookback {
		return nil, fmt.Errorf("%w: lookback hours must be 1-%d, got %d", ErrInvalidParam, MaxTrendLookback, lookbackHours)
	}

	trend, err := s.engine.SeverityTrend(ctx, lookbackHours)
	if err != nil {
		s.logger.Error("Failed to compute severity trend", "error", err)
		return nil, err
	}
	return trend, nil
}

// TopAttackers returns ranked attacker statistics. A zero limit selects the
// default; out-of-range values are rejected.
func (s *Service) TopAttackers(ctx context.Context, limit int) ([]analytics.AttackerStat, error) {
	if limit == 0 {
		limit = DefaultAttackerLimit
	}
	if limit < 1 || limit > MaxAttackerLimit {
		return nil, fmt.Errorf("%w: limit must be 1-%d, got %d", ErrInvalidParam, MaxAttackerLimit, limit)
	}

	attackers, err := s.engine.TopAttackers(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to compute top attackers", "error", err)
		return nil, err
	}
	return attackers, nil
}

// CategoryBreakdown returns the grouped counts for a dimension selector.
func (s *Service) CategoryBreakdown(ctx context.Context, dimension analytics.Dimension) ([]analytics.CategoryStat, error) {
	if !dimension.Valid() {
		return nil, fmt.Errorf("%w: unknown dimension %q", ErrInvalidParam, dimension)
	}

	breakdown, err := s.engine.CategoryBreakdown(ctx, dimension)
	if err != nil {
		s.logger.Error("Failed to compute category breakdown", "dimension", dimension, "error", err)
		return nil, err
	}
	return breakdown, nil
}

// RecentEvents returns one page of filtered events. Zero page or page size
// select the defaults; out-of-range values are rejected.
func (s *Service) RecentEvents(ctx context.Context, params analytics.PageParams) (analytics.EventPage, error) {
	if params.Page == 0 {
		params.Page = 1
	}
	if params.PageSize == 0 {
		params.PageSize = DefaultPageSize
	}
	if params.Page < 1 {
		return analytics.EventPage{}, fmt.Errorf("%w: page must be >= 1, got %d", ErrInvalidParam, params.Page)
	}
	if params.PageSize < MinPageSize || params.PageSize > MaxPageSize {
		return analytics.EventPage{}, fmt.Errorf("%w: page size must be %d-%d, got %d", ErrInvalidParam, MinPageSize, MaxPageSize, params.PageSize)
	}

	page, err := s.engine.RecentEvents(ctx, params)
	if err != nil {
		s.logger.Error("Failed to list recent events", "error", err)
		return analytics.EventPage{}, err
	}
	return page, nil
}

// SeverityDistribution returns the per-tier event share.
func (s *Service) SeverityDistribution(ctx context.Context) ([]analytics.SeveritySlice, error) {
	dist, err := s.engine.SeverityDistribution(ctx)
	if err != nil {
		s.logger.Error("Failed to compute severity distribution", "error", err)
		return nil, err
	}
	return dist, nil
}
