package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/secintel/secintel/internal/entity"
)

// Failure kinds surfaced by the Engine. Callers distinguish them with
// errors.Is; neither is ever silently converted into an empty result.
var (
	// ErrStoreUnavailable wraps any failure of the underlying event store.
	ErrStoreUnavailable = errors.New("event store unavailable")
	// ErrScanSlotsExhausted is returned when all scan slots stay busy for
	// the whole lifetime of the caller's context.
	ErrScanSlotsExhausted = errors.New("scan slots exhausted")
)

// EventStore is the read-only view the engine requires from its storage
// collaborator: the filtered event set and an efficient count that does not
// materialize rows.
type EventStore interface {
	Events(ctx context.Context, filters entity.EventFilters) ([]entity.SecurityEvent, error)
	Count(ctx context.Context, filters entity.EventFilters) (uint64, error)
}

const defaultMaxScans = 8

// Engine binds the aggregation functions to an EventStore. Each query
// acquires one scan slot for the duration of the call, so at most
// maxConcurrentScans store reads run at once; callers beyond that block
// until a slot frees or their context expires. The engine itself is
// stateless across calls and safe for concurrent use.
type Engine struct {
	store  EventStore
	slots  chan struct{}
	logger *slog.Logger
}

// NewEngine creates an analytics engine over the given store.
func NewEngine(store EventStore, maxConcurrentScans int, logger *slog.Logger) *Engine {
	if maxConcurrentScans < 1 {
		maxConcurrentScans = defaultMaxScans
	}
	return &Engine{
		store:  store,
		slots:  make(chan struct{}, maxConcurrentScans),
		logger: logger,
	}
}

func (e *Engine) acquireSlot(ctx context.Context) error {
	select {
	case e.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrScanSlotsExhausted, ctx.Err())
	}
}

func (e *Engine) releaseSlot() {
	<-e.slots
}

// fetch reads the filtered event set and checks for cancellation at the
// boundary between fetching and aggregating.
func (e *Engine) fetch(ctx context.Context, filters entity.EventFilters) ([]entity.SecurityEvent, error) {
	events, err := e.store.Events(ctx, filters)
	if err != nil {
		e.logger.Error("event store read failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// Summary computes the KPI rollup over the full event set.
func (e *Engine) Summary(ctx context.Context) (Summary, error) {
	if err := e.acquireSlot(ctx); err != nil {
		return Summary{}, err
	}
	defer e.releaseSlot()

	events, err := e.fetch(ctx, entity.EventFilters{})
	if err != nil {
		return Summary{}, err
	}
	return Summarize(events, time.Now().UTC()), nil
}

// SeverityTrend computes hourly per-severity trend buckets over the trailing
// lookbackHours window.
func (e *Engine) SeverityTrend(ctx context.Context, lookbackHours int) ([]TrendBucket, error) {
	if err := e.acquireSlot(ctx); err != nil {
		return nil, err
	}
	defer e.releaseSlot()

	events, err := e.fetch(ctx, entity.EventFilters{})
	if err != nil {
		return nil, err
	}
	return TrendBuckets(events, lookbackHours), nil
}

// TopAttackers ranks source addresses by event volume.
func (e *Engine) TopAttackers(ctx context.Context, limit int) ([]AttackerStat, error) {
	if err := e.acquireSlot(ctx); err != nil {
		return nil, err
	}
	defer e.releaseSlot()

	events, err := e.fetch(ctx, entity.EventFilters{})
	if err != nil {
		return nil, err
	}
	return TopAttackers(events, limit), nil
}

// CategoryBreakdown computes the grouped counts for one dimension.
func (e *Engine) CategoryBreakdown(ctx context.Context, dimension Dimension) ([]CategoryStat, error) {
	if err := e.acquireSlot(ctx); err != nil {
		return nil, err
	}
	defer e.releaseSlot()

	events, err := e.fetch(ctx, entity.EventFilters{})
	if err != nil {
		return nil, err
	}
	return CategoryBreakdown(events, dimension), nil
}

// RecentEvents returns one page of filtered events, newest first.
func (e *Engine) RecentEvents(ctx context.Context, params PageParams) (EventPage, error) {
	if err := e.acquireSlot(ctx); err != nil {
		return EventPage{}, err
	}
	defer e.releaseSlot()

	// Equality filters are pushed down to the store; the page slice and
	// metadata are computed in the core.
	events, err := e.fetch(ctx, entity.EventFilters{
		Severity:  params.Severity,
		EventType: params.EventType,
	})
	if err != nil {
		return EventPage{}, err
	}
	return PaginateEvents(events, params), nil
}

// SeverityDistribution computes the per-tier share of all events.
func (e *Engine) SeverityDistribution(ctx context.Context) ([]SeveritySlice, error) {
	if err := e.acquireSlot(ctx); err != nil {
		return nil, err
	}
	defer e.releaseSlot()

	events, err := e.fetch(ctx, entity.EventFilters{})
	if err != nil {
		return nil, err
	}
	return SeverityDistribution(events), nil
}

// TotalEvents reports the number of stored events matching the filters
// without materializing rows.
func (e *Engine) TotalEvents(ctx context.Context, filters entity.EventFilters) (uint64, error) {
	if err := e.acquireSlot(ctx); err != nil {
		return 0, err
	}
	defer e.releaseSlot()

	count, err := e.store.Count(ctx, filters)
	if err != nil {
		e.logger.Error("event store count failed", "error", err)
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return count, nil
}
