package analytics

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secintel/secintel/internal/entity"
)

// stubStore serves a fixed event set and can be made to fail or block.
type stubStore struct {
	events  []entity.SecurityEvent
	err     error
	release chan struct{} // when set, Events blocks until closed
}

func (s *stubStore) Events(ctx context.Context, filters entity.EventFilters) ([]entity.SecurityEvent, error) {
	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	var out []entity.SecurityEvent
	for _, e := range s.events {
		if filters.Matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubStore) Count(ctx context.Context, filters entity.EventFilters) (uint64, error) {
	if s.err != nil {
		return 0, s.err
	}
	var n uint64
	for _, e := range s.events {
		if filters.Matches(e) {
			n++
		}
	}
	return n, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEngineStoreFailureIsNotEmptyResult(t *testing.T) {
	store := &stubStore{err: errors.New("connection refused")}
	engine := NewEngine(store, 2, testLogger())

	_, err := engine.Summary(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = engine.TopAttackers(context.Background(), 10)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = engine.TotalEvents(context.Background(), entity.EventFilters{})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestEngineScanSlotExhaustion(t *testing.T) {
	store := &stubStore{release: make(chan struct{})}
	engine := NewEngine(store, 1, testLogger())

	// Occupy the single slot with a blocked scan.
	started := make(chan struct{})
	done := make(chan struct{})
	go func() {
		close(started)
		engine.Summary(context.Background())
		close(done)
	}()
	<-started
	// Give the goroutine time to take the slot and enter the store call.
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := engine.SeverityDistribution(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScanSlotsExhausted)

	// Unblock the first scan; the slot must come back.
	close(store.release)
	<-done

	_, err = engine.SeverityDistribution(context.Background())
	assert.NoError(t, err)
}

func TestEngineReleasesSlotOnFailure(t *testing.T) {
	store := &stubStore{err: errors.New("boom")}
	engine := NewEngine(store, 1, testLogger())

	// Repeated failures must not leak the single slot.
	for i := 0; i < 5; i++ {
		_, err := engine.Summary(context.Background())
		assert.ErrorIs(t, err, ErrStoreUnavailable)
	}

	store.err = nil
	_, err := engine.Summary(context.Background())
	assert.NoError(t, err)
}

func TestEngineRecentEventsPushesFiltersDown(t *testing.T) {
	var events []entity.SecurityEvent
	events = append(events, repeat(12, 0, entity.SeverityHigh)...)
	events = append(events, repeat(8, 0, entity.SeverityLow)...)
	store := &stubStore{events: events}
	engine := NewEngine(store, 2, testLogger())

	page, err := engine.RecentEvents(context.Background(), PageParams{
		Page: 1, PageSize: 10, Severity: entity.SeverityHigh,
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(12), page.Pagination.Total)
	assert.Equal(t, uint64(2), page.Pagination.TotalPages)
	assert.Len(t, page.Data, 10)
}

func TestEngineConcurrentQueries(t *testing.T) {
	store := &stubStore{events: repeat(100, 0, entity.SeverityMedium)}
	engine := NewEngine(store, 4, testLogger())

	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		go func() {
			_, err := engine.Summary(context.Background())
			errs <- err
		}()
	}
	for i := 0; i < 16; i++ {
		assert.NoError(t, <-errs)
	}
}
