package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secintel/secintel/internal/entity"
)

func pagedCorpus(n int) []entity.SecurityEvent {
	events := make([]entity.SecurityEvent, 0, n)
	for i := 0; i < n; i++ {
		severity := entity.SeverityLow
		if i%2 == 0 {
			severity = entity.SeverityHigh
		}
		events = append(events, ev(time.Duration(i)*time.Minute, severity))
	}
	return events
}

func TestPaginateEventsCeilMath(t *testing.T) {
	page := PaginateEvents(pagedCorpus(25), PageParams{Page: 3, PageSize: 10})

	assert.Equal(t, uint64(25), page.Pagination.Total)
	assert.Equal(t, uint64(3), page.Pagination.TotalPages)
	assert.Len(t, page.Data, 5)
}

func TestPaginateEventsNewestFirst(t *testing.T) {
	page := PaginateEvents(pagedCorpus(30), PageParams{Page: 1, PageSize: 10})
	require.Len(t, page.Data, 10)

	for i := 1; i < len(page.Data); i++ {
		assert.False(t, page.Data[i].Timestamp.After(page.Data[i-1].Timestamp))
	}
	// The newest event of the corpus leads the first page.
	assert.True(t, page.Data[0].Timestamp.Equal(testBase.Add(29*time.Minute)))
}

func TestPaginateEventsConcatenationIsExhaustive(t *testing.T) {
	corpus := pagedCorpus(47)
	const pageSize = 10

	first := PaginateEvents(corpus, PageParams{Page: 1, PageSize: pageSize})
	require.Equal(t, uint64(5), first.Pagination.TotalPages)

	seen := make(map[string]int)
	var ordered []entity.SecurityEvent
	for p := 1; p <= int(first.Pagination.TotalPages); p++ {
		page := PaginateEvents(corpus, PageParams{Page: p, PageSize: pageSize})
		for _, e := range page.Data {
			seen[e.EventID.String()]++
			ordered = append(ordered, e)
		}
	}

	// Every record exactly once.
	assert.Len(t, seen, len(corpus))
	for id, count := range seen {
		assert.Equal(t, 1, count, "event %s", id)
	}

	// Consistent descending order across page boundaries.
	for i := 1; i < len(ordered); i++ {
		prev, cur := ordered[i-1], ordered[i]
		if prev.Timestamp.Equal(cur.Timestamp) {
			assert.Less(t, prev.EventID.String(), cur.EventID.String())
		} else {
			assert.True(t, cur.Timestamp.Before(prev.Timestamp))
		}
	}
}

func TestPaginateEventsEqualityFilters(t *testing.T) {
	var events []entity.SecurityEvent
	events = append(events, repeat(3, 0, entity.SeverityHigh, withEventType("brute_force"))...)
	events = append(events, repeat(2, 0, entity.SeverityHigh, withEventType("port_scan"))...)
	events = append(events, repeat(4, 0, entity.SeverityLow, withEventType("brute_force"))...)

	page := PaginateEvents(events, PageParams{
		Page: 1, PageSize: 10,
		Severity:  entity.SeverityHigh,
		EventType: "brute_force",
	})

	assert.Equal(t, uint64(3), page.Pagination.Total)
	require.Len(t, page.Data, 3)
	for _, e := range page.Data {
		assert.Equal(t, entity.SeverityHigh, e.Severity)
		assert.Equal(t, "brute_force", e.EventType)
	}
}

func TestPaginateEventsPageBeyondEnd(t *testing.T) {
	page := PaginateEvents(pagedCorpus(5), PageParams{Page: 3, PageSize: 10})

	assert.Empty(t, page.Data)
	assert.Equal(t, uint64(5), page.Pagination.Total)
	assert.Equal(t, uint64(1), page.Pagination.TotalPages)
	assert.Equal(t, 3, page.Pagination.Page)
}

func TestPaginateEventsEmptyInput(t *testing.T) {
	page := PaginateEvents(nil, PageParams{Page: 1, PageSize: 10})

	assert.Empty(t, page.Data)
	assert.Equal(t, uint64(0), page.Pagination.Total)
	assert.Equal(t, uint64(0), page.Pagination.TotalPages)
}
