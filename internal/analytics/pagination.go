package analytics

import (
	"sort"

	"github.com/secintel/secintel/internal/entity"
)

// PaginateEvents applies the page's equality filters (logical AND), orders
// the matches by timestamp descending and returns the requested slice plus
// pagination metadata. Ties on the timestamp are broken by event ID so the
// total order, and therefore page composition, is stable across calls.
// Page and page-size bounds are the caller's contract; values are only
// defensively clamped to avoid negative offsets.
func PaginateEvents(events []entity.SecurityEvent, p PageParams) EventPage {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 1
	}

	filters := entity.EventFilters{Severity: p.Severity, EventType: p.EventType}
	matched := make([]entity.SecurityEvent, 0, len(events))
	for _, e := range events {
		if filters.Matches(e) {
			matched = append(matched, e)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Timestamp.Equal(matched[j].Timestamp) {
			return matched[i].Timestamp.After(matched[j].Timestamp)
		}
		return matched[i].EventID.String() < matched[j].EventID.String()
	})

	total := uint64(len(matched))
	meta := PageMeta{
		Page:       p.Page,
		PageSize:   p.PageSize,
		Total:      total,
		TotalPages: (total + uint64(p.PageSize) - 1) / uint64(p.PageSize),
	}

	offset := (p.Page - 1) * p.PageSize
	if offset >= len(matched) {
		return EventPage{Data: []entity.SecurityEvent{}, Pagination: meta}
	}
	end := offset + p.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return EventPage{Data: matched[offset:end], Pagination: meta}
}
