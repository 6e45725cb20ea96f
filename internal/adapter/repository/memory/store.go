// Package memory provides a slice-backed event store. It serves unit tests
// of the analytics engine and the API's in-memory development mode.
package memory

import (
	"context"
	"sync"

	"github.com/secintel/secintel/internal/entity"
)

// Store holds an immutable-per-call snapshot of events in memory.
type Store struct {
	mu     sync.RWMutex
	events []entity.SecurityEvent
}

// NewStore creates a store pre-loaded with the given events.
func NewStore(events []entity.SecurityEvent) *Store {
	s := &Store{}
	s.Append(events...)
	return s
}

// Append adds events to the store.
func (s *Store) Append(events ...entity.SecurityEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, events...)
}

// Events returns a copy of all events matching the filters.
func (s *Store) Events(ctx context.Context, filters entity.EventFilters) ([]entity.SecurityEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []entity.SecurityEvent
	for _, e := range s.events {
		if filters.Matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Count reports the number of matching events.
func (s *Store) Count(ctx context.Context, filters entity.EventFilters) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var total uint64
	for _, e := range s.events {
		if filters.Matches(e) {
			total++
		}
	}
	return total, nil
}
