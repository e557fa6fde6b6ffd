package audit

import (
	"context"
	"sync"

	id "rollcall/pkg/domain"
)

// InMemoryStore keeps audit events in memory. Default sink for development
// and tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListByOwner returns the events recorded for one owner, oldest first.
func (s *InMemoryStore) ListByOwner(_ context.Context, owner id.OwnerID) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if e.Owner == owner {
			out = append(out, e)
		}
	}
	return out
}
