package account

import (
	"context"
	"sync"

	id "rollcall/pkg/domain"
	"rollcall/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu       sync.RWMutex
	accounts map[id.OwnerID]*Account
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{accounts: make(map[id.OwnerID]*Account)}
}

func (s *InMemoryStore) Save(_ context.Context, acct *Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[acct.Owner]; exists {
		return sentinel.ErrConflict
	}
	copied := *acct
	s.accounts[acct.Owner] = &copied
	return nil
}

func (s *InMemoryStore) FindByOwner(_ context.Context, owner id.OwnerID) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.accounts[owner]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *acct
	return &copied, nil
}
