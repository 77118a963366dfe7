package cartstore

import (
	"context"
	"sync"

	"github.com/savorbowl/storefront-backend/internal/cart"
)

// MemoryProvider keeps carts in-process. Used in tests and local runs where
// Redis is not worth standing up; contents vanish with the process.
type MemoryProvider struct {
	mu    sync.Mutex
	carts map[string][]cart.LineItem
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{carts: make(map[string][]cart.LineItem)}
}

// ForSession returns the store bound to the session's in-memory slot.
func (p *MemoryProvider) ForSession(sessionID string) cart.Store {
	return &memoryStore{provider: p, sessionID: sessionID}
}

type memoryStore struct {
	provider  *MemoryProvider
	sessionID string
}

func (s *memoryStore) Load(_ context.Context) ([]cart.LineItem, error) {
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()

	stored, ok := s.provider.carts[s.sessionID]
	if !ok {
		return nil, nil
	}
	items := make([]cart.LineItem, len(stored))
	copy(items, stored)
	return items, nil
}

func (s *memoryStore) Save(_ context.Context, items []cart.LineItem) error {
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()

	if len(items) == 0 {
		delete(s.provider.carts, s.sessionID)
		return nil
	}
	stored := make([]cart.LineItem, len(items))
	copy(stored, items)
	s.provider.carts[s.sessionID] = stored
	return nil
}
