package memory

import (
	"context"
	"sort"
	"sync"

	"solana-webhook-alerts/internal/domain"
	"solana-webhook-alerts/internal/storage"
)

// WalletStore is an in-memory implementation of storage.WalletStore.
type WalletStore struct {
	mu     sync.RWMutex
	byAddr map[string]*domain.WalletAlias
}

// NewWalletStore creates a new in-memory wallet store.
func NewWalletStore() *WalletStore {
	return &WalletStore{
		byAddr: make(map[string]*domain.WalletAlias),
	}
}

// Put adds or replaces a wallet alias (test seeding helper).
func (s *WalletStore) Put(a *domain.WalletAlias) {
	s.mu.Lock()
	defer s.mu.Unlock()

	aliasCopy := *a
	s.byAddr[a.Address] = &aliasCopy
}

// List retrieves up to limit wallet aliases, most recently updated first.
func (s *WalletStore) List(_ context.Context, limit int) ([]*domain.WalletAlias, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidInput
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	aliases := make([]*domain.WalletAlias, 0, len(s.byAddr))
	for _, a := range s.byAddr {
		aliasCopy := *a
		aliases = append(aliases, &aliasCopy)
	}

	sort.Slice(aliases, func(i, j int) bool {
		return aliases[i].UpdatedAt > aliases[j].UpdatedAt
	})

	if len(aliases) > limit {
		aliases = aliases[:limit]
	}
	return aliases, nil
}

var _ storage.WalletStore = (*WalletStore)(nil)
