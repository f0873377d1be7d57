package memory

import (
	"context"
	"sync"
	"time"

	"solana-webhook-alerts/internal/domain"
	"solana-webhook-alerts/internal/storage"
)

// TokenInfoStore is an in-memory implementation of storage.TokenInfoStore.
type TokenInfoStore struct {
	mu     sync.RWMutex
	byAddr map[string]*domain.TokenInfo
}

// NewTokenInfoStore creates a new in-memory token info store.
func NewTokenInfoStore() *TokenInfoStore {
	return &TokenInfoStore{
		byAddr: make(map[string]*domain.TokenInfo),
	}
}

// Upsert inserts metadata or updates the existing entry keyed by address.
func (s *TokenInfoStore) Upsert(_ context.Context, info *domain.TokenInfo) error {
	if info == nil || info.Address == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	infoCopy := *info
	if infoCopy.UpdatedAt == 0 {
		infoCopy.UpdatedAt = time.Now().UnixMilli()
	}
	s.byAddr[info.Address] = &infoCopy
	return nil
}

// List retrieves all stored token metadata.
func (s *TokenInfoStore) List(_ context.Context) ([]*domain.TokenInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]*domain.TokenInfo, 0, len(s.byAddr))
	for _, info := range s.byAddr {
		infoCopy := *info
		infos = append(infos, &infoCopy)
	}
	return infos, nil
}

var _ storage.TokenInfoStore = (*TokenInfoStore)(nil)
