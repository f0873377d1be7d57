package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"solana-webhook-alerts/internal/domain"
	"solana-webhook-alerts/internal/storage"
)

// TransactionStore is an in-memory implementation of storage.TransactionStore.
type TransactionStore struct {
	mu     sync.RWMutex
	nextID int64
	byHash map[string]*domain.TransactionRecord
}

// NewTransactionStore creates a new in-memory transaction store.
func NewTransactionStore() *TransactionStore {
	return &TransactionStore{
		nextID: 1,
		byHash: make(map[string]*domain.TransactionRecord),
	}
}

// Insert appends a new transaction record. Returns ErrDuplicateKey
// if the signature was already stored.
func (s *TransactionStore) Insert(_ context.Context, rec *domain.TransactionRecord) error {
	if rec == nil || rec.TxHash == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byHash[rec.TxHash]; exists {
		return storage.ErrDuplicateKey
	}

	recCopy := *rec
	recCopy.ID = s.nextID
	if recCopy.CreatedAt == 0 {
		recCopy.CreatedAt = time.Now().UnixMilli()
	}
	s.nextID++
	s.byHash[rec.TxHash] = &recCopy
	return nil
}

// Recent retrieves up to limit records, newest timestamp first.
func (s *TransactionStore) Recent(_ context.Context, limit int) ([]*domain.TransactionRecord, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidInput
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*domain.TransactionRecord, 0, len(s.byHash))
	for _, rec := range s.byHash {
		recCopy := *rec
		records = append(records, &recCopy)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Timestamp != records[j].Timestamp {
			return records[i].Timestamp > records[j].Timestamp
		}
		return records[i].ID > records[j].ID
	})

	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Len reports the number of stored records.
func (s *TransactionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byHash)
}

var _ storage.TransactionStore = (*TransactionStore)(nil)
