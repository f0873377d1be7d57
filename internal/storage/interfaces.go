package storage

import (
	"context"

	"solana-webhook-alerts/internal/domain"
)

// WalletStore provides read access to wallets storage.
type WalletStore interface {
	// List retrieves up to limit wallet aliases, most recently updated first.
	List(ctx context.Context, limit int) ([]*domain.WalletAlias, error)
}

// TokenInfoStore provides access to token_info storage.
type TokenInfoStore interface {
	// Upsert inserts metadata or updates the existing row keyed by address.
	Upsert(ctx context.Context, info *domain.TokenInfo) error

	// List retrieves all stored token metadata.
	List(ctx context.Context) ([]*domain.TokenInfo, error)
}

// TransactionStore provides access to transactions storage.
type TransactionStore interface {
	// Insert appends a new transaction record. Returns ErrDuplicateKey
	// if the signature was already stored.
	Insert(ctx context.Context, rec *domain.TransactionRecord) error

	// Recent retrieves up to limit records, newest timestamp first.
	Recent(ctx context.Context, limit int) ([]*domain.TransactionRecord, error)
}
