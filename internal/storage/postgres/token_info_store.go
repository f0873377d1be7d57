package postgres

import (
	"context"
	"fmt"
	"time"

	"solana-webhook-alerts/internal/domain"
	"solana-webhook-alerts/internal/storage"
)

// TokenInfoStore implements storage.TokenInfoStore using PostgreSQL.
type TokenInfoStore struct {
	pool *Pool
}

// NewTokenInfoStore creates a new TokenInfoStore.
func NewTokenInfoStore(pool *Pool) *TokenInfoStore {
	return &TokenInfoStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TokenInfoStore = (*TokenInfoStore)(nil)

// Upsert inserts metadata or updates the existing row keyed by address.
func (s *TokenInfoStore) Upsert(ctx context.Context, info *domain.TokenInfo) error {
	if info == nil || info.Address == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO token_info (address, symbol, market_cap, name, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (address) DO UPDATE SET
			symbol = EXCLUDED.symbol,
			market_cap = EXCLUDED.market_cap,
			name = EXCLUDED.name,
			updated_at = EXCLUDED.updated_at
	`

	updatedAt := info.UpdatedAt
	if updatedAt == 0 {
		updatedAt = time.Now().UnixMilli()
	}

	_, err := s.pool.Exec(ctx, query,
		info.Address,
		info.Symbol,
		info.MarketCap,
		info.Name,
		updatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert token info: %w", err)
	}
	return nil
}

// List retrieves all stored token metadata.
func (s *TokenInfoStore) List(ctx context.Context) ([]*domain.TokenInfo, error) {
	query := `
		SELECT address, symbol, market_cap, name, updated_at
		FROM token_info
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list token info: %w", err)
	}
	defer rows.Close()

	var infos []*domain.TokenInfo
	for rows.Next() {
		var info domain.TokenInfo
		if err := rows.Scan(&info.Address, &info.Symbol, &info.MarketCap, &info.Name, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan token info: %w", err)
		}
		infos = append(infos, &info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate token info: %w", err)
	}

	return infos, nil
}
