package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"solana-webhook-alerts/internal/domain"
	"solana-webhook-alerts/internal/storage"
)

// TransactionStore implements storage.TransactionStore using PostgreSQL.
type TransactionStore struct {
	pool *Pool
}

// NewTransactionStore creates a new TransactionStore.
func NewTransactionStore(pool *Pool) *TransactionStore {
	return &TransactionStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TransactionStore = (*TransactionStore)(nil)

// Insert appends a new transaction record. Returns ErrDuplicateKey
// if the signature was already stored.
func (s *TransactionStore) Insert(ctx context.Context, rec *domain.TransactionRecord) error {
	if rec == nil || rec.TxHash == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO transactions (tx_hash, tx_type, timestamp, raw_data, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	createdAt := rec.CreatedAt
	if createdAt == 0 {
		createdAt = time.Now().UnixMilli()
	}

	_, err := s.pool.Exec(ctx, query,
		rec.TxHash,
		rec.TxType,
		rec.Timestamp,
		rec.RawData,
		rec.Description,
		createdAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// Recent retrieves up to limit records, newest timestamp first.
func (s *TransactionStore) Recent(ctx context.Context, limit int) ([]*domain.TransactionRecord, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidInput
	}

	query := `
		SELECT id, tx_hash, tx_type, timestamp, raw_data, description, created_at
		FROM transactions
		ORDER BY timestamp DESC, id DESC
		LIMIT $1
	`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent transactions: %w", err)
	}
	defer rows.Close()

	var records []*domain.TransactionRecord
	for rows.Next() {
		rec, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return records, nil
}

// scanTransaction scans a single row into TransactionRecord.
func scanTransaction(row pgx.Row) (*domain.TransactionRecord, error) {
	var rec domain.TransactionRecord

	err := row.Scan(
		&rec.ID,
		&rec.TxHash,
		&rec.TxType,
		&rec.Timestamp,
		&rec.RawData,
		&rec.Description,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &rec, nil
}
