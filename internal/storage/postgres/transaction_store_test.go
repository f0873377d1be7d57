package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-webhook-alerts/internal/domain"
	"solana-webhook-alerts/internal/storage"
)

func TestTransactionStore_InsertAndRecent(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTransactionStore(pool)

	rec := &domain.TransactionRecord{
		TxHash:      "sig1",
		TxType:      "SWAP",
		Timestamp:   1700000000,
		RawData:     []byte(`{"signature": "sig1", "type": "SWAP"}`),
		Description: "enriched text",
		CreatedAt:   1704067200000,
	}

	require.NoError(t, store.Insert(ctx, rec))

	records, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "sig1", records[0].TxHash)
	assert.Equal(t, "SWAP", records[0].TxType)
	assert.Equal(t, int64(1700000000), records[0].Timestamp)
	assert.JSONEq(t, `{"signature": "sig1", "type": "SWAP"}`, string(records[0].RawData))
	assert.Equal(t, "enriched text", records[0].Description)
	assert.NotZero(t, records[0].ID)
	assert.Equal(t, int64(1704067200000), records[0].CreatedAt)
}

func TestTransactionStore_InsertDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTransactionStore(pool)

	require.NoError(t, store.Insert(ctx, &domain.TransactionRecord{
		TxHash: "sig1", TxType: "SWAP", Timestamp: 100,
	}))

	err := store.Insert(ctx, &domain.TransactionRecord{
		TxHash: "sig1", TxType: "TRANSFER", Timestamp: 200,
	})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	// The original row is untouched.
	records, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "SWAP", records[0].TxType)
}

func TestTransactionStore_RecentOrdering(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTransactionStore(pool)

	for _, rec := range []*domain.TransactionRecord{
		{TxHash: "sig1", TxType: "SWAP", Timestamp: 100},
		{TxHash: "sig2", TxType: "SWAP", Timestamp: 300},
		{TxHash: "sig3", TxType: "SWAP", Timestamp: 200},
		{TxHash: "sig4", TxType: "SWAP", Timestamp: 300}, // tie broken by insert order
	} {
		require.NoError(t, store.Insert(ctx, rec))
	}

	records, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 4)

	want := []string{"sig4", "sig2", "sig3", "sig1"}
	for i, hash := range want {
		assert.Equal(t, hash, records[i].TxHash, "position %d", i)
	}
}

func TestTransactionStore_RecentLimit(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTransactionStore(pool)

	for _, rec := range []*domain.TransactionRecord{
		{TxHash: "sig1", TxType: "SWAP", Timestamp: 100},
		{TxHash: "sig2", TxType: "SWAP", Timestamp: 200},
	} {
		require.NoError(t, store.Insert(ctx, rec))
	}

	records, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "sig2", records[0].TxHash)
}

func TestTransactionStore_NullRawData(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTransactionStore(pool)

	require.NoError(t, store.Insert(ctx, &domain.TransactionRecord{
		TxHash: "sig1", TxType: "OTHER", Timestamp: 100,
	}))

	records, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].RawData)
}

func TestTransactionStore_InvalidInput(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTransactionStore(pool)

	assert.ErrorIs(t, store.Insert(ctx, nil), storage.ErrInvalidInput)
	assert.ErrorIs(t, store.Insert(ctx, &domain.TransactionRecord{TxHash: ""}), storage.ErrInvalidInput)

	_, err := store.Recent(ctx, 0)
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}
