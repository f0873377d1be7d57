package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-webhook-alerts/internal/domain"
	"solana-webhook-alerts/internal/storage"
)

func TestTokenInfoStore_UpsertAndList(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTokenInfoStore(pool)

	name := "Bonk"
	info := &domain.TokenInfo{
		Address:   "mint1",
		Symbol:    "BONK",
		MarketCap: "42000000",
		Name:      &name,
		UpdatedAt: 1704067200000,
	}

	require.NoError(t, store.Upsert(ctx, info))

	infos, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)

	assert.Equal(t, "mint1", infos[0].Address)
	assert.Equal(t, "BONK", infos[0].Symbol)
	assert.Equal(t, "42000000", infos[0].MarketCap)
	require.NotNil(t, infos[0].Name)
	assert.Equal(t, "Bonk", *infos[0].Name)
	assert.Equal(t, int64(1704067200000), infos[0].UpdatedAt)
}

func TestTokenInfoStore_UpsertUpdatesExisting(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTokenInfoStore(pool)

	require.NoError(t, store.Upsert(ctx, &domain.TokenInfo{Address: "mint1", Symbol: "OLD", MarketCap: "1"}))
	require.NoError(t, store.Upsert(ctx, &domain.TokenInfo{Address: "mint1", Symbol: "NEW", MarketCap: "2"}))

	infos, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "NEW", infos[0].Symbol)
	assert.Equal(t, "2", infos[0].MarketCap)
}

func TestTokenInfoStore_NullableName(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTokenInfoStore(pool)

	require.NoError(t, store.Upsert(ctx, &domain.TokenInfo{Address: "mint1", Symbol: "X"}))

	infos, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Nil(t, infos[0].Name)
}

func TestTokenInfoStore_UpsertSetsUpdatedAt(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTokenInfoStore(pool)

	require.NoError(t, store.Upsert(ctx, &domain.TokenInfo{Address: "mint1", Symbol: "X"}))

	infos, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.NotZero(t, infos[0].UpdatedAt)
}

func TestTokenInfoStore_InvalidInput(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTokenInfoStore(pool)

	assert.ErrorIs(t, store.Upsert(ctx, nil), storage.ErrInvalidInput)
	assert.ErrorIs(t, store.Upsert(ctx, &domain.TokenInfo{Address: ""}), storage.ErrInvalidInput)
}
