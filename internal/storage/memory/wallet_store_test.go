package memory

import (
	"context"
	"errors"
	"testing"

	"solana-webhook-alerts/internal/domain"
	"solana-webhook-alerts/internal/storage"
)

func TestWalletStore_ListOrdersByUpdatedAt(t *testing.T) {
	store := NewWalletStore()
	ctx := context.Background()

	store.Put(&domain.WalletAlias{Address: "addr1", Note: "oldest", UpdatedAt: 100})
	store.Put(&domain.WalletAlias{Address: "addr2", Note: "newest", UpdatedAt: 300})
	store.Put(&domain.WalletAlias{Address: "addr3", Note: "middle", UpdatedAt: 200})

	aliases, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(aliases) != 3 {
		t.Fatalf("Expected 3 aliases, got %d", len(aliases))
	}

	if aliases[0].Note != "newest" || aliases[2].Note != "oldest" {
		t.Errorf("Wrong order: got %s, %s, %s", aliases[0].Note, aliases[1].Note, aliases[2].Note)
	}
}

func TestWalletStore_ListAppliesLimit(t *testing.T) {
	store := NewWalletStore()
	ctx := context.Background()

	store.Put(&domain.WalletAlias{Address: "addr1", UpdatedAt: 100})
	store.Put(&domain.WalletAlias{Address: "addr2", UpdatedAt: 200})
	store.Put(&domain.WalletAlias{Address: "addr3", UpdatedAt: 300})

	aliases, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(aliases) != 2 {
		t.Fatalf("Expected 2 aliases, got %d", len(aliases))
	}

	if aliases[0].Address != "addr3" {
		t.Errorf("Expected addr3 first, got %s", aliases[0].Address)
	}
}

func TestWalletStore_ListInvalidLimit(t *testing.T) {
	store := NewWalletStore()
	ctx := context.Background()

	_, err := store.List(ctx, 0)
	if !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestWalletStore_PutReplaces(t *testing.T) {
	store := NewWalletStore()
	ctx := context.Background()

	store.Put(&domain.WalletAlias{Address: "addr1", Note: "old", UpdatedAt: 100})
	store.Put(&domain.WalletAlias{Address: "addr1", Note: "new", UpdatedAt: 200})

	aliases, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(aliases) != 1 {
		t.Fatalf("Expected 1 alias, got %d", len(aliases))
	}

	if aliases[0].Note != "new" {
		t.Errorf("Expected updated note, got %s", aliases[0].Note)
	}
}

func TestWalletStore_ReturnsCopies(t *testing.T) {
	store := NewWalletStore()
	ctx := context.Background()

	alias := &domain.WalletAlias{Address: "addr1", Note: "original", UpdatedAt: 100}
	store.Put(alias)

	// Modify original
	alias.Note = "mutated"

	aliases, _ := store.List(ctx, 10)
	if aliases[0].Note != "original" {
		t.Error("Store should return copy, not reference")
	}
}
