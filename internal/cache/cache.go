// Package cache holds the in-memory wallet alias and token metadata maps
// that back description enrichment. The maps are populated from durable
// storage at startup and written through on first token resolution.
package cache

import (
	"context"
	"log"
	"os"
	"sync"

	"solana-webhook-alerts/internal/domain"
	"solana-webhook-alerts/internal/storage"
)

// DefaultWalletLimit caps the cold-start wallet alias read.
const DefaultWalletLimit = 100

// MetadataCache maps addresses to wallet aliases and token metadata.
// Reads and writes from interleaved webhook batches are last-writer-wins;
// no cross-batch atomicity is provided.
type MetadataCache struct {
	walletStore storage.WalletStore
	tokenStore  storage.TokenInfoStore
	walletLimit int
	logger      *log.Logger

	mu      sync.RWMutex
	wallets map[string]string
	tokens  map[string]domain.TokenInfo
}

// Option configures a MetadataCache.
type Option func(*MetadataCache)

// WithWalletLimit overrides the cold-start wallet page size.
func WithWalletLimit(n int) Option {
	return func(c *MetadataCache) {
		c.walletLimit = n
	}
}

// WithLogger sets the cache logger.
func WithLogger(l *log.Logger) Option {
	return func(c *MetadataCache) {
		c.logger = l
	}
}

// New creates a MetadataCache backed by the given stores.
func New(walletStore storage.WalletStore, tokenStore storage.TokenInfoStore, opts ...Option) *MetadataCache {
	c := &MetadataCache{
		walletStore: walletStore,
		tokenStore:  tokenStore,
		walletLimit: DefaultWalletLimit,
		logger:      log.New(os.Stdout, "[cache] ", log.LstdFlags),
		wallets:     make(map[string]string),
		tokens:      make(map[string]domain.TokenInfo),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoadAll clears and repopulates both maps from durable storage.
// Fails soft: if either store read errors, the corresponding in-memory
// map keeps its prior contents and the error is only logged.
func (c *MetadataCache) LoadAll(ctx context.Context) {
	aliases, err := c.walletStore.List(ctx, c.walletLimit)
	if err != nil {
		c.logger.Printf("load wallet aliases: %v (keeping %d cached)", err, c.WalletCount())
	} else {
		wallets := make(map[string]string, len(aliases))
		for _, a := range aliases {
			wallets[a.Address] = a.Note
		}
		c.mu.Lock()
		c.wallets = wallets
		c.mu.Unlock()
		c.logger.Printf("loaded %d wallet aliases", len(wallets))
	}

	infos, err := c.tokenStore.List(ctx)
	if err != nil {
		c.logger.Printf("load token info: %v (keeping %d cached)", err, c.TokenCount())
		return
	}
	tokens := make(map[string]domain.TokenInfo, len(infos))
	for _, info := range infos {
		tokens[info.Address] = *info
	}
	c.mu.Lock()
	c.tokens = tokens
	c.mu.Unlock()
	c.logger.Printf("loaded %d token records", len(tokens))
}

// LookupWallet returns the alias note for an address, if known.
func (c *MetadataCache) LookupWallet(address string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	note, ok := c.wallets[address]
	return note, ok
}

// LookupToken returns cached token metadata for an address, if known.
func (c *MetadataCache) LookupToken(address string) (domain.TokenInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	info, ok := c.tokens[address]
	return info, ok
}

// RecordToken updates the in-memory map and writes through to durable
// storage. The store write is best-effort: a failure is logged and the
// in-memory entry stands, so enrichment is never blocked on storage.
func (c *MetadataCache) RecordToken(ctx context.Context, info domain.TokenInfo) {
	c.mu.Lock()
	c.tokens[info.Address] = info
	c.mu.Unlock()

	if err := c.tokenStore.Upsert(ctx, &info); err != nil {
		c.logger.Printf("persist token %s: %v", info.Address, err)
	}
}

// Wallets returns a snapshot of the wallet alias map.
func (c *MetadataCache) Wallets() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snapshot := make(map[string]string, len(c.wallets))
	for addr, note := range c.wallets {
		snapshot[addr] = note
	}
	return snapshot
}

// Tokens returns a snapshot of the token metadata map.
func (c *MetadataCache) Tokens() map[string]domain.TokenInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snapshot := make(map[string]domain.TokenInfo, len(c.tokens))
	for addr, info := range c.tokens {
		snapshot[addr] = info
	}
	return snapshot
}

// WalletCount reports the number of cached wallet aliases.
func (c *MetadataCache) WalletCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.wallets)
}

// TokenCount reports the number of cached token records.
func (c *MetadataCache) TokenCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tokens)
}
