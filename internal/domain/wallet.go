package domain

// WalletAlias is a human-readable label for a known address.
// Corresponds to the wallets table in PostgreSQL.
type WalletAlias struct {
	Address   string // PRIMARY KEY, base58 account address
	Note      string // display label
	UpdatedAt int64  // last update timestamp (ms)
}
