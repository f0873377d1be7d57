package domain

// TokenInfo is resolved metadata for a fungible token address.
// Corresponds to the token_info table in PostgreSQL.
type TokenInfo struct {
	Address   string  // PRIMARY KEY, base58 mint address
	Symbol    string  // upper-cased ticker
	MarketCap string  // market cap as reported by the metadata API
	Name      *string // token name (nullable)
	UpdatedAt int64   // last upsert timestamp (ms)
}

// TokenPrice is a live price quote for a token address.
// Never persisted; fetched per enrichment attempt.
type TokenPrice struct {
	Address string
	Price   string // decimal string as reported by the pricing API
}
