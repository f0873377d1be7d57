package domain

// TransactionType is the webhook-reported transaction category.
type TransactionType string

// Transaction types delivered by the webhook provider.
const (
	TypeTransfer TransactionType = "TRANSFER"
	TypeSwap     TransactionType = "SWAP"
	TypeOther    TransactionType = "OTHER"
)

// NativeTransfer is a single SOL movement inside a transaction.
type NativeTransfer struct {
	Amount int64 `json:"amount"` // lamports
}

// Transaction is one webhook payload item. Immutable once received.
type Transaction struct {
	Signature       string           `json:"signature"`
	Type            TransactionType  `json:"type"`
	Timestamp       int64            `json:"timestamp"` // Unix seconds
	Description     string           `json:"description,omitempty"`
	NativeTransfers []NativeTransfer `json:"nativeTransfers,omitempty"`
}

// TransactionRecord is the persisted form of a Transaction.
// Corresponds to the transactions table in PostgreSQL.
type TransactionRecord struct {
	ID          int64  // BIGSERIAL primary key
	TxHash      string // transaction signature
	TxType      string // TRANSFER | SWAP | OTHER | ...
	Timestamp   int64  // Unix timestamp in seconds
	RawData     []byte // original webhook payload (JSON)
	Description string // raw description, or the no-description sentinel
	CreatedAt   int64  // record creation timestamp (ms)
}

// LamportsPerSOL converts between the native unit and the display unit.
const LamportsPerSOL = 1_000_000_000
