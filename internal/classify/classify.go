// Package classify decides which transactions are worth notifying about.
package classify

import "solana-webhook-alerts/internal/domain"

// NotableThresholdSOL is the hard value cutoff for native transfers.
const NotableThresholdSOL = 1.0

// IsNotable reports whether a transaction passes the value filter.
// A TRANSFER carrying native transfer records is notable iff the summed
// amount reaches the threshold; every other transaction is notable by
// default, including a TRANSFER without native transfer records.
func IsNotable(tx *domain.Transaction) bool {
	if tx.Type != domain.TypeTransfer || len(tx.NativeTransfers) == 0 {
		return true
	}

	var total int64
	for _, transfer := range tx.NativeTransfers {
		total += transfer.Amount
	}

	return float64(total)/domain.LamportsPerSOL >= NotableThresholdSOL
}
