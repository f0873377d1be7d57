package enrich

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// stableAssets are the quote-side symbols; a swap against one of them
// determines the buy/sell direction of the other side.
var stableAssets = map[string]bool{
	"SOL":  true,
	"USDC": true,
	"USDT": true,
}

// swapPattern matches the rewritten swap sentence:
//
//	… swapped <amt> <SYM> … for <amt> <SYM> …
//
// where <SYM> may be bare (SOL) or a link label ([BONK](…)) with an
// optional price annotation after it.
var swapPattern = regexp.MustCompile(
	`swapped\s+([\d.]+)\s+\[?([A-Za-z0-9$]+)\]?\S*(?:\s+\(\$[\d.]+\))?\s+for\s+([\d.]+)\s+\[?([A-Za-z0-9$]+)\]?`)

// pricePattern matches a substituted price annotation ($<price>).
var pricePattern = regexp.MustCompile(`\(\$([\d.]+)\)`)

// classifySwap derives a Buy/Sell tag with the swap's dollar value from a
// rewritten description. Returns false when the text does not match the
// expected shape; tagging is then simply omitted.
func classifySwap(text string) (string, bool) {
	m := swapPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}

	inAmount, inSym := m[1], m[2]
	outAmount, outSym := m[3], m[4]

	var tag, amountStr string
	switch {
	case !stableAssets[outSym]:
		// Acquiring a non-stable asset.
		tag = "Buy"
		amountStr = outAmount
	case !stableAssets[inSym]:
		// Selling a non-stable asset for a stable one.
		tag = "Sell"
		amountStr = inAmount
	default:
		return "", false
	}

	// The price annotation belongs to the substituted token side; with
	// one enriched token there is exactly one, so take the last match.
	prices := pricePattern.FindAllStringSubmatch(text, -1)
	if len(prices) == 0 {
		return "", false
	}
	priceStr := prices[len(prices)-1][1]

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return "", false
	}
	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return "", false
	}

	total := amount.Mul(price)
	return fmt.Sprintf("%s $%s", tag, total.StringFixed(2)), true
}
