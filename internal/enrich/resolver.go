package enrich

// Base58 alphabet used by Solana addresses (no 0, O, I, l).
const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// Address length bounds for base58-encoded 32-byte account keys.
const (
	minAddressLen = 32
	maxAddressLen = 44
)

var isBase58 [256]bool

func init() {
	for i := 0; i < len(base58Alphabet); i++ {
		isBase58[base58Alphabet[i]] = true
	}
}

// span marks a half-open [Start, End) byte range in the scanned text.
type span struct {
	Start int
	End   int
}

// addressSpans scans text left to right and returns every maximal run of
// base58 characters whose length fits the address shape. Runs longer than
// maxAddressLen are skipped entirely, so a match is never a substring of a
// longer base58 token and two matches never overlap.
func addressSpans(text string) []span {
	var spans []span

	i := 0
	for i < len(text) {
		if !isBase58[text[i]] {
			i++
			continue
		}

		start := i
		for i < len(text) && isBase58[text[i]] {
			i++
		}

		if n := i - start; n >= minAddressLen && n <= maxAddressLen {
			spans = append(spans, span{Start: start, End: i})
		}
	}

	return spans
}

// ExtractAddresses returns every address-shaped token in text, in order of
// appearance, duplicates included. Pure; returns nil when nothing matches.
func ExtractAddresses(text string) []string {
	spans := addressSpans(text)
	if len(spans) == 0 {
		return nil
	}

	addrs := make([]string, len(spans))
	for i, s := range spans {
		addrs[i] = text[s.Start:s.End]
	}
	return addrs
}
