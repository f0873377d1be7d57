// Package enrich rewrites webhook transaction descriptions, substituting
// raw base58 addresses with wallet aliases and token symbols.
package enrich

import (
	"context"
	"fmt"
	"log"
	"os"

	"solana-webhook-alerts/internal/cache"
	"solana-webhook-alerts/internal/domain"
	"solana-webhook-alerts/internal/observability"
)

// NoDescription is the output for transactions without a description.
const NoDescription = "no description"

// TokenMetadataClient resolves token metadata and live prices remotely.
// A (nil, nil) return means the address is not resolvable; callers degrade
// rather than fail.
type TokenMetadataClient interface {
	FetchTokenDetail(ctx context.Context, address string) (*domain.TokenInfo, error)
	FetchTokenPrice(ctx context.Context, address string) (*domain.TokenPrice, error)
}

// Result is an enriched description. Derived per attempt, never cached.
type Result struct {
	Text       string
	ChartLinks []string
}

// Enricher rewrites transaction descriptions using the metadata cache and
// the remote token metadata client.
type Enricher struct {
	cache  *cache.MetadataCache
	client TokenMetadataClient
	logger *log.Logger
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithLogger sets the enricher logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Enricher) {
		e.logger = l
	}
}

// New creates an Enricher.
func New(c *cache.MetadataCache, client TokenMetadataClient, opts ...Option) *Enricher {
	e := &Enricher{
		cache:  c,
		client: client,
		logger: log.New(os.Stdout, "[enrich] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// edit replaces one address span (plus an optionally absorbed trailing
// period) with resolved text.
type edit struct {
	span        span
	replacement string
}

// Enrich produces the enriched description for a transaction.
// Resolution failures degrade individual substitutions; Enrich itself
// never fails.
func (e *Enricher) Enrich(ctx context.Context, tx *domain.Transaction) Result {
	if tx.Description == "" {
		return Result{Text: NoDescription}
	}

	text := tx.Description
	spans := addressSpans(text)
	if len(spans) == 0 {
		return Result{Text: text}
	}

	var edits []edit
	var chartLinks []string

	switch tx.Type {
	case domain.TypeTransfer:
		// First match is the sender, last is the receiver; anything
		// strictly between carries token movement.
		for i, s := range spans {
			addr := text[s.Start:s.End]
			if i == 0 || i == len(spans)-1 {
				edits = append(edits, edit{span: s, replacement: e.resolveWallet(addr)})
				continue
			}
			replacement, link := e.resolveToken(ctx, addr)
			if replacement == "" {
				continue
			}
			edits = append(edits, edit{span: s, replacement: replacement})
			if link != "" {
				chartLinks = append(chartLinks, link)
			}
		}

	case domain.TypeSwap:
		for i, s := range spans {
			addr := text[s.Start:s.End]
			if i == 0 {
				edits = append(edits, edit{span: s, replacement: e.resolveWallet(addr)})
				continue
			}
			replacement, link := e.resolveToken(ctx, addr)
			if replacement == "" {
				continue
			}
			edits = append(edits, edit{span: s, replacement: replacement})
			if link != "" {
				chartLinks = append(chartLinks, link)
			}
		}

	default:
		return Result{Text: text}
	}

	rewritten := applyEdits(text, edits)

	if tx.Type == domain.TypeSwap {
		if tag, ok := classifySwap(rewritten); ok {
			rewritten += "\n" + tag
		}
	}

	return Result{Text: rewritten, ChartLinks: chartLinks}
}

// resolveWallet returns the substitution text for a wallet address:
// a link-labeled alias when known, a shortened form otherwise.
func (e *Enricher) resolveWallet(addr string) string {
	if note, ok := e.cache.LookupWallet(addr); ok {
		observability.RecordResolution("wallet_alias")
		return fmt.Sprintf("[%s](https://solscan.io/account/%s)", note, addr)
	}
	observability.RecordResolution("wallet_short")
	return shortenAddress(addr)
}

// resolveToken returns the substitution text and chart link for a token
// address. An empty replacement means the raw address stays in place.
func (e *Enricher) resolveToken(ctx context.Context, addr string) (string, string) {
	info, ok := e.cache.LookupToken(addr)
	if !ok {
		detail, err := e.client.FetchTokenDetail(ctx, addr)
		if err != nil || detail == nil {
			if err != nil {
				e.logger.Printf("fetch token detail %s: %v", addr, err)
			}
			observability.RecordResolution("token_miss")
			return "", ""
		}
		info = *detail
		info.Address = addr
		e.cache.RecordToken(ctx, info)
		observability.RecordResolution("token_remote")
	} else {
		observability.RecordResolution("token_cache")
	}

	label := fmt.Sprintf("[%s](https://solscan.io/token/%s)", info.Symbol, addr)

	// Live price annotation is best-effort: on failure the symbol
	// substitution stands and the price is simply omitted.
	if quote, err := e.client.FetchTokenPrice(ctx, addr); err == nil && quote != nil && quote.Price != "" {
		label += fmt.Sprintf(" ($%s)", quote.Price)
	} else if err != nil {
		e.logger.Printf("fetch token price %s: %v", addr, err)
	}

	link := fmt.Sprintf("[%s chart](https://gmgn.ai/sol/token/%s)", info.Symbol, addr)
	return label, link
}

// shortenAddress renders an unknown wallet as prefix…suffix.
// Addresses of 8 characters or fewer are left unmodified.
func shortenAddress(addr string) string {
	if len(addr) <= 8 {
		return addr
	}
	return addr[:4] + "…" + addr[len(addr)-4:]
}

// applyEdits rewrites text by applying the ordered, non-overlapping edits
// in one pass. A single period directly after an edited span is absorbed
// into the replacement so no dangling punctuation is left behind.
func applyEdits(text string, edits []edit) string {
	if len(edits) == 0 {
		return text
	}

	var b []byte
	prev := 0
	for _, ed := range edits {
		b = append(b, text[prev:ed.span.Start]...)
		b = append(b, ed.replacement...)
		prev = ed.span.End
		if prev < len(text) && text[prev] == '.' {
			prev++
		}
	}
	b = append(b, text[prev:]...)
	return string(b)
}
