// Package server exposes the HTTP surface: the webhook ingestion
// endpoint, cache and history read APIs, and the debug alert feed.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"solana-webhook-alerts/internal/cache"
	"solana-webhook-alerts/internal/delivery"
	"solana-webhook-alerts/internal/domain"
	"solana-webhook-alerts/internal/observability"
	"solana-webhook-alerts/internal/storage"
)

// DefaultHistoryLimit caps the /transactions read when no limit is given.
const DefaultHistoryLimit = 20

// maxHistoryLimit bounds client-supplied limits.
const maxHistoryLimit = 500

// BatchProcessor runs the delivery state machine over one webhook batch.
type BatchProcessor interface {
	ProcessBatch(ctx context.Context, txs []*domain.Transaction) delivery.Stats
}

// Server handles the HTTP surface of the alert relay.
type Server struct {
	processor BatchProcessor
	cache     *cache.MetadataCache
	txStore   storage.TransactionStore
	hub       *Hub
	logger    *log.Logger

	mu        sync.Mutex
	startedAt time.Time
	batches   int
	alerts    int
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithHub sets the alert feed hub, allowing the caller to share it with
// the coordinator's alert hook.
func WithHub(h *Hub) Option {
	return func(s *Server) {
		s.hub = h
	}
}

// New creates a Server.
func New(processor BatchProcessor, c *cache.MetadataCache, txStore storage.TransactionStore, opts ...Option) *Server {
	s := &Server{
		processor: processor,
		cache:     c,
		txStore:   txStore,
		hub:       NewHub(),
		logger:    log.New(os.Stdout, "[server] ", log.LstdFlags),
		startedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hub returns the alert feed hub, for wiring into the coordinator's
// alert hook.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler returns the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/webhook", s.handleWebhook)
	mux.HandleFunc("/wallets", s.handleWallets)
	mux.HandleFunc("/tokens", s.handleTokens)
	mux.HandleFunc("/transactions", s.handleTransactions)
	mux.HandleFunc("/ws/alerts", s.hub.handleConnect)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", observability.Handler())
	mux.HandleFunc("/status", s.handleStatus)

	return mux
}

// handleWebhook ingests one transaction batch. The response is 200 once
// every transaction has been run through the delivery state machine,
// regardless of individual persist/notify outcomes; only a malformed
// request body is rejected.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var txs []*domain.Transaction
	if err := json.NewDecoder(r.Body).Decode(&txs); err != nil {
		s.logger.Printf("webhook: decode body: %v", err)
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	stats := s.processor.ProcessBatch(r.Context(), txs)
	s.logger.Printf("batch processed: %d transactions, %d persisted, %d filtered, %d notified",
		stats.Processed, stats.Persisted, stats.Filtered, stats.Notified)

	s.mu.Lock()
	s.batches++
	s.alerts += stats.Notified
	s.mu.Unlock()

	observability.UpdateCacheSizes(s.cache.WalletCount(), s.cache.TokenCount())

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleWallets dumps the cached wallet alias map.
func (s *Server) handleWallets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.cache.Wallets())
}

// handleTokens dumps the cached token metadata map.
func (s *Server) handleTokens(w http.ResponseWriter, r *http.Request) {
	tokens := s.cache.Tokens()

	type tokenView struct {
		Symbol    string  `json:"symbol"`
		MarketCap string  `json:"marketCap"`
		Name      *string `json:"name,omitempty"`
	}

	view := make(map[string]tokenView, len(tokens))
	for addr, info := range tokens {
		view[addr] = tokenView{Symbol: info.Symbol, MarketCap: info.MarketCap, Name: info.Name}
	}
	writeJSON(w, view)
}

// transactionView is one row of the /transactions response.
type transactionView struct {
	Hash        string `json:"hash"`
	Type        string `json:"type"`
	Timestamp   int64  `json:"timestamp"`
	Description string `json:"description"`
}

// handleTransactions returns the most recent persisted transactions in
// descending timestamp order.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	limit := DefaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxHistoryLimit {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := s.txStore.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Printf("transactions: %v", err)
		http.Error(w, "storage unavailable", http.StatusInternalServerError)
		return
	}

	views := make([]transactionView, 0, len(records))
	for _, rec := range records {
		views = append(views, transactionView{
			Hash:        rec.TxHash,
			Type:        rec.TxType,
			Timestamp:   rec.Timestamp,
			Description: rec.Description,
		})
	}
	writeJSON(w, views)
}

// StatusResponse is the JSON response for /status endpoint.
type StatusResponse struct {
	Status        string `json:"status"`
	Uptime        string `json:"uptime"`
	Batches       int    `json:"batches"`
	AlertsSent    int    `json:"alerts_sent"`
	CachedWallets int    `json:"cached_wallets"`
	CachedTokens  int    `json:"cached_tokens"`
	FeedClients   int    `json:"feed_clients"`
}

// handleStatus returns server status as JSON.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := StatusResponse{
		Status:     "running",
		Uptime:     time.Since(s.startedAt).String(),
		Batches:    s.batches,
		AlertsSent: s.alerts,
	}
	s.mu.Unlock()

	resp.CachedWallets = s.cache.WalletCount()
	resp.CachedTokens = s.cache.TokenCount()
	resp.FeedClients = s.hub.ClientCount()

	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
