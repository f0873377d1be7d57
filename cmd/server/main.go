// Package main runs the webhook alert relay: it receives Solana
// transaction batches, persists them, and delivers enriched Telegram
// alerts for the notable ones.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"solana-webhook-alerts/internal/cache"
	"solana-webhook-alerts/internal/delivery"
	"solana-webhook-alerts/internal/enrich"
	"solana-webhook-alerts/internal/okx"
	"solana-webhook-alerts/internal/server"
	"solana-webhook-alerts/internal/storage"
	"solana-webhook-alerts/internal/storage/memory"
	pgstore "solana-webhook-alerts/internal/storage/postgres"
	"solana-webhook-alerts/internal/telegram"
)

// stores holds the storage implementations behind the pipeline.
type stores struct {
	wallets      storage.WalletStore
	tokens       storage.TokenInfoStore
	transactions storage.TransactionStore
}

func main() {
	// Load .env file if exists; system env vars win.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	// Parse flags (env vars as defaults)
	addr := flag.String("addr", envOr("LISTEN_ADDR", ":3000"), "HTTP listen address")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL")
	walletLimit := flag.Int("wallet-limit", cache.DefaultWalletLimit, "Wallet aliases loaded at startup")
	reloadInterval := flag.Duration("cache-reload-interval", 0, "Cache reload interval (0 disables reloading)")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	telegramToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	telegramChat := os.Getenv("TELEGRAM_CHAT_ID")
	if telegramToken == "" || telegramChat == "" {
		logger.Fatal("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID are required")
	}

	if !*useMemory && *postgresDSN == "" {
		logger.Fatal("--postgres-dsn is required (use --use-memory for in-memory storage)")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, cleanup, err := createStores(ctx, *postgresDSN, *useMemory)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	// Metadata cache, populated before the first batch can arrive.
	metaCache := cache.New(st.wallets, st.tokens,
		cache.WithWalletLimit(*walletLimit),
		cache.WithLogger(log.New(os.Stdout, "[cache] ", log.LstdFlags)),
	)
	metaCache.LoadAll(ctx)

	okxClient := okx.NewClient(okx.Credentials{
		APIKey:     os.Getenv("OKX_API_KEY"),
		SecretKey:  os.Getenv("OKX_SECRET_KEY"),
		Passphrase: os.Getenv("OKX_PASSPHRASE"),
		ProjectID:  os.Getenv("OKX_PROJECT_ID"),
	})

	enricher := enrich.New(metaCache, okxClient,
		enrich.WithLogger(log.New(os.Stdout, "[enrich] ", log.LstdFlags)))

	notifier := telegram.NewClient(telegramToken, telegramChat)

	hub := server.NewHub()
	coordinator := delivery.NewCoordinator(st.transactions, enricher, notifier,
		delivery.WithLogger(log.New(os.Stdout, "[delivery] ", log.LstdFlags)),
		delivery.WithAlertHook(hub.Broadcast),
	)

	srv := server.New(coordinator, metaCache, st.transactions,
		server.WithHub(hub),
		server.WithLogger(logger))

	// Optional periodic cache reload to pick up alias changes.
	if *reloadInterval > 0 {
		go func() {
			ticker := time.NewTicker(*reloadInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					metaCache.LoadAll(ctx)
				}
			}
		}()
	}

	httpServer := &http.Server{
		Addr:    *addr,
		Handler: srv.Handler(),
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("Shutdown error: %v", err)
		}
	}()

	logger.Printf("Listening on %s (memory storage: %v)", *addr, *useMemory)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("HTTP server error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// createStores creates all required stores.
func createStores(ctx context.Context, postgresDSN string, useMemory bool) (*stores, func(), error) {
	if useMemory {
		st := &stores{
			wallets:      memory.NewWalletStore(),
			tokens:       memory.NewTokenInfoStore(),
			transactions: memory.NewTransactionStore(),
		}
		return st, func() {}, nil
	}

	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}

	st := &stores{
		wallets:      pgstore.NewWalletStore(pool),
		tokens:       pgstore.NewTokenInfoStore(pool),
		transactions: pgstore.NewTransactionStore(pool),
	}

	return st, pool.Close, nil
}

// envOr returns the environment value or a fallback.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
