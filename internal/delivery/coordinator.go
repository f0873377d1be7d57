// Package delivery runs the persist-and-notify state machine for each
// incoming webhook batch.
package delivery

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"solana-webhook-alerts/internal/classify"
	"solana-webhook-alerts/internal/domain"
	"solana-webhook-alerts/internal/enrich"
	"solana-webhook-alerts/internal/observability"
	"solana-webhook-alerts/internal/storage"
)

// Enricher produces the enriched description for a transaction.
type Enricher interface {
	Enrich(ctx context.Context, tx *domain.Transaction) enrich.Result
}

// Notifier delivers one formatted alert to the chat channel.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Stats summarizes one processed batch.
type Stats struct {
	Processed int
	Persisted int
	Filtered  int
	Notified  int
}

// Coordinator persists every transaction and notifies on the notable
// ones, each sink with its own bounded retry. Failures on one sink never
// affect the other and never abort the batch.
type Coordinator struct {
	store        storage.TransactionStore
	enricher     Enricher
	notifier     Notifier
	persistRetry RetryPolicy
	notifyRetry  RetryPolicy
	logger       *log.Logger
	onAlert      func(text string)
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithPersistRetry overrides the persistence retry policy.
func WithPersistRetry(p RetryPolicy) Option {
	return func(c *Coordinator) {
		c.persistRetry = p
	}
}

// WithNotifyRetry overrides the notification retry policy.
func WithNotifyRetry(p RetryPolicy) Option {
	return func(c *Coordinator) {
		c.notifyRetry = p
	}
}

// WithLogger sets the coordinator logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Coordinator) {
		c.logger = l
	}
}

// WithAlertHook registers a callback invoked with every formatted alert
// that is handed to the notifier (used by the debug alert feed).
func WithAlertHook(fn func(text string)) Option {
	return func(c *Coordinator) {
		c.onAlert = fn
	}
}

// NewCoordinator creates a Coordinator.
func NewCoordinator(store storage.TransactionStore, enricher Enricher, notifier Notifier, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:        store,
		enricher:     enricher,
		notifier:     notifier,
		persistRetry: DefaultPersistRetry,
		notifyRetry:  DefaultNotifyRetry,
		logger:       log.New(os.Stdout, "[delivery] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProcessBatch runs the per-transaction state machine, strictly in batch
// order. It never returns an error: individual persist/notify failures
// are logged and dropped.
func (c *Coordinator) ProcessBatch(ctx context.Context, txs []*domain.Transaction) Stats {
	var stats Stats

	for _, tx := range txs {
		stats.Processed++
		observability.RecordTransaction(string(tx.Type))

		if c.persist(ctx, tx) {
			stats.Persisted++
		}

		if tx.Description == "" {
			continue
		}
		if !classify.IsNotable(tx) {
			c.logger.Printf("tx %s filtered (below threshold)", tx.Signature)
			observability.RecordFiltered()
			stats.Filtered++
			continue
		}

		if c.notify(ctx, tx) {
			stats.Notified++
		}
	}

	observability.RecordBatch(len(txs))
	return stats
}

// persist stores the transaction with bounded retry. Exhaustion is
// logged and dropped, never surfaced.
func (c *Coordinator) persist(ctx context.Context, tx *domain.Transaction) bool {
	rec := toRecord(tx)

	err := c.persistRetry.Do(ctx, func() error {
		err := c.store.Insert(ctx, rec)
		if err != nil {
			c.logger.Printf("persist tx %s: %v", tx.Signature, err)
		}
		observability.RecordPersist(err)
		return err
	})
	if err != nil {
		c.logger.Printf("persist tx %s: dropped after %d attempts: %v",
			tx.Signature, c.persistRetry.MaxAttempts, err)
		return false
	}
	return true
}

// notify enriches, formats and sends the alert with bounded retry.
func (c *Coordinator) notify(ctx context.Context, tx *domain.Transaction) bool {
	result := c.enricher.Enrich(ctx, tx)
	text := FormatAlert(tx, result)

	if c.onAlert != nil {
		c.onAlert(text)
	}

	err := c.notifyRetry.Do(ctx, func() error {
		err := c.notifier.Notify(ctx, text)
		if err != nil {
			c.logger.Printf("notify tx %s: %v", tx.Signature, err)
		}
		observability.RecordNotify(err)
		return err
	})
	if err != nil {
		c.logger.Printf("notify tx %s: dropped after %d attempts: %v",
			tx.Signature, c.notifyRetry.MaxAttempts, err)
		return false
	}
	return true
}

// toRecord converts a webhook transaction into its persisted form.
func toRecord(tx *domain.Transaction) *domain.TransactionRecord {
	description := tx.Description
	if description == "" {
		description = enrich.NoDescription
	}

	raw, err := json.Marshal(tx)
	if err != nil {
		raw = nil
	}

	return &domain.TransactionRecord{
		TxHash:      tx.Signature,
		TxType:      string(tx.Type),
		Timestamp:   tx.Timestamp,
		RawData:     raw,
		Description: description,
	}
}
