// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Webhook metrics
	BatchesReceived       prometheus.Counter
	BatchSize             prometheus.Histogram
	TransactionsProcessed *prometheus.CounterVec
	TransactionsFiltered  prometheus.Counter

	// Enrichment metrics
	AddressResolutions *prometheus.CounterVec
	OKXCallLatency     *prometheus.HistogramVec
	OKXCallErrors      *prometheus.CounterVec

	// Delivery metrics
	PersistAttempts prometheus.Counter
	PersistFailures prometheus.Counter
	NotifyAttempts  prometheus.Counter
	NotifyFailures  prometheus.Counter

	// Cache metrics
	CachedWallets prometheus.Gauge
	CachedTokens  prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "webhook_alerts"
	}

	return &Metrics{
		// Webhook metrics
		BatchesReceived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "batches_received_total",
			Help:      "Total number of webhook batches received",
		}),
		BatchSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "batch_size",
			Help:      "Number of transactions per webhook batch",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
		}),
		TransactionsProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "transactions_processed_total",
			Help:      "Total number of transactions processed by type",
		}, []string{"type"}),
		TransactionsFiltered: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "transactions_filtered_total",
			Help:      "Total number of transactions dropped by the value filter",
		}),

		// Enrichment metrics
		AddressResolutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "enrich",
			Name:      "address_resolutions_total",
			Help:      "Total number of address resolutions by outcome",
		}, []string{"outcome"}),
		OKXCallLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "okx",
			Name:      "call_latency_seconds",
			Help:      "OKX API call latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
		OKXCallErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "okx",
			Name:      "call_errors_total",
			Help:      "Total number of OKX API transport errors",
		}, []string{"path"}),

		// Delivery metrics
		PersistAttempts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "delivery",
			Name:      "persist_attempts_total",
			Help:      "Total number of persistence attempts",
		}),
		PersistFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "delivery",
			Name:      "persist_failures_total",
			Help:      "Total number of failed persistence attempts",
		}),
		NotifyAttempts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "delivery",
			Name:      "notify_attempts_total",
			Help:      "Total number of notification attempts",
		}),
		NotifyFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "delivery",
			Name:      "notify_failures_total",
			Help:      "Total number of failed notification attempts",
		}),

		// Cache metrics
		CachedWallets: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "wallet_aliases",
			Help:      "Number of wallet aliases currently cached",
		}),
		CachedTokens: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "token_records",
			Help:      "Number of token metadata records currently cached",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordBatch records a received webhook batch and its size.
func RecordBatch(size int) {
	DefaultMetrics.BatchesReceived.Inc()
	DefaultMetrics.BatchSize.Observe(float64(size))
}

// RecordTransaction increments the processed counter for a type.
func RecordTransaction(txType string) {
	DefaultMetrics.TransactionsProcessed.WithLabelValues(txType).Inc()
}

// RecordFiltered increments the value-filter drop counter.
func RecordFiltered() {
	DefaultMetrics.TransactionsFiltered.Inc()
}

// RecordResolution records an address resolution outcome.
func RecordResolution(outcome string) {
	DefaultMetrics.AddressResolutions.WithLabelValues(outcome).Inc()
}

// RecordOKXCall records an OKX API call.
func RecordOKXCall(path string, seconds float64, err error) {
	DefaultMetrics.OKXCallLatency.WithLabelValues(path).Observe(seconds)
	if err != nil {
		DefaultMetrics.OKXCallErrors.WithLabelValues(path).Inc()
	}
}

// RecordPersist records a persistence attempt.
func RecordPersist(err error) {
	DefaultMetrics.PersistAttempts.Inc()
	if err != nil {
		DefaultMetrics.PersistFailures.Inc()
	}
}

// RecordNotify records a notification attempt.
func RecordNotify(err error) {
	DefaultMetrics.NotifyAttempts.Inc()
	if err != nil {
		DefaultMetrics.NotifyFailures.Inc()
	}
}

// UpdateCacheSizes updates the cache size gauges.
func UpdateCacheSizes(wallets, tokens int) {
	DefaultMetrics.CachedWallets.Set(float64(wallets))
	DefaultMetrics.CachedTokens.Set(float64(tokens))
}
