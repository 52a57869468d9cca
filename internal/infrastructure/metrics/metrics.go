package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Account metrics
	AccountsCreated   prometheus.Counter
	AccountOperations *prometheus.CounterVec
	OperationErrors   *prometheus.CounterVec

	// Transfer metrics
	TransfersCreated prometheus.Counter
	TransferAmount   prometheus.Histogram

	// Authentication metrics
	AuthAttempts    *prometheus.CounterVec
	UsersRegistered prometheus.Counter

	// Statement cache metrics
	StatementCacheHits   prometheus.Counter
	StatementCacheMisses prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Account metrics
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "minibank_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minibank_account_operations_total",
				Help: "Total account operations by type",
			},
			[]string{"operation"},
		),
		OperationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minibank_operation_errors_total",
				Help: "Total failed account operations by type",
			},
			[]string{"operation", "error_type"},
		),

		// Transfer metrics
		TransfersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "minibank_transfers_created_total",
			Help: "Total number of transfers created",
		}),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "minibank_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),

		// Authentication metrics
		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minibank_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),
		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "minibank_users_registered_total",
			Help: "Total number of registered users",
		}),

		// Statement cache metrics
		StatementCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "minibank_statement_cache_hits_total",
			Help: "Total statement cache hits",
		}),
		StatementCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "minibank_statement_cache_misses_total",
			Help: "Total statement cache misses",
		}),
	}
}

// StatementCacheHit counts a statement served from the cache. Safe to
// call on a nil receiver so callers need no metrics at all in tests.
func (m *Metrics) StatementCacheHit() {
	if m != nil {
		m.StatementCacheHits.Inc()
	}
}

// StatementCacheMiss counts a statement read that fell through to the
// database.
func (m *Metrics) StatementCacheMiss() {
	if m != nil {
		m.StatementCacheMisses.Inc()
	}
}
