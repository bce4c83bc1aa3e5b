package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
)

var (
	reconcilerTransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "reconciler",
		Name:      "transactions_total",
		Help:      "Count of reconciled bank transactions.",
	}, []string{"type", "status"})

	reconcilerTransactionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "reconciler",
		Name:      "transaction_duration_seconds",
		Help:      "Duration of applying one bank transaction.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"type", "status"})

	reconcilerStatementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "reconciler",
		Name:      "statements_total",
		Help:      "Count of processed bank statements.",
	}, []string{"status"})

	reconcilerFailedTransactions = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "reconciler",
		Name:      "statement_failed_transactions",
		Help:      "Number of failed transactions per statement.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 8), // 1..128
	})

	reconcilerStatementDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "reconciler",
		Name:      "statement_duration_seconds",
		Help:      "Duration of processing one bank statement.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})
)

// Reconciler tracks metrics for the reconciliation engine.
type Reconciler struct{}

func NewReconciler() *Reconciler {
	return &Reconciler{}
}

func (Reconciler) ObserveTransaction(txType model.TxType, err error, started time.Time) {
	s := status(err)
	reconcilerTransactionsTotal.WithLabelValues(string(txType), s).Inc()
	reconcilerTransactionDuration.WithLabelValues(string(txType), s).Observe(time.Since(started).Seconds())
}

func (Reconciler) ObserveStatement(failed int, err error, started time.Time) {
	s := status(err)
	reconcilerStatementsTotal.WithLabelValues(s).Inc()
	reconcilerStatementDuration.WithLabelValues(s).Observe(time.Since(started).Seconds())
	if failed > 0 {
		reconcilerFailedTransactions.Observe(float64(failed))
	}
}
