package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bankClientRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "bank_client",
		Name:      "requests_total",
		Help:      "Count of bank API requests.",
	}, []string{"operation", "status"})
	bankClientRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "bank_client",
		Name:      "request_duration_seconds",
		Help:      "Duration of bank API requests.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"operation", "status"})
)

// BankClient tracks metrics for bank API calls.
type BankClient struct{}

func NewBankClient() *BankClient {
	return &BankClient{}
}

func (BankClient) Observe(operation string, err error, started time.Time) {
	s := status(err)
	bankClientRequestsTotal.WithLabelValues(operation, s).Inc()
	bankClientRequestDuration.WithLabelValues(operation, s).Observe(time.Since(started).Seconds())
}
