package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
)

var (
	workerTicksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "worker",
		Name:      "ticks_total",
		Help:      "Count of worker ticks by selected activity.",
	}, []string{"activity", "status"})

	workerTickDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "worker",
		Name:      "tick_duration_seconds",
		Help:      "Duration of a worker tick.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"activity", "status"})

	workerGateTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "worker",
		Name:      "gate_total",
		Help:      "Count of scheduling gate decisions.",
	}, []string{"decision"})

	workerBurnRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "worker",
		Name:      "burn_requests_dispatched_total",
		Help:      "Count of burn requests posted to the bank by outcome.",
	}, []string{"outcome"})
)

// Worker tracks metrics for the ramps worker loop.
type Worker struct{}

func NewWorker() *Worker {
	return &Worker{}
}

// ObserveTick records the outcome of one tick.
func (Worker) ObserveTick(activity model.Activity, err error, started time.Time) {
	a := string(activity)
	if a == "" {
		a = "unknown"
	}
	s := status(err)
	workerTicksTotal.WithLabelValues(a, s).Inc()
	workerTickDuration.WithLabelValues(a, s).Observe(time.Since(started).Seconds())
}

// ObserveGate records whether the scheduling gate let the tick through.
func (Worker) ObserveGate(allowed bool) {
	decision := "skipped"
	if allowed {
		decision = "allowed"
	}
	workerGateTotal.WithLabelValues(decision).Inc()
}

// ObserveDispatch records the result of one unpeg pass.
func (Worker) ObserveDispatch(sent, failed int) {
	workerBurnRequestsTotal.WithLabelValues("sent").Add(float64(sent))
	workerBurnRequestsTotal.WithLabelValues("failed").Add(float64(failed))
}
