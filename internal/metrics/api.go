package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	apiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Count of command surface requests.",
	}, []string{"route", "code"})
	apiRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "Duration of command surface requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "code"})
)

// API tracks metrics for the HTTP command surface.
type API struct{}

func NewAPI() *API {
	return &API{}
}

func (API) ObserveRequest(route string, code int, started time.Time) {
	if route == "" {
		route = "unmatched"
	}
	c := strconv.Itoa(code)
	apiRequestsTotal.WithLabelValues(route, c).Inc()
	apiRequestDuration.WithLabelValues(route, c).Observe(time.Since(started).Seconds())
}
