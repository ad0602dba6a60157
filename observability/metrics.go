/* metrics.go
 * Contains the Prometheus metrics shared by the fetch layer and the view controllers
 */

package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Fetch outcome label values.
const (
	OutcomeSuccess    = "success"
	OutcomeHTTPStatus = "http_status"
	OutcomeTransport  = "transport"
	OutcomeParse      = "parse"
	OutcomeCanceled   = "canceled"
)

var (
	fetchCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "octofit_dashboard",
		Subsystem: "api",
		Name:      "fetches_total",
		Help:      "Number of entity list fetches grouped by entity and outcome.",
	}, []string{"entity", "outcome"})

	fetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "octofit_dashboard",
		Subsystem: "api",
		Name:      "fetch_duration_seconds",
		Help:      "Latency of entity list fetches, including body read and normalisation.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"entity"})

	staleCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "octofit_dashboard",
		Subsystem: "view",
		Name:      "stale_responses_discarded_total",
		Help:      "Responses dropped because the controller was remounted or unmounted before they arrived.",
	}, []string{"entity"})
)

func init() {
	prometheus.MustRegister(fetchCounter, fetchDuration, staleCounter)
}

// RecordFetch counts a finished fetch and observes its latency.
func RecordFetch(entity, outcome string, elapsed time.Duration) {
	fetchCounter.WithLabelValues(entity, outcome).Inc()
	fetchDuration.WithLabelValues(entity).Observe(elapsed.Seconds())
}

// RecordStaleDiscard counts a result that arrived for an outdated generation.
func RecordStaleDiscard(entity string) {
	staleCounter.WithLabelValues(entity).Inc()
}

// FetchCounter exposes the fetch counter for tests.
func FetchCounter(entity, outcome string) prometheus.Counter {
	return fetchCounter.WithLabelValues(entity, outcome)
}

// StaleCounter exposes the stale-response counter for tests.
func StaleCounter(entity string) prometheus.Counter {
	return staleCounter.WithLabelValues(entity)
}
