// Package metrics registers the process-wide Prometheus collectors. The
// relay server exposes them on /metrics; the one-shot transfer job updates
// them too so a long-lived deployment gets run counters for free.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transferRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moxalise_transfer_runs_total",
		Help: "Completed transfer passes, including partial ones.",
	})

	transferRowsScanned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moxalise_transfer_rows_scanned_total",
		Help: "Source rows examined across all transfer passes.",
	})

	transferRowsMoved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moxalise_transfer_rows_transferred_total",
		Help: "Rows appended to the normalized sheet across all passes.",
	})

	transferDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "moxalise_transfer_run_duration_seconds",
		Help:    "Wall time of a transfer pass.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moxalise_http_requests_total",
		Help: "Relay requests by route and status code.",
	}, []string{"route", "code"})
)

// ObserveTransferRun records the outcome of one transfer pass.
func ObserveTransferRun(rowsScanned, rowsTransferred int, elapsed time.Duration) {
	transferRuns.Inc()
	transferRowsScanned.Add(float64(rowsScanned))
	transferRowsMoved.Add(float64(rowsTransferred))
	transferDuration.Observe(elapsed.Seconds())
}

// CountRequest records one relay request.
func CountRequest(route, code string) {
	httpRequests.WithLabelValues(route, code).Inc()
}
