// Package metrics exposes Prometheus metrics for the search service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rohanthewiz/logger"
)

var (
	OverlayOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gostays_filter_overlay_ops_total",
			Help: "Filter overlay operations by operation and outcome",
		},
		[]string{"op", "outcome"},
	)

	FiltersApplied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gostays_filters_applied_total",
			Help: "Number of times a filter draft was applied",
		},
	)

	ListingSearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gostays_listing_search_duration_seconds",
			Help:    "Duration of listing searches in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
	)
)

// Outcome labels for OverlayOps
const (
	OutcomeOK       = "ok"
	OutcomeClosed   = "closed"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// RegisterSessionGauge reports the number of live search sessions through count.
func RegisterSessionGauge(count func() int) {
	promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "gostays_search_sessions",
			Help: "Number of live search sessions",
		},
		func() float64 { return float64(count()) },
	)
}

// ObserveSearch records the time since start as one listing search.
func ObserveSearch(start time.Time) {
	ListingSearchDuration.Observe(time.Since(start).Seconds())
}

// Serve exposes /metrics on its own listener. It blocks; an empty address disables it.
func Serve(address string) {
	if address == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	logger.Info("Metrics server starting", "address", address)
	if err := http.ListenAndServe(address, mux); err != nil {
		logger.LogErr(err, "metrics server stopped")
	}
}
