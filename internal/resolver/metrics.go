package resolver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ResolutionsTotal counts FindID calls by outcome.
	// Labels: outcome (exact, window, no_match, invalid_input, store_error)
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resolvd",
			Subsystem: "resolver",
			Name:      "resolutions_total",
			Help:      "Total number of resolution calls by outcome",
		},
		[]string{"outcome"},
	)

	// ResolutionDuration tracks end-to-end resolution time, store round
	// trips included.
	ResolutionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "resolvd",
			Subsystem: "resolver",
			Name:      "resolution_duration_seconds",
			Help:      "End-to-end duration of resolution calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// WindowLength tracks the length of the window a resolution was decided
	// on. Short winning windows indicate noisy inputs worth investigating.
	WindowLength = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "resolvd",
			Subsystem: "resolver",
			Name:      "window_length",
			Help:      "Length of the shared window that decided each resolution",
			Buckets:   prometheus.LinearBuckets(1, 2, 16),
		},
	)
)
