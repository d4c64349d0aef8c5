// Package metrics exposes the service's Prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UploadsTotal counts processed uploads by final outcome
	// (ok, load_failure, schema_failure, empty_filter, error).
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "firmante",
		Name:      "uploads_total",
		Help:      "Processed report uploads by outcome.",
	}, []string{"outcome"})

	// UnparsableCells counts amount cells that failed normalization.
	UnparsableCells = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "firmante",
		Name:      "unparsable_cells_total",
		Help:      "Amount cells that could not be normalized.",
	})

	// ReportDuration observes end-to-end report build time.
	ReportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "firmante",
		Name:      "report_build_seconds",
		Help:      "Time to load, normalize and aggregate one upload.",
		Buckets:   prometheus.DefBuckets,
	})
)
