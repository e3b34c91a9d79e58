package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	uploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "insights",
			Name:      "uploads_total",
			Help:      "Uploaded files processed, by data type and outcome",
		},
		[]string{"data_type", "status"},
	)

	rowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "insights",
			Name:      "rows_total",
			Help:      "Records reconciled from uploaded files",
		},
		[]string{"data_type"},
	)

	unknownColumnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "insights",
			Name:      "unknown_columns_total",
			Help:      "Source columns dropped because no canonical field accepts them",
		},
		[]string{"data_type"},
	)

	processDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "insights",
			Name:      "process_duration_seconds",
			Help:      "Time spent parsing, reconciling and aggregating one file",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"data_type"},
	)

	exportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "insights",
			Name:      "exports_total",
			Help:      "Sink export attempts, by outcome",
		},
		[]string{"status"},
	)
)
