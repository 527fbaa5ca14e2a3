package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Extraction metrics
var (
	ExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "book_cover_extractions_total",
			Help: "Total number of cover extraction attempts",
		},
		[]string{"strategy", "outcome"}, // strategy: pdf|epub|audio|none; outcome: image|no_image|cancelled
	)

	ExtractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "book_cover_extraction_duration_seconds",
			Help:    "Cover extraction duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"strategy"},
	)

	ExtractedImageBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "book_cover_extracted_image_bytes",
			Help:    "Size of successfully extracted cover images in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		},
		[]string{"format"},
	)
)

// Subprocess metrics
var (
	SubprocessRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "book_cover_subprocess_runs_total",
			Help: "Total number of external tool invocations",
		},
		[]string{"tool", "result"}, // result: ok|failed|timeout|cancelled
	)

	SubprocessTimeoutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "book_cover_subprocess_timeouts_total",
			Help: "Total number of external tool invocations killed on timeout",
		},
		[]string{"tool"},
	)
)

// Tool availability metrics
var (
	ToolAvailable = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "book_cover_tool_available",
			Help: "Whether an external tool was detected (1 = available, 0 = missing)",
		},
		[]string{"tool"},
	)
)

// SetToolAvailability records the probe outcome for a tool.
func SetToolAvailability(tool string, available bool) {
	v := 0.0
	if available {
		v = 1.0
	}
	ToolAvailable.WithLabelValues(tool).Set(v)
}
