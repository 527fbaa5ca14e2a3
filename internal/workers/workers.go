// Package workers sizes worker pools for batch cover extraction.
package workers

import (
	"os"
	"runtime"
	"strconv"
)

// Count returns the worker count for a given task profile. It respects
// container CPU limits via GOMAXPROCS (Go 1.19+).
//
// The multiplier adjusts for task characteristics: extraction is dominated by
// subprocess and file I/O waits, so the batch scanner uses ForIO.
//
// The limit parameter caps the worker count; 0 means no cap. The COVER_WORKERS
// environment variable overrides the computed value.
func Count(multiplier float64, limit int) int {
	if override := os.Getenv("COVER_WORKERS"); override != "" {
		if count, err := strconv.Atoi(override); err == nil && count > 0 {
			if limit > 0 && count > limit {
				return limit
			}
			return count
		}
	}

	available := runtime.GOMAXPROCS(0)
	workers := int(float64(available) * multiplier)

	if workers < 1 {
		workers = 1
	}
	if limit > 0 && workers > limit {
		workers = limit
	}
	return workers
}

// ForIO returns the worker count for I/O-bound tasks (2 per CPU).
func ForIO(limit int) int {
	return Count(2.0, limit)
}
