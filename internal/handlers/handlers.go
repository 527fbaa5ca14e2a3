// Package handlers implements the operator-facing HTTP surface: health and
// liveness probes, the tool-availability status endpoint, version info, and
// Prometheus metrics. None of these trigger an extraction; the status
// endpoint reads the prober's cached state (probing at most once).
package handlers

import (
	"encoding/json"
	"net/http"

	"book-cover/internal/logging"
)

// ToolStatus is the capability query surface consumed by the status endpoint.
// *tools.Prober satisfies it.
type ToolStatus interface {
	RasterizerAvailable() bool
	TranscoderAvailable() bool
	TranscoderPath() (string, bool)
}

// Handlers bundles the HTTP handlers and their dependencies.
type Handlers struct {
	tools ToolStatus
}

// New returns the handler set backed by the given tool status source.
func New(tools ToolStatus) *Handlers {
	return &Handlers{tools: tools}
}

// writeJSON encodes v as JSON and writes it to the response writer.
// Any encoding or write errors are logged since we typically cannot
// recover from them in an HTTP handler context.
func writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
}
