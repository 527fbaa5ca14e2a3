package handlers

import (
	"net/http"
	"runtime"

	"book-cover/internal/startup"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatusResponse reports external tool availability for the admin UI.
type StatusResponse struct {
	RasterizerAvailable bool   `json:"rasterizerAvailable"`
	TranscoderAvailable bool   `json:"transcoderAvailable"`
	TranscoderPath      string `json:"transcoderPath,omitempty"`
}

// HealthResponse contains the health check response
type HealthResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`
}

// GetStatus reports whether the external tools were detected. The first call
// triggers the one-time probes; later calls return the cached outcome.
func (h *Handlers) GetStatus(w http.ResponseWriter, _ *http.Request) {
	response := StatusResponse{
		RasterizerAvailable: h.tools.RasterizerAvailable(),
		TranscoderAvailable: h.tools.TranscoderAvailable(),
	}
	if path, ok := h.tools.TranscoderPath(); ok {
		response.TranscoderPath = path
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, response)
}

// HealthCheck returns the health status of the service
func (h *Handlers) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, HealthResponse{
		Status:       "healthy",
		Version:      startup.Version,
		GoVersion:    runtime.Version(),
		NumCPU:       runtime.NumCPU(),
		NumGoroutine: runtime.NumGoroutine(),
	})
}

// LivenessCheck is a simple liveness probe (always returns 200 if server is running)
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	// For HEAD requests, only send headers (no body)
	if r.Method != http.MethodHead {
		writeJSON(w, map[string]string{"status": "alive"})
	}
}

// GetVersion returns the application version and build information
func (h *Handlers) GetVersion(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, startup.GetBuildInfo())
}

// MetricsHandler returns the Prometheus metrics handler
func (h *Handlers) MetricsHandler() http.Handler {
	return promhttp.Handler()
}
