package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"book-cover/internal/handlers"
	"book-cover/internal/logging"
	"book-cover/internal/metrics"
	"book-cover/internal/startup"
	"book-cover/internal/tools"

	"github.com/gorilla/mux"
)

func main() {
	startTime := time.Now()

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		logging.Fatal("Configuration error: %v", err)
	}

	// Probe external tools up front so the status endpoint and metrics
	// reflect the environment without waiting for the first extraction.
	prober := tools.New()
	metrics.SetToolAvailability("pdftoppm", prober.RasterizerAvailable())
	metrics.SetToolAvailability("ffmpeg", prober.TranscoderAvailable())

	// Initialize handlers
	h := handlers.New(prober)

	// Setup router
	router := setupRouter(h, config.MetricsEnabled)

	// Create server
	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start graceful shutdown handler
	go handleShutdown(srv)

	// Start server
	logging.Info("book-cover %s listening on :%s (started in %s)",
		startup.Version, config.Port, time.Since(startTime))
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logging.Fatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers, metricsEnabled bool) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")
	r.HandleFunc("/status", h.GetStatus).Methods("GET")

	if metricsEnabled {
		r.Handle("/metrics", h.MetricsHandler()).Methods("GET")
	}

	return r
}

func handleShutdown(srv *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	logging.Info("Received signal %s, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown error: %v", err)
	}
}
