// Package startup loads configuration and build information for the
// book-cover service.
//
// Configuration comes from environment variables with logged defaults, with
// an optional YAML file (COVER_CONFIG_FILE) layered on top for operators who
// prefer file-based tuning. Out-of-range values fall back to their defaults
// with a warning; the service always starts with a usable configuration.
package startup

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"book-cover/internal/logging"
	"book-cover/internal/render"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// Config holds all application configuration
type Config struct {
	Port           string
	ScratchDir     string
	LibraryDir     string
	DPI            int
	JPEGQuality    int
	TimeoutSeconds int
	MetricsEnabled bool
}

// fileConfig is the optional YAML overlay. Only set fields override the
// environment-derived values.
type fileConfig struct {
	DPI            *int    `yaml:"dpi"`
	JPEGQuality    *int    `yaml:"jpegQuality"`
	TimeoutSeconds *int    `yaml:"timeoutSeconds"`
	ScratchDir     *string `yaml:"scratchDir"`
}

// RenderOptions converts the configured tunables into render options.
func (c *Config) RenderOptions() render.PDFOptions {
	return render.PDFOptions{
		DPI:         c.DPI,
		JPEGQuality: c.JPEGQuality,
		Timeout:     time.Duration(c.TimeoutSeconds) * time.Second,
	}
}

// LoadConfig loads and validates configuration from environment variables and
// the optional YAML config file.
func LoadConfig() (*Config, error) {
	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	config := &Config{
		Port:           getEnv("PORT", "8080"),
		ScratchDir:     getEnv("SCRATCH_DIR", os.TempDir()),
		LibraryDir:     getEnv("LIBRARY_DIR", "/library"),
		DPI:            getEnvInt("COVER_DPI", render.DefaultDPI),
		JPEGQuality:    getEnvInt("COVER_JPEG_QUALITY", render.DefaultJPEGQuality),
		TimeoutSeconds: getEnvInt("COVER_TIMEOUT_SECONDS", int(render.DefaultTimeout/time.Second)),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
	}

	if path := getEnv("COVER_CONFIG_FILE", ""); path != "" {
		if err := applyConfigFile(config, path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		logging.Info("  COVER_CONFIG_FILE:     %s", path)
	}

	validate(config)

	logging.Info("  PORT:                  %s", config.Port)
	logging.Info("  SCRATCH_DIR:           %s", config.ScratchDir)
	logging.Info("  LIBRARY_DIR:           %s", config.LibraryDir)
	logging.Info("  COVER_DPI:             %d", config.DPI)
	logging.Info("  COVER_JPEG_QUALITY:    %d", config.JPEGQuality)
	logging.Info("  COVER_TIMEOUT_SECONDS: %d", config.TimeoutSeconds)
	logging.Info("  METRICS_ENABLED:       %v", config.MetricsEnabled)
	logging.Info("  LOG_LEVEL:             %s", logging.GetLevel())

	return config, nil
}

// applyConfigFile overlays the YAML file's set fields onto config.
func applyConfigFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	if fc.DPI != nil {
		config.DPI = *fc.DPI
	}
	if fc.JPEGQuality != nil {
		config.JPEGQuality = *fc.JPEGQuality
	}
	if fc.TimeoutSeconds != nil {
		config.TimeoutSeconds = *fc.TimeoutSeconds
	}
	if fc.ScratchDir != nil {
		config.ScratchDir = *fc.ScratchDir
	}
	return nil
}

// validate clamps out-of-range tunables back to their defaults.
func validate(config *Config) {
	if config.DPI <= 0 {
		logging.Warn("  Invalid COVER_DPI %d, using default %d", config.DPI, render.DefaultDPI)
		config.DPI = render.DefaultDPI
	}
	if config.JPEGQuality < 1 || config.JPEGQuality > 100 {
		logging.Warn("  Invalid COVER_JPEG_QUALITY %d, using default %d", config.JPEGQuality, render.DefaultJPEGQuality)
		config.JPEGQuality = render.DefaultJPEGQuality
	}
	if config.TimeoutSeconds <= 0 {
		logging.Warn("  Invalid COVER_TIMEOUT_SECONDS %d, using default %d", config.TimeoutSeconds, int(render.DefaultTimeout/time.Second))
		config.TimeoutSeconds = int(render.DefaultTimeout / time.Second)
	}
}

// getEnv returns an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logging.Warn("  Invalid %s %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

// getEnvBool returns a boolean environment variable or a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	switch value {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	logging.Warn("  Invalid %s %q, using default %v", key, value, defaultValue)
	return defaultValue
}
