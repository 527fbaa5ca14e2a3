package startup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"book-cover/internal/render"
)

func clearCoverEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "SCRATCH_DIR", "LIBRARY_DIR", "COVER_DPI",
		"COVER_JPEG_QUALITY", "COVER_TIMEOUT_SECONDS", "METRICS_ENABLED",
		"COVER_CONFIG_FILE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearCoverEnv(t)

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", config.Port)
	}
	if config.DPI != render.DefaultDPI {
		t.Errorf("Expected DPI %d, got %d", render.DefaultDPI, config.DPI)
	}
	if config.JPEGQuality != render.DefaultJPEGQuality {
		t.Errorf("Expected quality %d, got %d", render.DefaultJPEGQuality, config.JPEGQuality)
	}
	if config.TimeoutSeconds != 30 {
		t.Errorf("Expected timeout 30s, got %d", config.TimeoutSeconds)
	}
	if !config.MetricsEnabled {
		t.Error("Expected metrics enabled by default")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearCoverEnv(t)
	t.Setenv("COVER_DPI", "300")
	t.Setenv("COVER_JPEG_QUALITY", "60")
	t.Setenv("COVER_TIMEOUT_SECONDS", "10")
	t.Setenv("METRICS_ENABLED", "false")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.DPI != 300 || config.JPEGQuality != 60 || config.TimeoutSeconds != 10 {
		t.Errorf("Env values not applied: %+v", config)
	}
	if config.MetricsEnabled {
		t.Error("Expected metrics disabled")
	}
}

func TestLoadConfigInvalidValuesFallBack(t *testing.T) {
	clearCoverEnv(t)
	t.Setenv("COVER_DPI", "-10")
	t.Setenv("COVER_JPEG_QUALITY", "250")
	t.Setenv("COVER_TIMEOUT_SECONDS", "not-a-number")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.DPI != render.DefaultDPI {
		t.Errorf("Expected DPI fallback, got %d", config.DPI)
	}
	if config.JPEGQuality != render.DefaultJPEGQuality {
		t.Errorf("Expected quality fallback, got %d", config.JPEGQuality)
	}
	if config.TimeoutSeconds != 30 {
		t.Errorf("Expected timeout fallback, got %d", config.TimeoutSeconds)
	}
}

func TestLoadConfigYAMLOverlay(t *testing.T) {
	clearCoverEnv(t)
	t.Setenv("COVER_DPI", "300")

	path := filepath.Join(t.TempDir(), "cover.yaml")
	content := "dpi: 72\njpegQuality: 50\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv("COVER_CONFIG_FILE", path)

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.DPI != 72 {
		t.Errorf("Expected file to override env DPI, got %d", config.DPI)
	}
	if config.JPEGQuality != 50 {
		t.Errorf("Expected file quality 50, got %d", config.JPEGQuality)
	}
	// Unset file fields keep their env/default values.
	if config.TimeoutSeconds != 30 {
		t.Errorf("Expected timeout untouched by file, got %d", config.TimeoutSeconds)
	}
}

func TestLoadConfigMissingConfigFile(t *testing.T) {
	clearCoverEnv(t)
	t.Setenv("COVER_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	if _, err := LoadConfig(); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestLoadConfigMalformedConfigFile(t *testing.T) {
	clearCoverEnv(t)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("dpi: [not an int"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv("COVER_CONFIG_FILE", path)

	if _, err := LoadConfig(); err == nil {
		t.Error("Expected error for malformed config file")
	}
}

func TestRenderOptions(t *testing.T) {
	config := &Config{DPI: 120, JPEGQuality: 75, TimeoutSeconds: 20}
	opts := config.RenderOptions()

	if opts.DPI != 120 || opts.JPEGQuality != 75 {
		t.Errorf("Unexpected options: %+v", opts)
	}
	if opts.Timeout != 20*time.Second {
		t.Errorf("Expected 20s timeout, got %s", opts.Timeout)
	}
}

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()

	if info.Version == "" {
		t.Error("Expected a version string")
	}
	if info.GoVersion == "" {
		t.Error("Expected a Go version")
	}
}
