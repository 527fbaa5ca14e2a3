package tools

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// writeStub creates an executable shell script in dir and returns its path.
func writeStub(t *testing.T, dir, name, script string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0755); err != nil {
		t.Fatalf("Failed to write stub %s: %v", name, err)
	}
	return path
}

func TestRasterizerAvailable(t *testing.T) {
	dir := t.TempDir()
	stub := writeStub(t, dir, "pdftoppm", "exit 0")

	p := &Prober{rasterizerCmd: stub}

	if !p.RasterizerAvailable() {
		t.Error("Expected rasterizer to be available")
	}

	path, ok := p.RasterizerPath()
	if !ok || path != stub {
		t.Errorf("Expected path %s, got %s (ok=%v)", stub, path, ok)
	}
}

func TestRasterizerAvailableNonZeroExit(t *testing.T) {
	dir := t.TempDir()
	// pdftoppm -v exits 99 on some builds; a started process still counts.
	stub := writeStub(t, dir, "pdftoppm", "exit 99")

	p := &Prober{rasterizerCmd: stub}

	if !p.RasterizerAvailable() {
		t.Error("Expected availability despite non-zero exit code")
	}
}

func TestRasterizerMissing(t *testing.T) {
	p := &Prober{rasterizerCmd: filepath.Join(t.TempDir(), "no-such-binary")}

	if p.RasterizerAvailable() {
		t.Error("Expected rasterizer to be unavailable")
	}
	if _, ok := p.RasterizerPath(); ok {
		t.Error("Expected no path for missing rasterizer")
	}
}

func TestTranscoderBundledPathPreferred(t *testing.T) {
	dir := t.TempDir()
	bundled := writeStub(t, dir, "ffmpeg-bundled", "exit 0")

	// The bare command is bogus; resolution must not reach it.
	p := &Prober{transcoderCmd: filepath.Join(dir, "missing-ffmpeg"), bundledPath: bundled}

	path, ok := p.TranscoderPath()
	if !ok {
		t.Fatal("Expected transcoder to be available via bundled path")
	}
	if path != bundled {
		t.Errorf("Expected bundled path %s, got %s", bundled, path)
	}
}

func TestTranscoderFallsBackToCommand(t *testing.T) {
	dir := t.TempDir()
	stub := writeStub(t, dir, "ffmpeg", "exit 0")

	p := &Prober{transcoderCmd: stub, bundledPath: filepath.Join(dir, "nope")}

	path, ok := p.TranscoderPath()
	if !ok || path != stub {
		t.Errorf("Expected fallback path %s, got %s (ok=%v)", stub, path, ok)
	}
	if !p.TranscoderAvailable() {
		t.Error("Expected TranscoderAvailable=true")
	}
}

func TestTranscoderMissingEverywhere(t *testing.T) {
	dir := t.TempDir()
	p := &Prober{
		transcoderCmd: filepath.Join(dir, "missing-ffmpeg"),
		bundledPath:   filepath.Join(dir, "missing-bundled"),
	}

	if p.TranscoderAvailable() {
		t.Error("Expected transcoder to be unavailable")
	}
}

func TestProbeResultStableUnderConcurrency(t *testing.T) {
	dir := t.TempDir()
	stub := writeStub(t, dir, "pdftoppm", "exit 0")

	p := &Prober{rasterizerCmd: stub}

	const goroutines = 16
	results := make([]bool, goroutines)
	var wg sync.WaitGroup

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			results[n] = p.RasterizerAvailable()
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		if r != results[0] {
			t.Fatalf("Inconsistent probe result at goroutine %d", i)
		}
	}

	// Repeated queries after the race settle on the same value.
	for i := 0; i < 5; i++ {
		if p.RasterizerAvailable() != results[0] {
			t.Fatal("Probe result changed after first determination")
		}
	}
}
