package tools

import (
	"context"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"book-cover/internal/logging"
)

const (
	rasterizerCommand = "pdftoppm"
	transcoderCommand = "ffmpeg"

	// bundledTranscoderPath is where media server container images ship their
	// own ffmpeg build. Checked by file stat before falling back to PATH.
	bundledTranscoderPath = "/usr/lib/jellyfin-ffmpeg/ffmpeg"

	probeTimeout = 5 * time.Second
)

// toolState is the memoized probe outcome for one tool.
type toolState struct {
	once      sync.Once
	available bool
	path      string
}

// Prober lazily determines whether the external tools are present. The zero
// value is not usable; construct with New.
type Prober struct {
	rasterizerCmd string
	transcoderCmd string
	bundledPath   string

	rasterizer toolState
	transcoder toolState
}

// New returns a Prober for the standard tool names and bundled paths.
func New() *Prober {
	return &Prober{
		rasterizerCmd: rasterizerCommand,
		transcoderCmd: transcoderCommand,
		bundledPath:   bundledTranscoderPath,
	}
}

// RasterizerAvailable reports whether pdftoppm can be started. The first call
// probes; subsequent calls return the cached result.
func (p *Prober) RasterizerAvailable() bool {
	p.rasterizer.once.Do(func() {
		p.rasterizer.available = probeStarts(p.rasterizerCmd, "-v")
		if p.rasterizer.available {
			p.rasterizer.path = p.rasterizerCmd
			logging.Info("%s detected, PDF cover extraction enabled", p.rasterizerCmd)
		} else {
			logging.Warn("%s not found, install poppler-utils to enable PDF cover extraction", p.rasterizerCmd)
		}
	})
	return p.rasterizer.available
}

// RasterizerPath returns the command used to invoke the rasterizer and
// whether it is available.
func (p *Prober) RasterizerPath() (string, bool) {
	if !p.RasterizerAvailable() {
		return "", false
	}
	return p.rasterizer.path, true
}

// TranscoderAvailable reports whether an ffmpeg binary is usable.
func (p *Prober) TranscoderAvailable() bool {
	_, ok := p.TranscoderPath()
	return ok
}

// TranscoderPath resolves the ffmpeg binary. The bundled installation path is
// preferred and needs only a file stat; otherwise the bare command name is
// probed through PATH. The first call's outcome is cached.
func (p *Prober) TranscoderPath() (string, bool) {
	p.transcoder.once.Do(func() {
		if info, err := os.Stat(p.bundledPath); err == nil && !info.IsDir() {
			p.transcoder.available = true
			p.transcoder.path = p.bundledPath
			logging.Info("using bundled transcoder at %s", p.bundledPath)
			return
		}
		if probeStarts(p.transcoderCmd, "-version") {
			p.transcoder.available = true
			p.transcoder.path = p.transcoderCmd
			logging.Info("%s detected on PATH, audio artwork extraction enabled", p.transcoderCmd)
			return
		}
		logging.Warn("%s not found, audio artwork extraction disabled", p.transcoderCmd)
	})
	return p.transcoder.path, p.transcoder.available
}

// probeStarts launches `name arg` under a short timeout and reports whether
// the process could be started. Exit codes are ignored; a hung probe is
// killed by the context.
func probeStarts(name, arg string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, arg)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	if err := cmd.Start(); err != nil {
		logging.Debug("probe %s %s failed to start: %v", name, arg, err)
		return false
	}
	_ = cmd.Wait()
	return true
}
