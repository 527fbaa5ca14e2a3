// Package render runs the external rendering tools under a strict lifetime
// discipline: every invocation gets a fresh uuid-partitioned temp path, a
// wall-clock timeout layered over the caller's context, a process-group kill
// that reaches descendant processes, and guaranteed temp cleanup on every
// exit path. Failures of any sort degrade to the "no image" result; callers
// never see an error from this package.
package render

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"

	"book-cover/internal/logging"
	"book-cover/internal/mediatypes"
	"book-cover/internal/metrics"
	"book-cover/internal/sniff"
)

// Defaults applied when a caller leaves options unset.
const (
	DefaultDPI         = 150
	DefaultJPEGQuality = 85
	DefaultTimeout     = 30 * time.Second
)

const (
	// stderrLimit caps how much tool error output is kept for diagnostics.
	stderrLimit = 200

	// minArtworkBytes is the plausibility floor for extracted audio artwork.
	// Anything smaller is a degenerate or empty art stream.
	minArtworkBytes = 1000

	// killGrace is how long Wait may block after the process group has been
	// signalled before the runner gives up on collecting it.
	killGrace = 5 * time.Second
)

// ToolResolver reports which external binaries are usable. *tools.Prober
// satisfies this.
type ToolResolver interface {
	RasterizerPath() (string, bool)
	TranscoderPath() (string, bool)
}

// PDFOptions configures a first-page render.
type PDFOptions struct {
	DPI         int
	JPEGQuality int
	Timeout     time.Duration
}

func (o PDFOptions) withDefaults() PDFOptions {
	if o.DPI <= 0 {
		o.DPI = DefaultDPI
	}
	if o.JPEGQuality < 1 || o.JPEGQuality > 100 {
		o.JPEGQuality = DefaultJPEGQuality
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}

// Renderer invokes the external rasterizer and transcoder.
type Renderer struct {
	resolver   ToolResolver
	scratchDir string
}

// New returns a Renderer writing temp artifacts under scratchDir.
// An empty scratchDir falls back to the system temp directory.
func New(resolver ToolResolver, scratchDir string) *Renderer {
	if scratchDir == "" {
		scratchDir = os.TempDir()
	}
	return &Renderer{resolver: resolver, scratchDir: scratchDir}
}

// PDFFirstPage renders page one of the PDF at pdfPath to JPEG bytes.
// When the rasterizer is unavailable no subprocess is attempted. Timeouts,
// tool failures, and unexpected I/O errors all return "no image".
func (r *Renderer) PDFFirstPage(ctx context.Context, pdfPath string, opts PDFOptions) mediatypes.Result {
	bin, ok := r.resolver.RasterizerPath()
	if !ok {
		return mediatypes.NoImage()
	}
	opts = opts.withDefaults()

	prefix := r.tempPath("")
	outPath := prefix + ".jpg"
	defer removeTemp(outPath)

	args := []string{
		"-jpeg",
		"-jpegopt", "quality=" + strconv.Itoa(opts.JPEGQuality),
		"-f", "1",
		"-l", "1",
		"-r", strconv.Itoa(opts.DPI),
		"-singlefile",
		pdfPath,
		prefix,
	}

	outcome := runTool(ctx, "pdftoppm", bin, args, opts.Timeout)
	switch outcome.status {
	case runCancelled:
		logging.Debug("pdftoppm cancelled for %s", pdfPath)
		return mediatypes.NoImage()
	case runTimeout:
		logging.Warn("pdftoppm timed out after %s for %s", opts.Timeout, pdfPath)
		return mediatypes.NoImage()
	case runFailed:
		logging.Warn("pdftoppm exit %d for %s: %s", outcome.exitCode, pdfPath, outcome.stderr)
		return mediatypes.NoImage()
	}

	if _, err := os.Stat(outPath); err != nil {
		logging.Warn("pdftoppm produced no output for %s: %s", pdfPath, outcome.stderr)
		return mediatypes.NoImage()
	}

	data, err := os.ReadFile(outPath)
	removeTemp(outPath)
	if err != nil {
		logging.Error("failed reading render output for %s: %v", pdfPath, err)
		return mediatypes.NoImage()
	}
	if len(data) == 0 {
		logging.Warn("pdftoppm wrote an empty file for %s", pdfPath)
		return mediatypes.NoImage()
	}

	metrics.ExtractedImageBytes.WithLabelValues(string(mediatypes.FormatJPEG)).Observe(float64(len(data)))
	return mediatypes.Image(data, mediatypes.FormatJPEG)
}

// AudioArtwork stream-copies the embedded artwork out of the audio container
// at audioPath and sniffs the resulting bytes. The copy preserves the
// original stream exactly, so the container's codec tag cannot lie its way
// into the result: bytes that do not sniff as a real image are rejected.
func (r *Renderer) AudioArtwork(ctx context.Context, audioPath string, timeout time.Duration) mediatypes.Result {
	bin, ok := r.resolver.TranscoderPath()
	if !ok {
		return mediatypes.NoImage()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	// Generic extension: the true format is unknown until sniffed.
	outPath := r.tempPath(".art")
	defer removeTemp(outPath)

	args := []string{
		"-loglevel", "error",
		"-y",
		"-i", audioPath,
		"-an",
		"-c:v", "copy",
		"-f", "image2",
		outPath,
	}

	outcome := runTool(ctx, "ffmpeg", bin, args, timeout)
	switch outcome.status {
	case runCancelled:
		logging.Debug("ffmpeg cancelled for %s", audioPath)
		return mediatypes.NoImage()
	case runTimeout:
		logging.Warn("ffmpeg timed out after %s for %s", timeout, audioPath)
		return mediatypes.NoImage()
	case runFailed:
		logging.Warn("ffmpeg exit %d for %s: %s", outcome.exitCode, audioPath, outcome.stderr)
		return mediatypes.NoImage()
	}

	data, err := os.ReadFile(outPath)
	removeTemp(outPath)
	if err != nil {
		logging.Error("failed reading artwork output for %s: %v", audioPath, err)
		return mediatypes.NoImage()
	}
	if len(data) < minArtworkBytes {
		logging.Debug("artwork from %s too small (%d bytes), discarding", audioPath, len(data))
		return mediatypes.NoImage()
	}

	format, ok := sniff.Detect(data)
	if !ok {
		logging.Warn("artwork from %s is not a recognized image format", audioPath)
		return mediatypes.NoImage()
	}

	metrics.ExtractedImageBytes.WithLabelValues(string(format)).Observe(float64(len(data)))
	return mediatypes.Image(data, format)
}

// tempPath returns a fresh uuid-partitioned path in the scratch directory.
// Concurrent invocations never collide because each call mints its own token.
func (r *Renderer) tempPath(ext string) string {
	return filepath.Join(r.scratchDir, "bookcover-"+uuid.NewString()+ext)
}

// removeTemp deletes a temp artifact if present. Cleanup failures are logged
// and never escalated.
func removeTemp(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logging.Warn("failed to remove temp file %s: %v", path, err)
	}
}

type runStatus int

const (
	runOK runStatus = iota
	runFailed
	runTimeout
	runCancelled
)

// runOutcome describes how a tool invocation ended.
type runOutcome struct {
	status   runStatus
	exitCode int
	stderr   string
}

// runTool runs bin with args under a timeout layered over ctx; whichever
// fires first kills the entire process group so descendants cannot linger.
// The distinction between caller cancellation and timeout is preserved in the
// outcome: cancellation is the caller withdrawing interest, not a failure.
func runTool(ctx context.Context, tool, bin string, args []string, timeout time.Duration) runOutcome {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, bin, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	// Own process group so the kill reaches children the tool spawned.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = killGrace

	logging.Debug("running %s %v", bin, args)

	if err := cmd.Start(); err != nil {
		metrics.SubprocessRunsTotal.WithLabelValues(tool, "failed").Inc()
		return runOutcome{status: runFailed, exitCode: -1, stderr: truncate(err.Error(), stderrLimit)}
	}

	err := cmd.Wait()
	if err != nil {
		switch {
		case ctx.Err() != nil:
			metrics.SubprocessRunsTotal.WithLabelValues(tool, "cancelled").Inc()
			return runOutcome{status: runCancelled}
		case runCtx.Err() != nil:
			metrics.SubprocessRunsTotal.WithLabelValues(tool, "timeout").Inc()
			metrics.SubprocessTimeoutsTotal.WithLabelValues(tool).Inc()
			return runOutcome{status: runTimeout}
		}
		exitCode := -1
		if cmd.ProcessState != nil {
			exitCode = cmd.ProcessState.ExitCode()
		}
		metrics.SubprocessRunsTotal.WithLabelValues(tool, "failed").Inc()
		return runOutcome{
			status:   runFailed,
			exitCode: exitCode,
			stderr:   truncate(stderr.String(), stderrLimit),
		}
	}

	metrics.SubprocessRunsTotal.WithLabelValues(tool, "ok").Inc()
	return runOutcome{status: runOK, stderr: truncate(stderr.String(), stderrLimit)}
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
