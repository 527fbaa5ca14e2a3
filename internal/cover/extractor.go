package cover

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"book-cover/internal/archive"
	"book-cover/internal/logging"
	"book-cover/internal/mediatypes"
	"book-cover/internal/metrics"
	"book-cover/internal/render"
)

// Renderer is the subset of the render adapter the dispatcher needs.
type Renderer interface {
	PDFFirstPage(ctx context.Context, pdfPath string, opts render.PDFOptions) mediatypes.Result
	AudioArtwork(ctx context.Context, audioPath string, timeout time.Duration) mediatypes.Result
}

// Extractor routes extraction requests to the per-format strategies.
type Extractor struct {
	renderer Renderer
	locate   func(string) mediatypes.Result
	pdfOpts  render.PDFOptions
	timeout  time.Duration
}

// New returns an Extractor using the given renderer and render options. The
// options' timeout also bounds audio artwork extraction.
func New(renderer Renderer, opts render.PDFOptions) *Extractor {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = render.DefaultTimeout
	}
	return &Extractor{
		renderer: renderer,
		locate:   archive.LocateCover,
		pdfOpts:  opts,
		timeout:  timeout,
	}
}

// Extract produces at most one cover image for the request. Each call is
// independent and stateless; a failed attempt is final for this request.
func (e *Extractor) Extract(ctx context.Context, req mediatypes.Request) mediatypes.Result {
	start := time.Now()

	strategy, res := e.dispatch(ctx, req)

	outcome := "no_image"
	switch {
	case res.HasImage:
		outcome = "image"
	case ctx.Err() != nil:
		outcome = "cancelled"
	}
	metrics.ExtractionsTotal.WithLabelValues(strategy, outcome).Inc()
	if strategy != "none" {
		metrics.ExtractionDuration.WithLabelValues(strategy).Observe(time.Since(start).Seconds())
	}

	logging.Debug("extract %s (%s): strategy=%s outcome=%s in %s",
		req.Path, req.Kind, strategy, outcome, time.Since(start))
	return res
}

// dispatch picks and runs the strategy for the request path.
func (e *Extractor) dispatch(ctx context.Context, req mediatypes.Request) (string, mediatypes.Result) {
	if info, err := os.Stat(req.Path); err == nil && info.IsDir() {
		return "audio", e.extractFromDirectory(ctx, req.Path)
	}

	switch ext := strings.ToLower(filepath.Ext(req.Path)); {
	case ext == ".epub":
		return "epub", e.locate(req.Path)
	case ext == ".pdf":
		return "pdf", e.renderer.PDFFirstPage(ctx, req.Path, e.pdfOpts)
	case mediatypes.AudioExtensions[ext]:
		return "audio", e.renderer.AudioArtwork(ctx, req.Path, e.timeout)
	}

	return "none", mediatypes.NoImage()
}

// extractFromDirectory handles the multi-file audiobook case: artwork is
// pulled from the first audio file in case-insensitive name order. Listing
// failures are an expected condition and degrade to "no image".
func (e *Extractor) extractFromDirectory(ctx context.Context, dir string) mediatypes.Result {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logging.Warn("cannot list audiobook directory %s: %v", dir, err)
		return mediatypes.NoImage()
	}

	var audio []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if mediatypes.AudioExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			audio = append(audio, entry.Name())
		}
	}
	if len(audio) == 0 {
		logging.Debug("no audio files in %s", dir)
		return mediatypes.NoImage()
	}

	sort.Slice(audio, func(i, j int) bool {
		return strings.ToLower(audio[i]) < strings.ToLower(audio[j])
	})

	return e.renderer.AudioArtwork(ctx, filepath.Join(dir, audio[0]), e.timeout)
}
