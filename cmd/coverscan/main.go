// Command coverscan walks a library directory and extracts a cover image for
// every book and audiobook it finds, writing the result as a sidecar file
// next to the source. Useful for pre-warming a library before the media
// server first scans it. Each file is one independent extraction request,
// processed by an I/O-sized worker pool.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"book-cover/internal/cover"
	"book-cover/internal/logging"
	"book-cover/internal/mediatypes"
	"book-cover/internal/render"
	"book-cover/internal/startup"
	"book-cover/internal/tools"
	"book-cover/internal/workers"
)

func main() {
	libraryFlag := flag.String("library", "", "library directory to scan (default: LIBRARY_DIR)")
	overwrite := flag.Bool("overwrite", false, "replace existing sidecar covers")
	flag.Parse()

	config, err := startup.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	library := config.LibraryDir
	if *libraryFlag != "" {
		library = *libraryFlag
	}
	if info, err := os.Stat(library); err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "Error: library directory %s is not accessible\n", library)
		os.Exit(1)
	}

	// Create a context that cancels on interrupt signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted, shutting down...")
		cancel()
	}()

	extractor := cover.New(render.New(tools.New(), config.ScratchDir), config.RenderOptions())

	requests := collectRequests(library)
	logging.Info("scanning %s: %d items", library, len(requests))

	extracted, skipped := runPool(ctx, extractor, requests, *overwrite)
	logging.Info("done: %d covers extracted, %d items without covers", extracted, skipped)
}

// collectRequests walks the library and builds one request per book file or
// audiobook directory. A directory containing audio files is one audiobook;
// its individual audio files are not requested separately.
func collectRequests(library string) []mediatypes.Request {
	var requests []mediatypes.Request

	err := filepath.WalkDir(library, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			logging.Warn("skipping %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			if path != library && dirHasAudio(path) {
				requests = append(requests, mediatypes.Request{Path: path, Kind: mediatypes.KindAudioBook})
				return filepath.SkipDir
			}
			return nil
		}

		switch ext := strings.ToLower(filepath.Ext(path)); {
		case ext == ".pdf" || ext == ".epub":
			requests = append(requests, mediatypes.Request{Path: path, Kind: mediatypes.KindBook})
		case mediatypes.AudioExtensions[ext]:
			requests = append(requests, mediatypes.Request{Path: path, Kind: mediatypes.KindAudioBook})
		}
		return nil
	})
	if err != nil {
		logging.Warn("walk ended early: %v", err)
	}
	return requests
}

// dirHasAudio reports whether dir directly contains at least one audio file.
func dirHasAudio(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if mediatypes.AudioExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			return true
		}
	}
	return false
}

// runPool processes requests with an I/O-sized worker pool and returns the
// extracted and no-cover counts.
func runPool(ctx context.Context, extractor *cover.Extractor, requests []mediatypes.Request, overwrite bool) (int, int) {
	workerCount := workers.ForIO(16)
	logging.Debug("using %d workers", workerCount)

	jobs := make(chan mediatypes.Request)
	var mu sync.Mutex
	extracted, skipped := 0, 0

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for req := range jobs {
				ok := processRequest(ctx, extractor, req, overwrite)
				mu.Lock()
				if ok {
					extracted++
				} else {
					skipped++
				}
				mu.Unlock()
			}
		}()
	}

	for _, req := range requests {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return extracted, skipped
		case jobs <- req:
		}
	}
	close(jobs)
	wg.Wait()
	return extracted, skipped
}

// processRequest extracts one cover and writes it as a sidecar file.
func processRequest(ctx context.Context, extractor *cover.Extractor, req mediatypes.Request, overwrite bool) bool {
	sidecar := sidecarBase(req.Path)

	if !overwrite {
		for _, ext := range []string{".jpg", ".png", ".gif", ".webp", ".bmp"} {
			if _, err := os.Stat(sidecar + ext); err == nil {
				logging.Debug("sidecar exists for %s, skipping", req.Path)
				return false
			}
		}
	}

	res := extractor.Extract(ctx, req)
	if !res.HasImage {
		return false
	}

	out := sidecar + res.Format.Ext()
	if err := os.WriteFile(out, res.Data, 0644); err != nil {
		logging.Error("failed to write %s: %v", out, err)
		return false
	}
	logging.Info("wrote %s (%d bytes)", out, len(res.Data))
	return true
}

// sidecarBase returns the cover path prefix for a source path. Audiobook
// directories get the cover inside the directory; files get it alongside,
// named after the file.
func sidecarBase(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, "cover")
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".cover"
}
