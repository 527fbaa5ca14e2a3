// Package archive locates the best cover image inside a ZIP-based document
// such as an EPUB. The archive is treated as a plain container; no manifest
// or package metadata is parsed. Selection runs a three-tier heuristic over
// entry names and sizes: explicit cover naming is the strongest signal, a
// "cover" path substring catches renamed-but-organized files, and raw size is
// the last-resort proxy for "full cover, not a thumbnail".
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"

	"book-cover/internal/logging"
	"book-cover/internal/mediatypes"
)

// sizeTierMinBytes is the floor for the size-based fallback tier. Entries at
// or below this size are assumed to be icons or publisher logos.
const sizeTierMinBytes = 5000

// maxEntryBytes bounds the decompressed size of a single entry, guarding
// against zip bombs in user-supplied files.
const maxEntryBytes int64 = 256 * 1024 * 1024

// coverNames are base names (without extension, lowercase) that explicitly
// mark an entry as the cover.
var coverNames = map[string]bool{
	"cover":       true,
	"portada":     true,
	"front":       true,
	"frontcover":  true,
	"front_cover": true,
	"book_cover":  true,
}

// candidate is one image-like archive entry under consideration.
type candidate struct {
	file *zip.File
	size int64
	path string // full in-archive path, lowercase
	base string // base name without extension, lowercase
	ext  string // extension with dot, lowercase
}

// LocateCover scans the archive at archivePath and returns the best cover
// candidate's bytes, or "no image" when the archive is unreadable, contains
// no usable image entries, or the chosen entry is empty. Corrupt archives are
// an expected condition and never surface as an error.
func LocateCover(archivePath string) mediatypes.Result {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		logging.Warn("cannot open archive %s: %v", archivePath, err)
		return mediatypes.NoImage()
	}
	defer func() {
		if err := zr.Close(); err != nil {
			logging.Debug("closing archive %s: %v", archivePath, err)
		}
	}()

	candidates := collectCandidates(&zr.Reader)
	if len(candidates) == 0 {
		logging.Debug("no image entries in %s", archivePath)
		return mediatypes.NoImage()
	}

	chosen := selectCandidate(candidates)
	if chosen == nil {
		logging.Debug("no image entry above %d bytes in %s", sizeTierMinBytes, archivePath)
		return mediatypes.NoImage()
	}

	data, err := readEntry(chosen.file)
	if err != nil {
		logging.Warn("cannot read %s from %s: %v", chosen.file.Name, archivePath, err)
		return mediatypes.NoImage()
	}
	if len(data) == 0 {
		logging.Debug("entry %s in %s is empty", chosen.file.Name, archivePath)
		return mediatypes.NoImage()
	}

	logging.Debug("selected %s (%d bytes) from %s", chosen.file.Name, len(data), archivePath)
	return mediatypes.Image(data, mediatypes.FormatForExtension(chosen.ext))
}

// collectCandidates filters the entry list to image-like regular files.
func collectCandidates(zr *zip.Reader) []candidate {
	var out []candidate
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		lower := strings.ToLower(f.Name)
		ext := path.Ext(lower)
		if !mediatypes.ImageExtensions[ext] {
			continue
		}
		base := strings.TrimSuffix(path.Base(lower), ext)
		out = append(out, candidate{
			file: f,
			size: int64(f.UncompressedSize64),
			path: lower,
			base: base,
			ext:  ext,
		})
	}
	return out
}

// selectCandidate applies the three-tier fallback. Each tier is consulted
// only when the previous one produced nothing.
func selectCandidate(candidates []candidate) *candidate {
	// Tier 1: exact cover-indicator base name, largest wins among matches.
	if c := largestWhere(candidates, func(c *candidate) bool {
		return coverNames[c.base]
	}); c != nil {
		return c
	}

	// Tier 2: "cover" anywhere in the in-archive path.
	if c := largestWhere(candidates, func(c *candidate) bool {
		return strings.Contains(c.path, "cover")
	}); c != nil {
		return c
	}

	// Tier 3: largest entry strictly above the icon/logo threshold.
	return largestWhere(candidates, func(c *candidate) bool {
		return c.size > sizeTierMinBytes
	})
}

// largestWhere returns the largest-by-size candidate satisfying pred, or nil.
func largestWhere(candidates []candidate, pred func(*candidate) bool) *candidate {
	var best *candidate
	for i := range candidates {
		c := &candidates[i]
		if !pred(c) {
			continue
		}
		if best == nil || c.size > best.size {
			best = c
		}
	}
	return best
}

// readEntry reads the full decompressed content of a ZIP entry, enforcing
// maxEntryBytes even when the declared size lies.
func readEntry(f *zip.File) ([]byte, error) {
	if f.UncompressedSize64 > uint64(maxEntryBytes) {
		return nil, fmt.Errorf("entry %s too large: %d bytes", f.Name, f.UncompressedSize64)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxEntryBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read entry %s: %w", f.Name, err)
	}
	if int64(len(data)) > maxEntryBytes {
		return nil, fmt.Errorf("entry %s exceeds decompression limit", f.Name)
	}
	return data, nil
}
