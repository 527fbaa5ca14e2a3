// Package cover is the top-level entry point for cover extraction. It
// classifies the request path by extension and directory-ness, routes to the
// matching strategy (archive search for EPUB, first-page render for PDF,
// artwork stream-copy for audio), and normalizes every outcome into the
// single two-shape result: image bytes plus format, or no image.
//
// The dispatcher never returns an error. Classification misses, unreadable
// directories, and strategy failures all degrade to "no image"; the detail is
// operator-visible through logs and metrics only. This is deliberate: the
// extractor is a best-effort fallback and must never break the surrounding
// media-library workflow.
package cover
