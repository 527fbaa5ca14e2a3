// Package tools probes for the external binaries the extractor depends on:
// the pdftoppm rasterizer (poppler-utils) and the ffmpeg transcoder.
//
// Probes are lazy and memoized: the first query for a tool launches one short
// probe invocation, and the outcome is cached for the remainder of the process
// lifetime. A tool installed or removed after the first query is not noticed;
// that staleness is accepted. This is the only process-wide mutable state in
// the application.
//
// Availability means the binary could be started at all. Probe exit codes are
// ignored on purpose: version flags differ between tool builds and a non-zero
// exit from a binary that runs is still a usable binary.
package tools
