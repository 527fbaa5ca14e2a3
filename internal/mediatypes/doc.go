// Package mediatypes provides shared type definitions and utilities for cover
// extraction across the book-cover application.
//
// This package exists as a dependency-free foundation that can be imported by
// other packages without creating import cycles. It contains primitive types,
// constants, and pure utility functions with no external dependencies beyond
// the standard library.
//
// # Media Kinds
//
// The package defines a MediaKind enum for the two library item kinds the
// extractor handles:
//
//	mediatypes.KindBook      // PDF and EPUB books
//	mediatypes.KindAudioBook // single audio files or multi-file directories
//
// # Image Formats
//
// ImageFormat identifies the format of an extracted cover image:
//
//	mediatypes.FormatJPEG
//	mediatypes.FormatPNG
//	mediatypes.FormatGIF
//	mediatypes.FormatWEBP
//	mediatypes.FormatBMP
//
// # Results
//
// Every extraction strategy returns a Result. A Result is either "no image"
// (the zero value) or carries the image bytes plus their format. It is never
// partially populated:
//
//	res := mediatypes.Image(data, mediatypes.FormatJPEG)
//	if res.HasImage {
//	    // res.Data and res.Format are both set
//	}
//
// # Extension Detection
//
// The extension maps (ImageExtensions, AudioExtensions) can be used directly
// for classification:
//
//	ext := strings.ToLower(filepath.Ext(filename))
//	if mediatypes.AudioExtensions[ext] {
//	    // File is a recognized audio format
//	}
package mediatypes
