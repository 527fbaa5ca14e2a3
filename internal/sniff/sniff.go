// Package sniff identifies image formats from leading content bytes,
// distrusting any declared extension or container tag. Audio containers in
// particular are known to mislabel embedded artwork codecs, so the bytes are
// the only authority on what was actually extracted.
package sniff

import "book-cover/internal/mediatypes"

// Detect inspects the leading bytes of data and reports the image format they
// describe. It is a pure function with no I/O. Inputs shorter than four bytes
// or matching no known signature report ok=false.
//
// Signatures are checked at their exact offsets; a "RIFF" header alone is not
// WebP unless the "WEBP" chunk marker is also present at offset 8.
func Detect(data []byte) (format mediatypes.ImageFormat, ok bool) {
	if len(data) < 4 {
		return "", false
	}

	switch {
	case data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return mediatypes.FormatJPEG, true

	case data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47:
		return mediatypes.FormatPNG, true

	case data[0] == 0x47 && data[1] == 0x49 && data[2] == 0x46:
		return mediatypes.FormatGIF, true

	case len(data) >= 12 &&
		data[0] == 'R' && data[1] == 'I' && data[2] == 'F' && data[3] == 'F' &&
		data[8] == 'W' && data[9] == 'E' && data[10] == 'B' && data[11] == 'P':
		return mediatypes.FormatWEBP, true
	}

	return "", false
}
