package sniff

import (
	"testing"

	"book-cover/internal/mediatypes"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		format mediatypes.ImageFormat
		ok     bool
	}{
		{
			name:   "JPEG",
			data:   []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10},
			format: mediatypes.FormatJPEG,
			ok:     true,
		},
		{
			name:   "PNG",
			data:   []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A},
			format: mediatypes.FormatPNG,
			ok:     true,
		},
		{
			name:   "GIF",
			data:   []byte("GIF89a"),
			format: mediatypes.FormatGIF,
			ok:     true,
		},
		{
			name:   "WEBP",
			data:   []byte("RIFF\x24\x00\x00\x00WEBPVP8 "),
			format: mediatypes.FormatWEBP,
			ok:     true,
		},
		{
			name: "RIFF without WEBP marker",
			data: []byte("RIFF\x24\x00\x00\x00WAVEfmt "),
			ok:   false,
		},
		{
			name: "RIFF truncated before offset 8",
			data: []byte("RIFF"),
			ok:   false,
		},
		{
			name: "Empty",
			data: nil,
			ok:   false,
		},
		{
			name: "Too short",
			data: []byte{0xFF, 0xD8, 0xFF},
			ok:   false,
		},
		{
			name: "Unknown header",
			data: []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05},
			ok:   false,
		},
		{
			name: "BMP is not sniffed",
			data: []byte{0x42, 0x4D, 0x36, 0x00, 0x00, 0x00},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, ok := Detect(tt.data)

			if ok != tt.ok {
				t.Fatalf("Expected ok=%v, got %v", tt.ok, ok)
			}
			if ok && format != tt.format {
				t.Errorf("Expected format %s, got %s", tt.format, format)
			}
			if !ok && format != "" {
				t.Errorf("Expected empty format on miss, got %s", format)
			}
		})
	}
}
