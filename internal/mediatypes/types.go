package mediatypes

// MediaKind identifies the kind of library item a cover is requested for.
type MediaKind string

const (
	// KindBook represents a book item (PDF or EPUB).
	KindBook MediaKind = "book"
	// KindAudioBook represents an audiobook item (single file or directory).
	KindAudioBook MediaKind = "audiobook"
)

// ImageFormat identifies the format of extracted cover image bytes.
type ImageFormat string

const (
	// FormatJPEG is a JPEG image.
	FormatJPEG ImageFormat = "jpeg"
	// FormatPNG is a PNG image.
	FormatPNG ImageFormat = "png"
	// FormatGIF is a GIF image.
	FormatGIF ImageFormat = "gif"
	// FormatWEBP is a WebP image.
	FormatWEBP ImageFormat = "webp"
	// FormatBMP is a BMP image.
	FormatBMP ImageFormat = "bmp"
)

// Ext returns the conventional file extension for the format, with leading dot.
func (f ImageFormat) Ext() string {
	switch f {
	case FormatPNG:
		return ".png"
	case FormatGIF:
		return ".gif"
	case FormatWEBP:
		return ".webp"
	case FormatBMP:
		return ".bmp"
	default:
		return ".jpg"
	}
}

// MimeType returns the MIME type for the format.
func (f ImageFormat) MimeType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatGIF:
		return "image/gif"
	case FormatWEBP:
		return "image/webp"
	case FormatBMP:
		return "image/bmp"
	default:
		return "image/jpeg"
	}
}

// Request describes one cover extraction attempt. Path may reference a regular
// file or, for audiobooks, a directory of audio files.
type Request struct {
	Path string
	Kind MediaKind
}

// Result is the single outcome shape of every extraction strategy. The zero
// value means "no image". When HasImage is true, Data and Format are both set.
type Result struct {
	HasImage bool
	Data     []byte
	Format   ImageFormat
}

// NoImage returns the empty "no image" result.
func NoImage() Result {
	return Result{}
}

// Image returns a populated result carrying data in the given format.
func Image(data []byte, format ImageFormat) Result {
	return Result{HasImage: true, Data: data, Format: format}
}

// ImageExtensions maps file extensions to whether they are recognized image
// formats inside an archive.
var ImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
}

// AudioExtensions maps file extensions to whether they are recognized
// audiobook audio formats.
var AudioExtensions = map[string]bool{
	".mp3":  true,
	".m4a":  true,
	".m4b":  true,
	".flac": true,
	".ogg":  true,
	".opus": true,
	".wma":  true,
	".aac":  true,
	".wav":  true,
}

// FormatForExtension maps an archive entry extension (lowercase, with dot) to
// the format tag used for the extracted bytes. Extensions without a direct
// mapping (jpg, jpeg, tiff, tif) default to JPEG.
func FormatForExtension(ext string) ImageFormat {
	switch ext {
	case ".png":
		return FormatPNG
	case ".gif":
		return FormatGIF
	case ".webp":
		return FormatWEBP
	case ".bmp":
		return FormatBMP
	default:
		return FormatJPEG
	}
}
