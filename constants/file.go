package constants

import "strings"

// Format is the coarse source-type tag used to route extraction.
type Format string

const (
	PDF   Format = "PDF"
	IMAGE Format = "IMAGE"
	TEXT  Format = "TEXT"
	OTHER Format = "OTHER"
)

// AllowedExtensions holds the default allowed file extensions for document ingestion.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"tif":  {},
	"tiff": {},
	"txt":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a normalized file extension to a Format.
// Unknown extensions map to OTHER rather than failing: extraction degrades
// to a placeholder for them.
func MapExtToFormat(ext string) Format {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "jpg", "jpeg", "png", "tif", "tiff", "bmp", "gif", "webp":
		return IMAGE
	case "txt", "text", "md", "log":
		return TEXT
	default:
		return OTHER
	}
}

// MapMediaTypeToFormat maps a declared media type (MIME-ish tag from an
// upload or file picker) to a Format.
func MapMediaTypeToFormat(mediaType string) Format {
	mt := strings.ToLower(strings.TrimSpace(mediaType))
	switch {
	case mt == "application/pdf" || mt == "pdf":
		return PDF
	case strings.HasPrefix(mt, "image/"):
		return IMAGE
	case mt == "text/plain":
		return TEXT
	default:
		return OTHER
	}
}

// MediaTypeForExt returns a declared media type for a normalized extension,
// used when ingesting from the filesystem where no picker supplies one.
func MediaTypeForExt(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return "application/pdf"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "tif", "tiff":
		return "image/tiff"
	case "txt", "text", "md", "log":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
