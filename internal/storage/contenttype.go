package storage

import "github.com/gabriel-vasile/mimetype"

const (
	ContentTypeWebP = "image/webp"
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
)

// DetectContentType inspects the leading signature of data. Only WebP, JPEG
// and PNG are recognised; everything else is treated as PNG.
func DetectContentType(data []byte) string {
	m := mimetype.Detect(data)
	switch {
	case m.Is(ContentTypeWebP):
		return ContentTypeWebP
	case m.Is(ContentTypeJPEG):
		return ContentTypeJPEG
	default:
		return ContentTypePNG
	}
}

// IsSupportedImage reports whether data carries a WebP, JPEG or PNG signature.
// Downloads that fail this check (HTML error pages, SVG, GIF) must not be stored.
func IsSupportedImage(data []byte) bool {
	m := mimetype.Detect(data)
	return m.Is(ContentTypeWebP) || m.Is(ContentTypeJPEG) || m.Is(ContentTypePNG)
}

// ExtensionFor maps a content type to the file extension used in object paths
func ExtensionFor(contentType string) string {
	switch contentType {
	case ContentTypeWebP:
		return "webp"
	case ContentTypeJPEG, "image/jpg":
		return "jpg"
	default:
		return "png"
	}
}
