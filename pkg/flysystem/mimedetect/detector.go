package mimedetect

import (
	"io"
	"mime"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// SampleSize is how many leading bytes content detection looks at.
const SampleSize = 3072

// DefaultType is reported when neither content nor extension is conclusive.
const DefaultType = "text/plain"

// Detector guesses a MIME type from a path and the leading bytes of its content.
type Detector interface {
	Detect(path string, sample []byte) string
}

// inconclusive content results fall through to extension lookup
var inconclusive = map[string]bool{
	"":                         true,
	"application/octet-stream": true,
	"application/x-empty":      true,
	"inode/x-empty":            true,
	"text/plain":               true,
}

// common extensions, checked before the system mime.types table so results
// do not depend on the host
var extensions = map[string]string{
	".txt":  "text/plain",
	".md":   "text/markdown",
	".csv":  "text/csv",
	".html": "text/html",
	".htm":  "text/html",
	".css":  "text/css",
	".js":   "text/javascript",
	".json": "application/json",
	".xml":  "application/xml",
	".yaml": "application/yaml",
	".yml":  "application/yaml",
	".toml": "application/toml",
	".pdf":  "application/pdf",
	".zip":  "application/zip",
	".gz":   "application/gzip",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".webp": "image/webp",
}

// ContentDetector sniffs content with mimetype and falls back to the
// extension when the content is empty or only says "text" or "binary".
type ContentDetector struct{}

// New returns the default Detector
func New() *ContentDetector {
	return &ContentDetector{}
}

// Detect implements Detector
func (ContentDetector) Detect(p string, sample []byte) string {
	byContent := ""
	if len(sample) > 0 {
		byContent = essence(mimetype.Detect(sample).String())
	}
	if !inconclusive[byContent] {
		return byContent
	}
	if byExt := ByExtension(p); byExt != "" {
		return byExt
	}
	if byContent != "" {
		return byContent
	}
	return DefaultType
}

// ByExtension looks the extension of p up, returning "" when unknown.
func ByExtension(p string) string {
	ext := strings.ToLower(path.Ext(p))
	if ext == "" {
		return ""
	}
	if t, ok := extensions[ext]; ok {
		return t
	}
	return essence(mime.TypeByExtension(ext))
}

// ReadSample reads up to SampleSize bytes from r.
func ReadSample(r io.Reader) ([]byte, error) {
	sample, err := io.ReadAll(io.LimitReader(r, SampleSize))
	if err != nil {
		return nil, err
	}
	return sample, nil
}

// essence drops media type parameters such as "; charset=utf-8".
func essence(mediaType string) string {
	base, _, _ := strings.Cut(mediaType, ";")
	return strings.TrimSpace(strings.ToLower(base))
}
