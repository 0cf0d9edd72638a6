package server

import (
	"strings"

	"github.com/TiagoWFFrank/landing-page-siamesa/internal/resolve"
)

const fallbackContentType = "application/octet-stream"

var defaultContentTypes = map[string]string{
	".html":  "text/html; charset=UTF-8",
	".htm":   "text/html; charset=UTF-8",
	".css":   "text/css; charset=UTF-8",
	".js":    "application/javascript; charset=UTF-8",
	".mjs":   "application/javascript; charset=UTF-8",
	".json":  "application/json; charset=UTF-8",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".svg":   "image/svg+xml",
	".ico":   "image/x-icon",
	".webp":  "image/webp",
	".txt":   "text/plain; charset=UTF-8",
	".map":   "application/json",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
	".otf":   "font/otf",
	".mp4":   "video/mp4",
	".webm":  "video/webm",
	".wav":   "audio/wav",
	".mp3":   "audio/mpeg",
}

// newContentTypes merges extra over the built-in table. Keys are matched
// case-insensitively and may be given with or without the leading dot.
func newContentTypes(extra map[string]string) map[string]string {
	types := make(map[string]string, len(defaultContentTypes)+len(extra))
	for ext, contentType := range defaultContentTypes {
		types[ext] = contentType
	}

	for ext, contentType := range extra {
		ext = strings.ToLower(strings.TrimSpace(ext))
		contentType = strings.TrimSpace(contentType)
		if ext == "" || contentType == "" {
			continue
		}

		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}

		types[ext] = contentType
	}

	return types
}

func (s *Server) contentType(name string) string {
	ext := strings.ToLower(resolve.Extension(name))
	if contentType, ok := s.contentTypes[ext]; ok {
		return contentType
	}

	return fallbackContentType
}
