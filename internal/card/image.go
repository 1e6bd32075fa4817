package card

import "strings"

// DefaultUploadPrefix marks image paths served by the backend's upload store.
const DefaultUploadPrefix = "/uploads"

// ImageResolver rewrites relative upload paths against the backend base URL.
type ImageResolver struct {
	BaseURL string
	Prefix  string
}

// Resolve returns the image source for path. Paths beginning with the upload
// prefix become BaseURL+path; anything else is returned verbatim.
func (r ImageResolver) Resolve(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}

	prefix := r.Prefix
	if prefix == "" {
		prefix = DefaultUploadPrefix
	}
	if strings.HasPrefix(path, prefix) {
		return strings.TrimRight(r.BaseURL, "/") + path
	}
	return path
}
