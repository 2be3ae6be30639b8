// Package media classifies uploaded blobs and names them collision-free.
package media

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/portfolio/backend/internal/domain/shared"
)

// Kind is the coarse media classification attached to a project.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// StoredMedia is the result of a completed upload: a stable reference the
// public projection can resolve without the adapter, plus the kind.
type StoredMedia struct {
	URL  string `json:"url"`
	Kind Kind   `json:"mediaType"`
}

// ClassifyKind maps a declared MIME type onto a Kind. Anything outside
// image/* and video/* is rejected before any byte is written.
func ClassifyKind(contentType string) (Kind, error) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case strings.HasPrefix(ct, "video/"):
		return KindVideo, nil
	case strings.HasPrefix(ct, "image/"):
		return KindImage, nil
	default:
		return "", shared.NewDomainError("UNSUPPORTED_MEDIA",
			fmt.Sprintf("Content type '%s' is not allowed; only image/* and video/* uploads are accepted", contentType))
	}
}

// NewBlobKey builds a blob name that cannot collide even when two uploads
// share an original filename: sanitized base + upload instant in Unix millis
// + random suffix, keeping the original extension.
func NewBlobKey(filename string, now time.Time) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filepath.Base(filename), ext)
	return fmt.Sprintf("%s-%d-%s%s", sanitizeBase(base), now.UnixMilli(), uuid.New().String()[:8], ext)
}

// sanitizeBase keeps blob names portable across filesystems and URL paths.
func sanitizeBase(base string) string {
	if base == "" {
		return "upload"
	}
	var b strings.Builder
	b.Grow(len(base))
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
