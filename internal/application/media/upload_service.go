// Package media implements the upload pipeline: size gate, kind
// classification, and hand-off to a blob backend.
package media

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/portfolio/backend/internal/domain/media"
	"github.com/portfolio/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// BlobStorage is the contract a blob backend must satisfy. Implementations
// live in the infrastructure layer (local filesystem, S3-compatible host).
type BlobStorage interface {
	// Put stores one uniquely named blob and returns the stable reference the
	// public projection resolves later without the backend.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// DefaultMaxUploadBytes caps uploads when no limit is configured.
const DefaultMaxUploadBytes int64 = 100 << 20 // 100MB

// UploadService validates and stores media uploads.
type UploadService struct {
	storage  BlobStorage
	maxBytes int64
	logger   *zap.Logger
	now      func() time.Time
}

// UploadServiceOption is a functional option for configuring UploadService
type UploadServiceOption func(*UploadService)

// WithMaxUploadBytes overrides the maximum accepted payload size
func WithMaxUploadBytes(n int64) UploadServiceOption {
	return func(s *UploadService) {
		if n > 0 {
			s.maxBytes = n
		}
	}
}

// WithLogger sets a custom logger for UploadService
func WithLogger(logger *zap.Logger) UploadServiceOption {
	return func(s *UploadService) {
		s.logger = logger
	}
}

// WithClock overrides the clock used for blob key timestamps
func WithClock(now func() time.Time) UploadServiceOption {
	return func(s *UploadService) {
		s.now = now
	}
}

// NewUploadService creates a new UploadService
func NewUploadService(storage BlobStorage, opts ...UploadServiceOption) *UploadService {
	s := &UploadService{
		storage:  storage,
		maxBytes: DefaultMaxUploadBytes,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxBytes returns the configured payload cap.
func (s *UploadService) MaxBytes() int64 {
	return s.maxBytes
}

// Store validates the declared size and MIME type, then streams the payload
// into the blob backend under a collision-free key. Size and type are checked
// before a single byte is written; backend failures surface as an upload
// error so callers can tell "your file was rejected" from "the system
// failed".
func (s *UploadService) Store(ctx context.Context, filename, contentType string, size int64, r io.Reader) (*media.StoredMedia, error) {
	if size > s.maxBytes {
		return nil, shared.NewDomainError("PAYLOAD_TOO_LARGE",
			fmt.Sprintf("Upload of %d bytes exceeds the %d byte limit", size, s.maxBytes))
	}

	kind, err := media.ClassifyKind(contentType)
	if err != nil {
		return nil, err
	}

	// Declared size can lie; the limited read is the backstop.
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		s.logger.Error("failed to read upload payload", zap.String("filename", filename), zap.Error(err))
		return nil, shared.ErrUpload
	}
	if int64(len(data)) > s.maxBytes {
		return nil, shared.NewDomainError("PAYLOAD_TOO_LARGE",
			fmt.Sprintf("Upload exceeds the %d byte limit", s.maxBytes))
	}

	key := media.NewBlobKey(filename, s.now())
	url, err := s.storage.Put(ctx, key, data, contentType)
	if err != nil {
		s.logger.Error("blob backend rejected upload",
			zap.String("key", key),
			zap.String("content_type", contentType),
			zap.Int("bytes", len(data)),
			zap.Error(err),
		)
		return nil, shared.ErrUpload
	}

	s.logger.Info("stored media blob",
		zap.String("key", key),
		zap.String("kind", string(kind)),
		zap.Int("bytes", len(data)),
	)

	return &media.StoredMedia{URL: url, Kind: kind}, nil
}
