// Package storage provides the blob backends behind the media upload
// pipeline: the local filesystem under a public static root, and any
// S3-compatible object store.
package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	mediaapp "github.com/portfolio/backend/internal/application/media"
	"go.uber.org/zap"
)

// Ensure LocalBlobStorage implements BlobStorage
var _ mediaapp.BlobStorage = (*LocalBlobStorage)(nil)

// LocalBlobStorage writes blobs under a directory that is served statically.
// The returned reference is the public URL path of the blob. Keys are unique
// by construction, so writes never clobber an existing blob and no locking is
// needed.
type LocalBlobStorage struct {
	dir        string
	publicPath string
	logger     *zap.Logger
}

// NewLocalBlobStorage creates the storage root if needed and returns a
// backend writing into it. publicPath is the URL prefix the directory is
// served under (e.g. "/uploads").
func NewLocalBlobStorage(dir, publicPath string, logger *zap.Logger) (*LocalBlobStorage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media directory %s: %w", dir, err)
	}
	return &LocalBlobStorage{dir: dir, publicPath: publicPath, logger: logger}, nil
}

// Dir returns the directory blobs are written to.
func (s *LocalBlobStorage) Dir() string {
	return s.dir
}

// Put implements mediaapp.BlobStorage
func (s *LocalBlobStorage) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	target := filepath.Join(s.dir, filepath.Base(key))
	if err := os.WriteFile(target, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write blob %s: %w", target, err)
	}

	s.logger.Debug("wrote local blob", zap.String("path", target), zap.Int("bytes", len(data)))
	return path.Join(s.publicPath, filepath.Base(key)), nil
}
