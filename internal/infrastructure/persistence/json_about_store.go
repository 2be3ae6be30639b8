package persistence

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// JSONAboutStore keeps the about singleton in its own JSON file, independent
// of the project store so mutations on one never contend with the other.
type JSONAboutStore struct {
	path   string
	mu     sync.RWMutex
	logger *zap.Logger
}

var _ content.AboutRepository = (*JSONAboutStore)(nil)

// NewJSONAboutStore creates a store backed by dataDir/about.json.
func NewJSONAboutStore(dataDir string, logger *zap.Logger) *JSONAboutStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JSONAboutStore{
		path:   filepath.Join(dataDir, "about.json"),
		logger: logger,
	}
}

// Get implements content.AboutRepository. A missing file yields the default
// record without writing it; repeated reads stay idempotent.
func (s *JSONAboutStore) Get(ctx context.Context) (content.AboutContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var about content.AboutContent
	ok, err := readJSONFile(s.path, &about)
	if err != nil {
		s.logger.Error("failed to read about store", zap.String("path", s.path), zap.Error(err))
		return content.AboutContent{}, shared.ErrStoreWrite
	}
	if !ok {
		return content.DefaultAbout(), nil
	}
	return about, nil
}

// Put implements content.AboutRepository
func (s *JSONAboutStore) Put(ctx context.Context, about content.AboutContent) (content.AboutContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeJSONFileAtomic(s.path, about); err != nil {
		s.logger.Error("failed to persist about store", zap.String("path", s.path), zap.Error(err))
		return content.AboutContent{}, shared.ErrStoreWrite
	}
	return about, nil
}
