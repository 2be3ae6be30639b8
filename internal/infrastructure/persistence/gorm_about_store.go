package persistence

import (
	"context"
	"errors"
	"sync"

	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/shared"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const aboutRowID = 1

// GormAboutStore implements the about repository over a single-row table.
type GormAboutStore struct {
	db     *gorm.DB
	mu     sync.Mutex
	logger *zap.Logger
}

var _ content.AboutRepository = (*GormAboutStore)(nil)

// NewGormAboutStore creates a SQLite-backed about store.
func NewGormAboutStore(db *gorm.DB, logger *zap.Logger) *GormAboutStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormAboutStore{db: db, logger: logger}
}

// Get implements content.AboutRepository. A missing row yields the default
// record without writing it.
func (s *GormAboutStore) Get(ctx context.Context) (content.AboutContent, error) {
	var model AboutModel
	err := s.db.WithContext(ctx).First(&model, aboutRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return content.DefaultAbout(), nil
	}
	if err != nil {
		s.logger.Error("failed to read about store", zap.Error(err))
		return content.AboutContent{}, shared.ErrStoreWrite
	}
	return content.AboutContent{Content: model.Content}, nil
}

// Put implements content.AboutRepository
func (s *GormAboutStore) Put(ctx context.Context, about content.AboutContent) (content.AboutContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	model := AboutModel{ID: aboutRowID, Content: about.Content}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"content"}),
	}).Create(&model).Error
	if err != nil {
		s.logger.Error("failed to persist about store", zap.Error(err))
		return content.AboutContent{}, shared.ErrStoreWrite
	}
	return about, nil
}
