package persistence

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/shared"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GormProjectStore implements the project repository over SQLite. The mutex
// mirrors the JSON store: lost-update prevention comes from serializing the
// read-modify-write cycle, not from the database's isolation level.
type GormProjectStore struct {
	db     *gorm.DB
	mu     sync.Mutex
	logger *zap.Logger
	now    func() time.Time
}

var _ content.ProjectRepository = (*GormProjectStore)(nil)

// NewGormProjectStore creates a SQLite-backed project store.
func NewGormProjectStore(db *gorm.DB, logger *zap.Logger) *GormProjectStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormProjectStore{db: db, logger: logger, now: time.Now}
}

// FindAll implements content.ProjectRepository
func (s *GormProjectStore) FindAll(ctx context.Context) ([]content.Project, error) {
	return s.loadAll(ctx)
}

// Insert implements content.ProjectRepository
func (s *GormProjectStore) Insert(ctx context.Context, project content.Project) ([]content.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := content.AssignID(&project, existing, s.now()); err != nil {
		return nil, err
	}

	model, err := toProjectModel(&project)
	if err != nil {
		return nil, s.storeErr("encode project", err)
	}
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, s.storeErr("insert project", err)
	}
	return s.loadAll(ctx)
}

// Update implements content.ProjectRepository
func (s *GormProjectStore) Update(ctx context.Context, id string, mutate func(*content.Project) error) ([]content.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var model ProjectModel
	err := s.db.WithContext(ctx).Where("project_id = ?", id).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, s.storeErr("find project", err)
	}

	project, err := toDomainProject(&model)
	if err != nil {
		return nil, s.storeErr("decode project", err)
	}
	if err := mutate(&project); err != nil {
		return nil, err
	}
	project.ID = id // ids are never reassigned

	updated, err := toProjectModel(&project)
	if err != nil {
		return nil, s.storeErr("encode project", err)
	}
	updated.Seq = model.Seq
	if err := s.db.WithContext(ctx).Save(&updated).Error; err != nil {
		return nil, s.storeErr("update project", err)
	}
	return s.loadAll(ctx)
}

// Delete implements content.ProjectRepository
func (s *GormProjectStore) Delete(ctx context.Context, id string) ([]content.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.db.WithContext(ctx).Where("project_id = ?", id).Delete(&ProjectModel{})
	if res.Error != nil {
		return nil, s.storeErr("delete project", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, shared.ErrNotFound
	}
	return s.loadAll(ctx)
}

func (s *GormProjectStore) loadAll(ctx context.Context) ([]content.Project, error) {
	var models []ProjectModel
	if err := s.db.WithContext(ctx).Order("seq asc").Find(&models).Error; err != nil {
		return nil, s.storeErr("load projects", err)
	}
	projects := make([]content.Project, 0, len(models))
	for i := range models {
		p, err := toDomainProject(&models[i])
		if err != nil {
			return nil, s.storeErr("decode project", err)
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func (s *GormProjectStore) storeErr(op string, err error) error {
	s.logger.Error("project store operation failed", zap.String("op", op), zap.Error(err))
	return shared.ErrStoreWrite
}
