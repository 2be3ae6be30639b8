// Package content implements the application services over the portfolio
// content model: collection CRUD, the about singleton, the public projection,
// and the admin edit session.
package content

import (
	"context"

	"github.com/portfolio/backend/internal/domain/content"
	"go.uber.org/zap"
)

// ProjectService coordinates project collection operations against the
// repository. Validation and merge rules live in the domain; the service adds
// logging and keeps handlers free of repository mechanics.
type ProjectService struct {
	repo   content.ProjectRepository
	logger *zap.Logger
}

// ProjectServiceOption is a functional option for configuring ProjectService
type ProjectServiceOption func(*ProjectService)

// WithProjectLogger sets a custom logger for ProjectService
func WithProjectLogger(logger *zap.Logger) ProjectServiceOption {
	return func(s *ProjectService) {
		s.logger = logger
	}
}

// NewProjectService creates a new ProjectService
func NewProjectService(repo content.ProjectRepository, opts ...ProjectServiceOption) *ProjectService {
	s := &ProjectService{
		repo:   repo,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the collection in storage order.
func (s *ProjectService) List(ctx context.Context) ([]content.Project, error) {
	return s.repo.FindAll(ctx)
}

// Create validates and inserts a new project, returning the refreshed
// collection. The id is assigned by the store when the caller leaves it empty.
func (s *ProjectService) Create(ctx context.Context, project content.Project) ([]content.Project, error) {
	project.Sanitize()
	if err := project.Validate(); err != nil {
		return nil, err
	}
	projects, err := s.repo.Insert(ctx, project)
	if err != nil {
		return nil, err
	}
	s.logger.Info("project created", zap.String("title", project.Title))
	return projects, nil
}

// Update merges the draft into the stored record identified by id. Absent
// draft fields keep their stored values; explicit nulls clear them.
func (s *ProjectService) Update(ctx context.Context, id string, draft content.Draft) ([]content.Project, error) {
	projects, err := s.repo.Update(ctx, id, draft.Apply)
	if err != nil {
		return nil, err
	}
	s.logger.Info("project updated", zap.String("id", id))
	return projects, nil
}

// Delete removes the record by id and returns the refreshed collection.
func (s *ProjectService) Delete(ctx context.Context, id string) ([]content.Project, error) {
	projects, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("project deleted", zap.String("id", id))
	return projects, nil
}
