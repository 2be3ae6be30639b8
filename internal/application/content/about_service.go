package content

import (
	"context"

	"github.com/portfolio/backend/internal/domain/content"
	"go.uber.org/zap"
)

// AboutService reads and replaces the singleton about record.
type AboutService struct {
	repo   content.AboutRepository
	logger *zap.Logger
}

// AboutServiceOption is a functional option for configuring AboutService
type AboutServiceOption func(*AboutService)

// WithAboutLogger sets a custom logger for AboutService
func WithAboutLogger(logger *zap.Logger) AboutServiceOption {
	return func(s *AboutService) {
		s.logger = logger
	}
}

// NewAboutService creates a new AboutService
func NewAboutService(repo content.AboutRepository, opts ...AboutServiceOption) *AboutService {
	s := &AboutService{
		repo:   repo,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the singleton, falling back to the default record when nothing
// has been written yet. Repeated reads never write.
func (s *AboutService) Get(ctx context.Context) (content.AboutContent, error) {
	return s.repo.Get(ctx)
}

// Update replaces the singleton wholesale and echoes the stored value.
func (s *AboutService) Update(ctx context.Context, about content.AboutContent) (content.AboutContent, error) {
	stored, err := s.repo.Put(ctx, about)
	if err != nil {
		return content.AboutContent{}, err
	}
	s.logger.Info("about content updated", zap.Int("length", len(stored.Content)))
	return stored, nil
}
