package persistence

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// projectsDocument is the on-disk shape of the project collection, identical
// to the document the public GET endpoint serves.
type projectsDocument struct {
	Projects []content.Project `json:"projects"`
}

// JSONProjectStore keeps the project collection in a single JSON file.
// Mutators hold the writer lock across the whole read-modify-write cycle and
// rewrite the file atomically; readers share an RLock.
type JSONProjectStore struct {
	path   string
	mu     sync.RWMutex
	logger *zap.Logger
	now    func() time.Time
}

var _ content.ProjectRepository = (*JSONProjectStore)(nil)

// NewJSONProjectStore creates a store backed by dataDir/projects.json.
func NewJSONProjectStore(dataDir string, logger *zap.Logger) *JSONProjectStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JSONProjectStore{
		path:   filepath.Join(dataDir, "projects.json"),
		logger: logger,
		now:    time.Now,
	}
}

// FindAll implements content.ProjectRepository
func (s *JSONProjectStore) FindAll(ctx context.Context) ([]content.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load()
}

// Insert implements content.ProjectRepository
func (s *JSONProjectStore) Insert(ctx context.Context, project content.Project) ([]content.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.load()
	if err != nil {
		return nil, err
	}
	if err := content.AssignID(&project, projects, s.now()); err != nil {
		return nil, err
	}
	projects = append(projects, project)
	if err := s.persist(projects); err != nil {
		return nil, err
	}
	return cloneProjects(projects), nil
}

// Update implements content.ProjectRepository
func (s *JSONProjectStore) Update(ctx context.Context, id string, mutate func(*content.Project) error) ([]content.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.load()
	if err != nil {
		return nil, err
	}
	idx := indexOf(projects, id)
	if idx < 0 {
		return nil, shared.ErrNotFound
	}

	updated := projects[idx].Clone()
	if err := mutate(&updated); err != nil {
		return nil, err
	}
	updated.ID = id // ids are never reassigned
	projects[idx] = updated

	if err := s.persist(projects); err != nil {
		return nil, err
	}
	return cloneProjects(projects), nil
}

// Delete implements content.ProjectRepository
func (s *JSONProjectStore) Delete(ctx context.Context, id string) ([]content.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.load()
	if err != nil {
		return nil, err
	}
	idx := indexOf(projects, id)
	if idx < 0 {
		return nil, shared.ErrNotFound
	}
	projects = append(projects[:idx], projects[idx+1:]...)

	if err := s.persist(projects); err != nil {
		return nil, err
	}
	return cloneProjects(projects), nil
}

func (s *JSONProjectStore) load() ([]content.Project, error) {
	var doc projectsDocument
	if _, err := readJSONFile(s.path, &doc); err != nil {
		s.logger.Error("failed to read project store", zap.String("path", s.path), zap.Error(err))
		return nil, shared.ErrStoreWrite
	}
	if doc.Projects == nil {
		doc.Projects = []content.Project{}
	}
	return doc.Projects, nil
}

func (s *JSONProjectStore) persist(projects []content.Project) error {
	if err := writeJSONFileAtomic(s.path, projectsDocument{Projects: projects}); err != nil {
		s.logger.Error("failed to persist project store", zap.String("path", s.path), zap.Error(err))
		return shared.ErrStoreWrite
	}
	return nil
}

func indexOf(projects []content.Project, id string) int {
	for i := range projects {
		if projects[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneProjects(projects []content.Project) []content.Project {
	out := make([]content.Project, len(projects))
	for i := range projects {
		out[i] = projects[i].Clone()
	}
	return out
}
