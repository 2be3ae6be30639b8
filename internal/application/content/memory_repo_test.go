package content

import (
	"context"
	"time"

	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/shared"
)

// memProjectRepo is an in-memory repository with the same semantics as the
// durable stores. failWith, when set, makes every mutator fail once.
type memProjectRepo struct {
	projects []content.Project
	now      func() time.Time
	failWith error
}

var _ content.ProjectRepository = (*memProjectRepo)(nil)

func newMemProjectRepo(seed ...content.Project) *memProjectRepo {
	return &memProjectRepo{
		projects: seed,
		now:      time.Now,
	}
}

func (r *memProjectRepo) takeFailure() error {
	err := r.failWith
	r.failWith = nil
	return err
}

func (r *memProjectRepo) snapshot() []content.Project {
	out := make([]content.Project, len(r.projects))
	for i := range r.projects {
		out[i] = r.projects[i].Clone()
	}
	return out
}

func (r *memProjectRepo) FindAll(ctx context.Context) ([]content.Project, error) {
	return r.snapshot(), nil
}

func (r *memProjectRepo) Insert(ctx context.Context, project content.Project) ([]content.Project, error) {
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	if err := content.AssignID(&project, r.projects, r.now()); err != nil {
		return nil, err
	}
	r.projects = append(r.projects, project)
	return r.snapshot(), nil
}

func (r *memProjectRepo) Update(ctx context.Context, id string, mutate func(*content.Project) error) ([]content.Project, error) {
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	for i := range r.projects {
		if r.projects[i].ID != id {
			continue
		}
		updated := r.projects[i].Clone()
		if err := mutate(&updated); err != nil {
			return nil, err
		}
		updated.ID = id
		r.projects[i] = updated
		return r.snapshot(), nil
	}
	return nil, shared.ErrNotFound
}

func (r *memProjectRepo) Delete(ctx context.Context, id string) ([]content.Project, error) {
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	for i := range r.projects {
		if r.projects[i].ID == id {
			r.projects = append(r.projects[:i], r.projects[i+1:]...)
			return r.snapshot(), nil
		}
	}
	return nil, shared.ErrNotFound
}

type memAboutRepo struct {
	about    *content.AboutContent
	failWith error
}

var _ content.AboutRepository = (*memAboutRepo)(nil)

func (r *memAboutRepo) Get(ctx context.Context) (content.AboutContent, error) {
	if r.about == nil {
		return content.DefaultAbout(), nil
	}
	return *r.about, nil
}

func (r *memAboutRepo) Put(ctx context.Context, about content.AboutContent) (content.AboutContent, error) {
	if r.failWith != nil {
		err := r.failWith
		r.failWith = nil
		return content.AboutContent{}, err
	}
	r.about = &about
	return about, nil
}
