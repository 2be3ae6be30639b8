package content

import "context"

// ProjectRepository is the durable home of the project collection. Mutating
// operations are serialized per store (single-writer): implementations hold a
// write lock across the whole read-modify-write cycle and persist the entire
// collection atomically. Every mutator returns the refreshed collection in
// storage (insertion) order.
type ProjectRepository interface {
	// FindAll returns the collection in storage order. Never mutates.
	FindAll(ctx context.Context) ([]Project, error)

	// Insert appends a validated project and persists the collection.
	Insert(ctx context.Context, project Project) ([]Project, error)

	// Update locates the record by id and applies mutate to a copy under the
	// writer lock; the mutated copy replaces the stored record only if mutate
	// returns nil. Returns shared.ErrNotFound when the id is absent.
	Update(ctx context.Context, id string, mutate func(*Project) error) ([]Project, error)

	// Delete removes the record by id and persists the collection. Returns
	// shared.ErrNotFound when the id is absent; the store is unchanged then.
	Delete(ctx context.Context, id string) ([]Project, error)
}

// AboutRepository is the durable home of the about singleton.
type AboutRepository interface {
	// Get returns the singleton, or DefaultAbout() when none has been written
	// yet. The default is not persisted by reading it.
	Get(ctx context.Context) (AboutContent, error)

	// Put replaces the singleton wholesale.
	Put(ctx context.Context, about AboutContent) (AboutContent, error)
}
