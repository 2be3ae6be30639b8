package persistence

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeFixture builds a fresh pair of stores for one subtest.
type storeFixture func(t *testing.T) (content.ProjectRepository, content.AboutRepository)

func testProject(title string) content.Project {
	return content.Project{
		Title:        title,
		Description:  "desc",
		Technologies: []string{"Go"},
		Date:         "August 2023",
	}
}

// runStoreContract exercises the repository semantics both backends must
// share.
func runStoreContract(t *testing.T, fixture storeFixture) {
	ctx := context.Background()

	t.Run("empty store lists no projects", func(t *testing.T) {
		projects, _ := fixture(t)
		got, err := projects.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("insert assigns unique ids and keeps insertion order", func(t *testing.T) {
		projects, _ := fixture(t)

		var collection []content.Project
		var err error
		for i := 0; i < 3; i++ {
			collection, err = projects.Insert(ctx, testProject(fmt.Sprintf("P%d", i)))
			require.NoError(t, err)
		}

		require.Len(t, collection, 3)
		seen := map[string]bool{}
		for i, p := range collection {
			assert.Equal(t, fmt.Sprintf("P%d", i), p.Title)
			assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
			seen[p.ID] = true
		}
	})

	t.Run("update merges through the mutate closure", func(t *testing.T) {
		projects, _ := fixture(t)
		collection, err := projects.Insert(ctx, testProject("Before"))
		require.NoError(t, err)
		id := collection[0].ID

		collection, err = projects.Update(ctx, id, func(p *content.Project) error {
			p.Title = "After"
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "After", collection[0].Title)
		assert.Equal(t, id, collection[0].ID)
	})

	t.Run("update of unknown id is not found", func(t *testing.T) {
		projects, _ := fixture(t)
		_, err := projects.Update(ctx, "missing", func(p *content.Project) error { return nil })
		require.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("mutate failure leaves the record untouched", func(t *testing.T) {
		projects, _ := fixture(t)
		collection, err := projects.Insert(ctx, testProject("Keep"))
		require.NoError(t, err)
		id := collection[0].ID

		_, err = projects.Update(ctx, id, func(p *content.Project) error {
			p.Title = "Discard"
			return shared.ErrInvalidInput
		})
		require.ErrorIs(t, err, shared.ErrInvalidInput)

		collection, err = projects.FindAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Keep", collection[0].Title)
	})

	t.Run("delete removes only the named record", func(t *testing.T) {
		projects, _ := fixture(t)
		collection, err := projects.Insert(ctx, testProject("A"))
		require.NoError(t, err)
		idA := collection[0].ID
		collection, err = projects.Insert(ctx, testProject("B"))
		require.NoError(t, err)

		collection, err = projects.Delete(ctx, idA)
		require.NoError(t, err)
		require.Len(t, collection, 1)
		assert.Equal(t, "B", collection[0].Title)
	})

	t.Run("delete of unknown id leaves the store unchanged", func(t *testing.T) {
		projects, _ := fixture(t)
		_, err := projects.Insert(ctx, testProject("A"))
		require.NoError(t, err)

		_, err = projects.Delete(ctx, "missing")
		require.ErrorIs(t, err, shared.ErrNotFound)

		collection, err := projects.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, collection, 1)
	})

	t.Run("media pointers round-trip", func(t *testing.T) {
		projects, _ := fixture(t)
		p := testProject("With media")
		p.SetMedia("/uploads/a.png", "image")
		collection, err := projects.Insert(ctx, p)
		require.NoError(t, err)
		require.NotNil(t, collection[0].MediaURL)
		assert.Equal(t, "image", *collection[0].MediaType)

		id := collection[0].ID
		collection, err = projects.Update(ctx, id, func(p *content.Project) error {
			p.SetMedia("", "")
			return nil
		})
		require.NoError(t, err)
		assert.Nil(t, collection[0].MediaURL)
		assert.Nil(t, collection[0].MediaType)
	})

	t.Run("concurrent updates to different records both land", func(t *testing.T) {
		projects, _ := fixture(t)
		collection, err := projects.Insert(ctx, testProject("A"))
		require.NoError(t, err)
		idA := collection[0].ID
		collection, err = projects.Insert(ctx, testProject("B"))
		require.NoError(t, err)
		idB := collection[1].ID

		var wg sync.WaitGroup
		for _, id := range []string{idA, idB} {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				_, err := projects.Update(ctx, id, func(p *content.Project) error {
					p.Title = p.Title + "!"
					return nil
				})
				assert.NoError(t, err)
			}(id)
		}
		wg.Wait()

		collection, err = projects.FindAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, "A!", collection[0].Title)
		assert.Equal(t, "B!", collection[1].Title)
	})

	t.Run("about defaults until first write", func(t *testing.T) {
		_, about := fixture(t)

		got, err := about.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, content.DefaultAbout(), got)

		// Reading the default twice stays idempotent.
		got, err = about.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, content.DefaultAbout(), got)

		_, err = about.Put(ctx, content.AboutContent{Content: "Hi"})
		require.NoError(t, err)

		got, err = about.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Hi", got.Content)
	})
}
