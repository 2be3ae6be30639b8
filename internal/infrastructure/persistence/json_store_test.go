package persistence

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func jsonFixture(t *testing.T) (content.ProjectRepository, content.AboutRepository) {
	dir := t.TempDir()
	return NewJSONProjectStore(dir, zap.NewNop()), NewJSONAboutStore(dir, zap.NewNop())
}

func TestJSONStoreContract(t *testing.T) {
	runStoreContract(t, jsonFixture)
}

func TestJSONProjectStoreFile(t *testing.T) {
	ctx := context.Background()

	t.Run("document shape matches the served collection", func(t *testing.T) {
		dir := t.TempDir()
		store := NewJSONProjectStore(dir, zap.NewNop())

		_, err := store.Insert(ctx, testProject("On disk"))
		require.NoError(t, err)

		raw, err := os.ReadFile(filepath.Join(dir, "projects.json"))
		require.NoError(t, err)

		var doc struct {
			Projects []content.Project `json:"projects"`
		}
		require.NoError(t, json.Unmarshal(raw, &doc))
		require.Len(t, doc.Projects, 1)
		assert.Equal(t, "On disk", doc.Projects[0].Title)
	})

	t.Run("no temp files survive a mutation", func(t *testing.T) {
		dir := t.TempDir()
		store := NewJSONProjectStore(dir, zap.NewNop())

		_, err := store.Insert(ctx, testProject("A"))
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "projects.json", entries[0].Name())
	})

	t.Run("corrupt file surfaces as a store error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "projects.json"), []byte("{not json"), 0644))

		store := NewJSONProjectStore(dir, zap.NewNop())
		_, err := store.FindAll(ctx)
		require.ErrorIs(t, err, shared.ErrStoreWrite)
	})

	t.Run("stores in the same directory do not interfere", func(t *testing.T) {
		dir := t.TempDir()
		projects := NewJSONProjectStore(dir, zap.NewNop())
		about := NewJSONAboutStore(dir, zap.NewNop())

		_, err := projects.Insert(ctx, testProject("A"))
		require.NoError(t, err)
		_, err = about.Put(ctx, content.AboutContent{Content: "Hi"})
		require.NoError(t, err)

		got, err := projects.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 1)

		aboutGot, err := about.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Hi", aboutGot.Content)
	})
}
