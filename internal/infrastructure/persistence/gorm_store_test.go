package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(&config.StoreConfig{
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func gormFixture(t *testing.T) (content.ProjectRepository, content.AboutRepository) {
	db := openTestDatabase(t)
	return NewGormProjectStore(db.DB, zap.NewNop()), NewGormAboutStore(db.DB, zap.NewNop())
}

func TestGormStoreContract(t *testing.T) {
	runStoreContract(t, gormFixture)
}

func TestGormStorePersistence(t *testing.T) {
	ctx := context.Background()

	t.Run("collection survives reopening the database", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "portfolio.db")
		cfg := &config.StoreConfig{SQLitePath: path}

		db, err := NewDatabase(cfg)
		require.NoError(t, err)
		store := NewGormProjectStore(db.DB, zap.NewNop())

		collection, err := store.Insert(ctx, testProject("Durable"))
		require.NoError(t, err)
		id := collection[0].ID
		require.NoError(t, db.Close())

		db, err = NewDatabase(cfg)
		require.NoError(t, err)
		defer db.Close()
		store = NewGormProjectStore(db.DB, zap.NewNop())

		collection, err = store.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, collection, 1)
		assert.Equal(t, id, collection[0].ID)
		assert.Equal(t, "Durable", collection[0].Title)
	})

	t.Run("technologies round-trip through the JSON column", func(t *testing.T) {
		db := openTestDatabase(t)
		store := NewGormProjectStore(db.DB, zap.NewNop())

		p := testProject("Tagged")
		p.Technologies = []string{"Go", "SQLite", "gin"}
		collection, err := store.Insert(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, []string{"Go", "SQLite", "gin"}, collection[0].Technologies)
	})

	t.Run("ping reports a live connection", func(t *testing.T) {
		db := openTestDatabase(t)
		assert.NoError(t, db.Ping())
	})
}
