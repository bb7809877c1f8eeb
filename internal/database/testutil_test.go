package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/todoey/internal/models"
)

// ============================================================================
// Local Test Helpers (to avoid import cycle with testutil)
// ============================================================================

// setupTestDB opens a migrated in-memory database and closes it with the test
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), MemoryPath)
	require.NoError(t, err, "Failed to create test database")
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func createTestCategory(t *testing.T, repo *Repository, name string) *models.Category {
	t.Helper()
	category, err := repo.CreateCategory(context.Background(), name)
	require.NoError(t, err, "Failed to create category %q", name)
	return category
}

func createTestItem(t *testing.T, repo *Repository, category *models.Category, title string) *models.Item {
	t.Helper()
	item, err := repo.CreateItem(context.Background(), category.ID, title)
	require.NoError(t, err, "Failed to create item %q", title)
	return item
}

func itemTitles(items []*models.Item) []string {
	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = item.Title
	}
	return titles
}
