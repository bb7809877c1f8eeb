// Package testutil provides database fixtures shared by package tests
package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/todoey/internal/database"
	"github.com/thenoetrevino/todoey/internal/events"
	"github.com/thenoetrevino/todoey/internal/models"
)

// SetupTestDB creates an in-memory database with the full schema. The
// database is closed when the test finishes.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(context.Background(), database.MemoryPath)
	require.NoError(t, err, "Failed to create test database")
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// SetupTestRepo returns a repository over a fresh in-memory database
func SetupTestRepo(t *testing.T) (*database.Repository, *sql.DB) {
	t.Helper()
	db := SetupTestDB(t)
	return database.NewRepository(db), db
}

// CreateTestCategory inserts a category directly through the repository
func CreateTestCategory(t *testing.T, repo database.DataStore, name string) *models.Category {
	t.Helper()
	category, err := repo.CreateCategory(context.Background(), name)
	require.NoError(t, err, "Failed to create test category %q", name)
	return category
}

// CreateTestItem inserts an item directly through the repository
func CreateTestItem(t *testing.T, repo database.DataStore, category *models.Category, title string) *models.Item {
	t.Helper()
	item, err := repo.CreateItem(context.Background(), category.ID, title)
	require.NoError(t, err, "Failed to create test item %q", title)
	return item
}

// EventRecorder is an events.Publisher that keeps every event it receives
type EventRecorder struct {
	Events []events.Event
}

// Publish implements events.Publisher
func (r *EventRecorder) Publish(event events.Event) {
	r.Events = append(r.Events, event)
}

// Types returns the recorded event types in order
func (r *EventRecorder) Types() []events.EventType {
	out := make([]events.EventType, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.Type
	}
	return out
}
