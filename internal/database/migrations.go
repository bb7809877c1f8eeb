package database

import (
	"context"
	"database/sql"
)

// runMigrations creates the database schema if it does not exist yet.
//
// items.category_id references categories without ON DELETE CASCADE: removing
// a category's items is done explicitly by the category service, and the
// foreign key rejects deleting a category that still owns items.
func runMigrations(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			category_id TEXT NOT NULL REFERENCES categories(id),
			title TEXT NOT NULL DEFAULT '',
			title_key TEXT NOT NULL DEFAULT '',
			done BOOLEAN NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_items_category ON items(category_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
