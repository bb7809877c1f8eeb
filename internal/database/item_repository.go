package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/todoey/internal/models"
	"github.com/thenoetrevino/todoey/internal/search"
	"github.com/thenoetrevino/todoey/internal/types"
)

// ItemRepository defines data access for items.
// No business logic, no events, no validation - just database operations
type ItemRepository interface {
	CreateItem(ctx context.Context, categoryID types.CategoryID, title string) (*models.Item, error)
	InsertItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, id types.ItemID) (*models.Item, error)
	ItemExists(ctx context.Context, id types.ItemID) (bool, error)
	ListItems(ctx context.Context, q ItemQuery) ([]*models.Item, error)
	ToggleItemDone(ctx context.Context, id types.ItemID) error
	DeleteItem(ctx context.Context, id types.ItemID) error
	DeleteItemsByCategory(ctx context.Context, categoryID types.CategoryID) (int64, error)
}

// ItemRepo handles all item-related database operations.
type ItemRepo struct {
	db dbtx
}

const itemColumns = `id, category_id, title, done, created_at, updated_at`

// CreateItem inserts a not-done item with a fresh ID under categoryID
func (r *ItemRepo) CreateItem(ctx context.Context, categoryID types.CategoryID, title string) (*models.Item, error) {
	ts := now()
	item := &models.Item{
		ID:         types.NewItemID(),
		Title:      title,
		Done:       false,
		CategoryID: categoryID,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
	if err := r.InsertItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// InsertItem stores a fully populated item record along with its search key
func (r *ItemRepo) InsertItem(ctx context.Context, item *models.Item) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO items (id, category_id, title, title_key, done, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID.String(),
		item.CategoryID.String(),
		item.Title,
		search.Fold(item.Title),
		item.Done,
		formatTime(item.CreatedAt),
		formatTime(item.UpdatedAt),
	)
	if err != nil {
		return storageErr(fmt.Sprintf("failed to insert item into category %s", item.CategoryID), err)
	}
	return nil
}

// GetItem retrieves an item by ID
func (r *ItemRepo) GetItem(ctx context.Context, id types.ItemID) (*models.Item, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id.String())
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: item %s", models.ErrNotFound, id)
	}
	if err != nil {
		return nil, storageErr(fmt.Sprintf("failed to get item %s", id), err)
	}
	return item, nil
}

// ItemExists reports whether an item with the given ID is stored
func (r *ItemRepo) ItemExists(ctx context.Context, id types.ItemID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM items WHERE id = ?)`,
		id.String(),
	).Scan(&exists)
	if err != nil {
		return false, storageErr(fmt.Sprintf("failed to check item %s", id), err)
	}
	return exists, nil
}

// ListItems runs q as a single query and returns matches in insertion order
func (r *ItemRepo) ListItems(ctx context.Context, q ItemQuery) ([]*models.Item, error) {
	where, args := q.where()
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE `+where+` ORDER BY rowid`,
		args...,
	)
	if err != nil {
		return nil, storageErr(fmt.Sprintf("failed to query items for category %s", q.CategoryID), err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	items := make([]*models.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, storageErr("failed to scan item row", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr("error iterating item rows", err)
	}
	return items, nil
}

// ToggleItemDone flips the done flag in place
func (r *ItemRepo) ToggleItemDone(ctx context.Context, id types.ItemID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE items SET done = NOT done, updated_at = ? WHERE id = ?`,
		formatTime(now()), id.String(),
	)
	if err != nil {
		return storageErr(fmt.Sprintf("failed to toggle item %s", id), err)
	}
	return requireAffected(result, "item", id.String())
}

// DeleteItem removes a single item. Deleting an absent item is not an error.
func (r *ItemRepo) DeleteItem(ctx context.Context, id types.ItemID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id.String())
	if err != nil {
		return storageErr(fmt.Sprintf("failed to delete item %s", id), err)
	}
	return nil
}

// DeleteItemsByCategory removes every item owned by a category and returns
// how many were removed
func (r *ItemRepo) DeleteItemsByCategory(ctx context.Context, categoryID types.CategoryID) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE category_id = ?`, categoryID.String())
	if err != nil {
		return 0, storageErr(fmt.Sprintf("failed to delete items for category %s", categoryID), err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, storageErr("failed to read affected rows", err)
	}
	return n, nil
}

func scanItem(row rowScanner) (*models.Item, error) {
	var (
		rawID, rawCategoryID string
		createdAt, updatedAt string
		item                 models.Item
		err                  error
	)
	if err = row.Scan(&rawID, &rawCategoryID, &item.Title, &item.Done, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if item.ID, err = types.ParseItemID(rawID); err != nil {
		return nil, err
	}
	if item.CategoryID, err = types.ParseCategoryID(rawCategoryID); err != nil {
		return nil, err
	}
	if item.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if item.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &item, nil
}
