package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/todoey/internal/models"
	"github.com/thenoetrevino/todoey/internal/types"
)

// CategoryRepository defines data access for categories.
// No validation and no cascading: those rules live in the category service.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	InsertCategory(ctx context.Context, category *models.Category) error
	GetCategoryByID(ctx context.Context, id types.CategoryID) (*models.Category, error)
	GetAllCategories(ctx context.Context) ([]*models.Category, error)
	CategoryExists(ctx context.Context, id types.CategoryID) (bool, error)
	RenameCategory(ctx context.Context, id types.CategoryID, name string) error
	DeleteCategory(ctx context.Context, id types.CategoryID) error
}

// CategoryRepo handles all category-related database operations.
type CategoryRepo struct {
	db dbtx
}

const categoryColumns = `id, name, created_at, updated_at`

// CreateCategory inserts a category with a fresh ID
func (r *CategoryRepo) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	ts := now()
	category := &models.Category{
		ID:        types.NewCategoryID(),
		Name:      name,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := r.InsertCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// InsertCategory stores a fully populated category record
func (r *CategoryRepo) InsertCategory(ctx context.Context, category *models.Category) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		category.ID.String(), category.Name, formatTime(category.CreatedAt), formatTime(category.UpdatedAt),
	)
	if err != nil {
		return storageErr(fmt.Sprintf("failed to insert category '%s'", category.Name), err)
	}
	return nil
}

// GetCategoryByID retrieves a category by its ID
func (r *CategoryRepo) GetCategoryByID(ctx context.Context, id types.CategoryID) (*models.Category, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ?`,
		id.String(),
	)
	category, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: category %s", models.ErrNotFound, id)
	}
	if err != nil {
		return nil, storageErr(fmt.Sprintf("failed to get category %s", id), err)
	}
	return category, nil
}

// GetAllCategories retrieves all categories in insertion order
func (r *CategoryRepo) GetAllCategories(ctx context.Context) ([]*models.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY rowid`)
	if err != nil {
		return nil, storageErr("failed to query all categories", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	categories := make([]*models.Category, 0, 10)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, storageErr("failed to scan category row", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr("error iterating category rows", err)
	}
	return categories, nil
}

// CategoryExists reports whether a category with the given ID is stored
func (r *CategoryRepo) CategoryExists(ctx context.Context, id types.CategoryID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE id = ?)`,
		id.String(),
	).Scan(&exists)
	if err != nil {
		return false, storageErr(fmt.Sprintf("failed to check category %s", id), err)
	}
	return exists, nil
}

// RenameCategory updates a category's name
func (r *CategoryRepo) RenameCategory(ctx context.Context, id types.CategoryID, name string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, updated_at = ? WHERE id = ?`,
		name, formatTime(now()), id.String(),
	)
	if err != nil {
		return storageErr(fmt.Sprintf("failed to rename category %s", id), err)
	}
	return requireAffected(result, "category", id.String())
}

// DeleteCategory removes a category row. Deleting an absent category is not
// an error. The caller must remove the category's items first.
func (r *CategoryRepo) DeleteCategory(ctx context.Context, id types.CategoryID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id.String())
	if err != nil {
		return storageErr(fmt.Sprintf("failed to delete category %s", id), err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (*models.Category, error) {
	var (
		rawID, createdAt, updatedAt string
		category                    models.Category
		err                         error
	)
	if err = row.Scan(&rawID, &category.Name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if category.ID, err = types.ParseCategoryID(rawID); err != nil {
		return nil, err
	}
	if category.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if category.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &category, nil
}

// requireAffected turns an update that touched no rows into a not-found error
func requireAffected(result sql.Result, entity, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return storageErr("failed to read affected rows", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %s", models.ErrNotFound, entity, id)
	}
	return nil
}
