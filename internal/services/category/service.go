package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/thenoetrevino/todoey/internal/database"
	"github.com/thenoetrevino/todoey/internal/events"
	"github.com/thenoetrevino/todoey/internal/models"
	"github.com/thenoetrevino/todoey/internal/types"
)

// Service defines all category-related business operations
type Service interface {
	// Read operations
	GetAllCategories(ctx context.Context) ([]*models.Category, error)
	GetCategoryByID(ctx context.Context, id types.CategoryID) (*models.Category, error)

	// Write operations
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*models.Category, error)
	RenameCategory(ctx context.Context, req RenameCategoryRequest) error
	DeleteCategory(ctx context.Context, id types.CategoryID) error
}

// CreateCategoryRequest encapsulates data for creating a category
type CreateCategoryRequest struct {
	Name string
}

// RenameCategoryRequest encapsulates data for renaming a category
type RenameCategoryRequest struct {
	ID   types.CategoryID
	Name string
}

// service implements Service interface
type service struct {
	repo        database.DataStore
	eventClient events.Publisher
}

// NewService creates a new category service. eventClient may be nil.
func NewService(repo database.DataStore, eventClient events.Publisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// GetAllCategories retrieves all categories
func (s *service) GetAllCategories(ctx context.Context) ([]*models.Category, error) {
	return s.repo.GetAllCategories(ctx)
}

// GetCategoryByID retrieves a specific category
func (s *service) GetCategoryByID(ctx context.Context, id types.CategoryID) (*models.Category, error) {
	if id.IsZero() {
		return nil, ErrInvalidCategoryID
	}
	category, err := s.repo.GetCategoryByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrCategoryNotFound
	}
	return category, err
}

// CreateCategory creates a new category with validation
func (s *service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*models.Category, error) {
	if err := validateName(req.Name); err != nil {
		return nil, err
	}

	category, err := s.repo.CreateCategory(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	slog.Debug("category created", "category_id", category.ID, "name", category.Name)
	events.PublishCategory(s.eventClient, category.ID)

	return category, nil
}

// RenameCategory changes the name of an existing category
func (s *service) RenameCategory(ctx context.Context, req RenameCategoryRequest) error {
	if req.ID.IsZero() {
		return ErrInvalidCategoryID
	}
	if err := validateName(req.Name); err != nil {
		return err
	}

	err := s.repo.RenameCategory(ctx, req.ID, req.Name)
	if errors.Is(err, models.ErrNotFound) {
		return ErrCategoryNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to rename category: %w", err)
	}

	slog.Debug("category renamed", "category_id", req.ID, "name", req.Name)
	events.PublishCategory(s.eventClient, req.ID)

	return nil
}

// DeleteCategory removes a category together with every item it owns.
// Both deletions happen in one transaction. An absent category is a no-op.
func (s *service) DeleteCategory(ctx context.Context, id types.CategoryID) error {
	if id.IsZero() {
		return ErrInvalidCategoryID
	}

	var removedItems int64
	err := s.repo.InTx(ctx, func(tx database.DataStore) error {
		n, err := tx.DeleteItemsByCategory(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to delete items: %w", err)
		}
		removedItems = n

		if err := tx.DeleteCategory(ctx, id); err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Debug("category deleted", "category_id", id, "items_removed", removedItems)
	events.PublishCategory(s.eventClient, id)

	return nil
}

// validateName checks a category name for create and rename
func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) > models.MaxCategoryNameLength {
		return ErrNameTooLong
	}
	return nil
}
