package item

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"golang.org/x/text/language"

	"github.com/thenoetrevino/todoey/internal/database"
	"github.com/thenoetrevino/todoey/internal/events"
	"github.com/thenoetrevino/todoey/internal/models"
	"github.com/thenoetrevino/todoey/internal/search"
	"github.com/thenoetrevino/todoey/internal/types"
)

// Service defines all item-related business operations
type Service interface {
	// Read operations
	GetItem(ctx context.Context, id types.ItemID) (*models.Item, error)
	ListItems(ctx context.Context, req ListItemsRequest) ([]*models.Item, error)

	// Write operations
	CreateItem(ctx context.Context, req CreateItemRequest) (*models.Item, error)
	ToggleDone(ctx context.Context, id types.ItemID) (*models.Item, error)
	DeleteItem(ctx context.Context, id types.ItemID) error
}

// CreateItemRequest encapsulates all data needed to create an item.
// Title may be empty.
type CreateItemRequest struct {
	CategoryID types.CategoryID
	Title      string
}

// ListItemsRequest selects the items of one category. A non-empty Search
// narrows the result to titles containing it and sorts by title.
type ListItemsRequest struct {
	CategoryID types.CategoryID
	Search     string
}

// Option configures the item service
type Option func(*service)

// WithLocale sets the collation used to sort search results
func WithLocale(tag language.Tag) Option {
	return func(s *service) {
		s.locale = tag
	}
}

// service implements Service interface
type service struct {
	repo        database.DataStore
	eventClient events.Publisher
	locale      language.Tag
}

// NewService creates a new item service. eventClient may be nil.
func NewService(repo database.DataStore, eventClient events.Publisher, opts ...Option) Service {
	s := &service{
		repo:        repo,
		eventClient: eventClient,
		locale:      language.Und,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateItem adds a not-done item to an existing category
func (s *service) CreateItem(ctx context.Context, req CreateItemRequest) (*models.Item, error) {
	if req.CategoryID.IsZero() {
		return nil, ErrInvalidCategoryID
	}
	if utf8.RuneCountInString(req.Title) > models.MaxItemTitleLength {
		return nil, ErrTitleTooLong
	}

	var item *models.Item
	err := s.repo.InTx(ctx, func(tx database.DataStore) error {
		exists, err := tx.CategoryExists(ctx, req.CategoryID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrCategoryNotFound
		}

		item, err = tx.CreateItem(ctx, req.CategoryID, req.Title)
		if err != nil {
			return fmt.Errorf("failed to create item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("item created", "item_id", item.ID, "category_id", item.CategoryID)
	events.PublishItem(s.eventClient, item.CategoryID, item.ID)

	return item, nil
}

// GetItem retrieves a single item
func (s *service) GetItem(ctx context.Context, id types.ItemID) (*models.Item, error) {
	if id.IsZero() {
		return nil, ErrInvalidItemID
	}
	item, err := s.repo.GetItem(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrItemNotFound
	}
	return item, err
}

// ToggleDone flips the item's done flag and returns the stored result
func (s *service) ToggleDone(ctx context.Context, id types.ItemID) (*models.Item, error) {
	if id.IsZero() {
		return nil, ErrInvalidItemID
	}

	var item *models.Item
	err := s.repo.InTx(ctx, func(tx database.DataStore) error {
		if err := tx.ToggleItemDone(ctx, id); err != nil {
			return err
		}
		var err error
		item, err = tx.GetItem(ctx, id)
		return err
	})
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to toggle item: %w", err)
	}

	slog.Debug("item toggled", "item_id", id, "done", item.Done)
	events.PublishItem(s.eventClient, item.CategoryID, item.ID)

	return item, nil
}

// ListItems returns the category's items matching the optional search.
// Plain loads keep insertion order; searches are sorted by title.
func (s *service) ListItems(ctx context.Context, req ListItemsRequest) ([]*models.Item, error) {
	if req.CategoryID.IsZero() {
		return nil, ErrInvalidCategoryID
	}

	query := database.ItemQuery{
		CategoryID: req.CategoryID,
		Filter:     database.TextContains(req.Search),
	}

	items, err := s.repo.ListItems(ctx, query)
	if err != nil {
		return nil, err
	}

	if query.Filter.IsSearch() {
		search.SortByKey(s.locale, items, func(i *models.Item) string { return i.Title })
	}
	return items, nil
}

// DeleteItem removes a single item. Deleting an absent item is a no-op.
func (s *service) DeleteItem(ctx context.Context, id types.ItemID) error {
	if id.IsZero() {
		return ErrInvalidItemID
	}

	// Look up the owner first so the event can name the category
	existing, err := s.repo.GetItem(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	slog.Debug("item deleted", "item_id", id, "category_id", existing.CategoryID)
	events.PublishItem(s.eventClient, existing.CategoryID, id)

	return nil
}
