package models

import (
	"time"

	"github.com/thenoetrevino/todoey/internal/types"
)

// Category is a named grouping that owns a collection of items.
// Deleting a category removes every item that references it.
type Category struct {
	ID        types.CategoryID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
