package item

import (
	"fmt"

	"github.com/thenoetrevino/todoey/internal/models"
)

// Item-related errors
var (
	// Validation errors
	ErrInvalidCategoryID = fmt.Errorf("%w: an item requires a category", models.ErrValidation)
	ErrInvalidItemID     = fmt.Errorf("%w: invalid item ID", models.ErrValidation)
	ErrTitleTooLong      = fmt.Errorf("%w: item title cannot exceed %d characters", models.ErrValidation, models.MaxItemTitleLength)

	// Lookup errors
	ErrItemNotFound     = fmt.Errorf("%w: item not found", models.ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("%w: category not found", models.ErrNotFound)
)
