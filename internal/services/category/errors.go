package category

import (
	"fmt"

	"github.com/thenoetrevino/todoey/internal/models"
)

// Domain errors for category service
var (
	// Validation errors
	ErrEmptyName         = fmt.Errorf("%w: category name cannot be empty", models.ErrValidation)
	ErrNameTooLong       = fmt.Errorf("%w: category name cannot exceed %d characters", models.ErrValidation, models.MaxCategoryNameLength)
	ErrInvalidCategoryID = fmt.Errorf("%w: invalid category ID", models.ErrValidation)

	// Lookup errors
	ErrCategoryNotFound = fmt.Errorf("%w: category not found", models.ErrNotFound)
)
