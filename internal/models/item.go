package models

import (
	"time"

	"github.com/thenoetrevino/todoey/internal/types"
)

// Item is a single task record belonging to exactly one category
type Item struct {
	ID         types.ItemID
	Title      string
	Done       bool
	CategoryID types.CategoryID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
