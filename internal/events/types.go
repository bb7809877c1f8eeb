package events

import (
	"time"

	"github.com/thenoetrevino/todoey/internal/types"
)

// EventType indicates what kind of change occurred
type EventType string

const (
	EventCategoryChanged EventType = "category_changed"
	EventItemChanged     EventType = "item_changed"
)

// Event represents a store change notification. UI layers use it to know
// when a cached view of a category needs reloading.
type Event struct {
	Type       EventType
	CategoryID types.CategoryID // Category whose contents changed
	ItemID     types.ItemID     // Zero for category-level changes
	Timestamp  time.Time
	SequenceID int64 // Monotonically increasing per publisher
}
