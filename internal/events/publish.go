package events

import (
	"log/slog"

	"github.com/thenoetrevino/todoey/internal/types"
)

// PublishCategory notifies p that a category changed. A nil publisher is
// allowed and skips silently (e.g., in tests or headless use).
func PublishCategory(p Publisher, categoryID types.CategoryID) {
	publish(p, Event{Type: EventCategoryChanged, CategoryID: categoryID})
}

// PublishItem notifies p that an item in categoryID changed
func PublishItem(p Publisher, categoryID types.CategoryID, itemID types.ItemID) {
	publish(p, Event{Type: EventItemChanged, CategoryID: categoryID, ItemID: itemID})
}

func publish(p Publisher, event Event) {
	if p == nil {
		return
	}
	slog.Debug("publishing event",
		"event_type", event.Type,
		"category_id", event.CategoryID,
		"item_id", event.ItemID)
	p.Publish(event)
}
