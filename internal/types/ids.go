package types

import (
	"fmt"

	"github.com/google/uuid"
)

// ID types give semantic meaning to the UUIDs stored in the database.
// The zero value of each type means "no reference".

// CategoryID identifies a unique category in the store
type CategoryID uuid.UUID

// ItemID identifies a unique item within a category
type ItemID uuid.UUID

// NewCategoryID returns a fresh random category identifier
func NewCategoryID() CategoryID {
	return CategoryID(uuid.New())
}

// NewItemID returns a fresh random item identifier
func NewItemID() ItemID {
	return ItemID(uuid.New())
}

// ParseCategoryID parses the canonical string form of a category ID
func ParseCategoryID(s string) (CategoryID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return CategoryID{}, fmt.Errorf("invalid category ID %q: %w", s, err)
	}
	return CategoryID(id), nil
}

// ParseItemID parses the canonical string form of an item ID
func ParseItemID(s string) (ItemID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ItemID{}, fmt.Errorf("invalid item ID %q: %w", s, err)
	}
	return ItemID(id), nil
}

func (id CategoryID) String() string {
	return uuid.UUID(id).String()
}

func (id ItemID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether the ID is unset
func (id CategoryID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

// IsZero reports whether the ID is unset
func (id ItemID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

// MarshalText encodes the ID in its canonical string form
func (id CategoryID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

// UnmarshalText decodes a canonical string form
func (id *CategoryID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(data)
}

func (id ItemID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *ItemID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(data)
}
