package models

// Field limits enforced by the services
const (
	MaxCategoryNameLength = 100
	MaxItemTitleLength    = 255
)
