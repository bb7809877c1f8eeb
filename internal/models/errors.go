package models

import "errors"

// Error taxonomy shared by every store. Package-level sentinels in the
// services wrap one of these so callers can branch with errors.Is.
var (
	// ErrValidation means the caller supplied invalid input. Not retried.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound means the targeted record is no longer present.
	ErrNotFound = errors.New("not found")

	// ErrStorage means the persistence medium failed to read or write.
	ErrStorage = errors.New("storage failure")
)
