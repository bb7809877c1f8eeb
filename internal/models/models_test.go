package models

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrors_Messages(t *testing.T) {
	tests := []struct {
		err             error
		expectedMessage string
	}{
		{ErrValidation, "validation failed"},
		{ErrNotFound, "not found"},
		{ErrStorage, "storage failure"},
	}

	for _, tt := range tests {
		if tt.err.Error() != tt.expectedMessage {
			t.Errorf("Expected error message '%s', got '%s'", tt.expectedMessage, tt.err.Error())
		}
	}
}

func TestErrors_Unique(t *testing.T) {
	if errors.Is(ErrValidation, ErrNotFound) {
		t.Error("ErrValidation should not equal ErrNotFound")
	}
	if errors.Is(ErrNotFound, ErrStorage) {
		t.Error("ErrNotFound should not equal ErrStorage")
	}
	if errors.Is(ErrStorage, ErrValidation) {
		t.Error("ErrStorage should not equal ErrValidation")
	}
}

func TestErrors_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("%w: item title cannot be empty", ErrValidation)
	if !errors.Is(wrapped, ErrValidation) {
		t.Error("wrapped error should match ErrValidation")
	}

	doubled := fmt.Errorf("%w: failed to insert item: %w", ErrStorage, errors.New("disk full"))
	if !errors.Is(doubled, ErrStorage) {
		t.Error("doubly wrapped error should match ErrStorage")
	}
}
