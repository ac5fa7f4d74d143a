package utils

import (
	"github.com/google/uuid"
)

// NewID returns a time-ordered identifier (UUIDv7) for locally created records.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

