package utils

import "github.com/google/uuid"

// NewID returns a time-ordered UUIDv7, or a random UUIDv4 when the clock
// source fails. Used for entity ids and request trace ids.
func NewID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
