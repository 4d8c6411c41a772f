package utils

import "github.com/google/uuid"

// IDFunc produces identifiers for new records.
type IDFunc func() string

// NewID returns a time-ordered UUIDv7 string, falling back to a random v4 if
// the v7 generator fails.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// NewRequestID returns a short request identifier for logs and responses.
func NewRequestID() string {
	return uuid.New().String()[:8]
}
