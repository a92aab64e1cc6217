package auth

import "github.com/google/uuid"

// NewToken returns an opaque session token backed by a random (v4) UUID.
func NewToken() string {
	return uuid.NewString()
}
