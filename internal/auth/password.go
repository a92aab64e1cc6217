package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const DefaultCost = 10

type Hasher struct {
	cost int
}

// NewHasher clamps cost into the range bcrypt accepts.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(p string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(p), h.cost)
	return string(b), err
}

// Verify reports whether plain matches hash. A malformed hash is an error,
// a plain mismatch is not.
func (h *Hasher) Verify(plain, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
