package services

import (
	"context"
	"errors"

	"github.com/baharkarakas/contact-api/internal/apperr"
	repo "github.com/baharkarakas/contact-api/internal/repository"
)

// mustExist runs a scoped lookup and replaces a missing row with missing.
// Rows owned by someone else are missing rows as far as the caller can tell,
// since the scope is part of the lookup itself.
func mustExist[T any](ctx context.Context, missing *apperr.Error, find func(context.Context) (T, error)) (T, error) {
	v, err := find(ctx)
	if err != nil {
		var zero T
		if errors.Is(err, repo.ErrNotFound) {
			return zero, missing
		}
		return zero, err
	}
	return v, nil
}

func validated(v interface{ Validate() error }) error {
	return apperr.FromValidation(v.Validate())
}
