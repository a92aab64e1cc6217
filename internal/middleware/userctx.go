package middleware

import (
	"context"

	"github.com/baharkarakas/contact-api/internal/models"
)

type userKey struct{}

func WithUser(ctx context.Context, u models.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// UserFrom returns the user bound by Auth. ok is false outside authenticated routes.
func UserFrom(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(userKey{}).(models.User)
	return u, ok
}
