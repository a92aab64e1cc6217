package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/baharkarakas/contact-api/internal/api/httpx"
	"github.com/baharkarakas/contact-api/internal/apperr"
	"github.com/baharkarakas/contact-api/internal/models"
)

const TokenHeader = "X-API-TOKEN"

// Authenticator resolves an opaque session token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.User, error)
}

type AuthMiddleware struct {
	users Authenticator
}

func NewAuthMiddleware(users Authenticator) *AuthMiddleware {
	return &AuthMiddleware{users: users}
}

// Auth reads the token from X-API-TOKEN, or from "Authorization: Bearer"
// when that header is absent, and binds the owning user to the context.
func (m *AuthMiddleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFrom(r)
		if token == "" {
			httpx.WriteAppError(w, r, apperr.Unauthenticated("Unauthorized"))
			return
		}

		u, err := m.users.Authenticate(r.Context(), token)
		if err != nil {
			httpx.WriteAppError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
	})
}

func tokenFrom(r *http.Request) string {
	if t := strings.TrimSpace(r.Header.Get(TokenHeader)); t != "" {
		return t
	}
	ah := r.Header.Get("Authorization")
	if len(ah) > len("bearer ") && strings.EqualFold(ah[:len("bearer ")], "bearer ") {
		return strings.TrimSpace(ah[len("bearer "):])
	}
	return ""
}
