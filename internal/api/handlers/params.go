package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/contact-api/internal/api/httpx"
	"github.com/baharkarakas/contact-api/internal/apperr"
	"github.com/baharkarakas/contact-api/internal/middleware"
	"github.com/baharkarakas/contact-api/internal/models"
	"github.com/baharkarakas/contact-api/internal/validate"
)

// pathID parses a positive integer URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation(validate.Errs{{Field: name, Msg: "must be a positive integer"}})
	}
	return id, nil
}

// queryInt returns 0 when the parameter is absent.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation(validate.Errs{{Field: name, Msg: "must be an integer"}})
	}
	return n, nil
}

func queryString(r *http.Request, name string) *string {
	q := r.URL.Query()
	if !q.Has(name) {
		return nil
	}
	v := q.Get(name)
	return &v
}

// currentUser writes a 401 and reports false when Auth did not run.
func currentUser(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	u, ok := middleware.UserFrom(r.Context())
	if !ok {
		httpx.WriteAppError(w, r, apperr.Unauthenticated("Unauthorized"))
	}
	return u, ok
}
