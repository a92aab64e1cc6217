package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/baharkarakas/contact-api/internal/apperr"
)

// RequestIDHeader carries the per-request id set by middleware.RequestID.
const RequestIDHeader = "X-Request-Id"

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

type errorEnvelope struct {
	Errors APIError `json:"errors"`
}

type dataEnvelope struct {
	Data any `json:"data"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData wraps v as {"data": v}.
func WriteData(w http.ResponseWriter, status int, v any) {
	WriteJSON(w, status, dataEnvelope{Data: v})
}

func WriteError(w http.ResponseWriter, status int, code, msg string, details any) {
	WriteJSON(w, status, errorEnvelope{Errors: APIError{
		Message: msg,
		Code:    code,
		Details: details,
	}})
}

// WriteAppError answers with the status carried by an *apperr.Error. Any
// other error is logged and hidden behind a generic 500.
func WriteAppError(w http.ResponseWriter, r *http.Request, err error) {
	e, ok := apperr.As(err)
	if !ok {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", w.Header().Get(RequestIDHeader),
			"err", err,
		)
		e = apperr.Internal()
	} else {
		slog.DebugContext(r.Context(), "request rejected",
			"path", r.URL.Path,
			"code", e.Code,
			"msg", e.Message,
		)
	}
	WriteError(w, e.HTTPStatus, string(e.Code), e.Message, e.Details)
}

// MaxBodyBytes caps request bodies read by DecodeJSON.
const MaxBodyBytes = 1 << 20

// DecodeJSON reads exactly one JSON value from the request body into dst.
// An empty, oversized, malformed or trailing-data body is a 400.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return apperr.BadRequest("request body is required")
		case errors.As(err, &tooLarge):
			return apperr.BadRequest("request body too large")
		}
		return apperr.BadRequest("malformed JSON body")
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperr.BadRequest("request body must hold a single JSON value")
	}
	return nil
}
