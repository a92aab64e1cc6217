// Package apperr is the error taxonomy shared by services and the HTTP layer.
// Services return *Error for conditions the caller can correct; anything else
// is treated as internal.
package apperr

import (
	"errors"
	"net/http"

	"github.com/baharkarakas/contact-api/internal/validate"
)

type Code string

const (
	CodeValidation      Code = "validation_error"
	CodeUnauthenticated Code = "unauthenticated"
	CodeNotFound        Code = "not_found"
	CodeConflict        Code = "conflict"
	CodeInternal        Code = "internal_error"
)

type Error struct {
	Code       Code
	Message    string
	HTTPStatus int
	Details    any
}

func (e *Error) Error() string { return string(e.Code) + ": " + e.Message }

// Is matches on Code so errors.Is(err, apperr.ErrNotFound) works for any message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrValidation      = &Error{Code: CodeValidation}
	ErrUnauthenticated = &Error{Code: CodeUnauthenticated}
	ErrNotFound        = &Error{Code: CodeNotFound}
	ErrConflict        = &Error{Code: CodeConflict}
)

func Validation(errs validate.Errs) *Error {
	return &Error{Code: CodeValidation, Message: "invalid request", HTTPStatus: http.StatusBadRequest, Details: errs}
}

// BadRequest is a validation failure without field detail, e.g. an unreadable body.
func BadRequest(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg, HTTPStatus: http.StatusBadRequest}
}

func Unauthenticated(msg string) *Error {
	return &Error{Code: CodeUnauthenticated, Message: msg, HTTPStatus: http.StatusUnauthorized}
}

func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg, HTTPStatus: http.StatusNotFound}
}

func Conflict(msg string) *Error {
	return &Error{Code: CodeConflict, Message: msg, HTTPStatus: http.StatusConflict}
}

func Internal() *Error {
	return &Error{Code: CodeInternal, Message: "internal error", HTTPStatus: http.StatusInternalServerError}
}

// FromValidation turns a validate.Checker result into a validation error.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}
	var errs validate.Errs
	if errors.As(err, &errs) {
		return Validation(errs)
	}
	return BadRequest(err.Error())
}

// As extracts the *Error from err. ok is false for errors outside the taxonomy.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) && e.HTTPStatus != 0 {
		return e, true
	}
	return nil, false
}
