// Package apperr classifies failures so handlers can map them to HTTP
// status codes without inspecting storage errors. Every failed
// precondition in the core surfaces as one of these kinds.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	Authentication Kind = iota + 1 // missing/invalid/expired credential
	Authorization                  // authenticated but not allowed
	NotFound                       // resource id unknown
	Conflict                       // duplicate key or invalid transition
	Validation                     // business rule rejected the request
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error (typically from the store) while
// keeping it available through errors.Unwrap.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the classification of err, or 0 if err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// HTTPStatus maps an error to its response status class. Unclassified
// errors are treated as internal.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case Authentication:
		return http.StatusUnauthorized
	case Authorization:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Validation:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
