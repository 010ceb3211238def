// Package apperr defines the application error taxonomy and its mapping to
// HTTP responses. Every failure that reaches the HTTP boundary is rendered as
// a JSON envelope {code, message}.
package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	NotFound Kind = iota
	Unauthorized
	Unauthenticated
	Validation
	Internal
)

// Error carries a kind plus a client-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// HTTPStatus maps the error kind to a response status code. Unauthenticated
// renders as 403 and Unauthorized as 401; clients depend on this mapping.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case NotFound:
		return http.StatusNotFound
	case Unauthenticated:
		return http.StatusForbidden
	case Unauthorized:
		return http.StatusUnauthorized
	case Validation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Write renders err as the JSON error envelope. Errors that are not an
// *Error are masked as a generic 500.
func Write(w http.ResponseWriter, err error) {
	e := &Error{}
	if !errors.As(err, &e) {
		e = &Error{Kind: Internal, Message: "Unhandled rejection"}
	}
	WriteStatus(w, e.HTTPStatus(), e.Message)
}

// WriteStatus renders the error envelope with an explicit status code, for
// framework-level rejections outside the taxonomy (405 and the like).
func WriteStatus(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Code: status, Message: message})
}
