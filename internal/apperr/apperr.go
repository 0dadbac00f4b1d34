// Package apperr defines the error taxonomy shared by services and handlers.
// Every business-rule violation is one of the kinds below; handlers map the
// kind to an HTTP status in exactly one place so internal storage errors are
// never surfaced verbatim.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	// Internal is an infrastructure failure (record store unavailable,
	// unexpected storage error). Callers may retry; business errors never
	// carry this kind.
	Internal Kind = iota
	// NotFound means a referenced entity is absent.
	NotFound
	// Forbidden means the principal lacks the role or ownership for the action.
	Forbidden
	// InvalidState means the entity exists but its state disallows the action.
	InvalidState
	// Conflict is a uniqueness violation, e.g. duplicate email or coupon code.
	Conflict
	// Unauthenticated means the credential or token is missing or invalid.
	Unauthenticated
)

type Error struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *Error) Unwrap() error { return e.Err }

func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: NotFound, Reason: fmt.Sprintf(format, args...)}
}

func Forbiddenf(format string, args ...interface{}) *Error {
	return &Error{Kind: Forbidden, Reason: fmt.Sprintf(format, args...)}
}

func InvalidStatef(format string, args ...interface{}) *Error {
	return &Error{Kind: InvalidState, Reason: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...interface{}) *Error {
	return &Error{Kind: Conflict, Reason: fmt.Sprintf(format, args...)}
}

func Unauthenticatedf(format string, args ...interface{}) *Error {
	return &Error{Kind: Unauthenticated, Reason: fmt.Sprintf(format, args...)}
}

// Internalf wraps an infrastructure error with a caller-safe reason string.
func Internalf(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: Internal, Reason: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of err, or Internal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Reason returns the user-visible reason string for err. Unclassified
// errors get a generic message so internal details do not leak.
func Reason(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return "internal server error"
}

// HTTPStatus maps an error kind to its stable HTTP status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case NotFound:
		return http.StatusNotFound
	case Forbidden:
		return http.StatusForbidden
	case InvalidState:
		return http.StatusBadRequest
	case Conflict:
		return http.StatusConflict
	case Unauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
