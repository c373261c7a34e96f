// Package apperr defines the error kinds returned by content operations and
// their mapping onto HTTP status codes.
//
// Operations return *Error values; HTTP handlers translate them with
// HTTPStatus and show Message to the caller. The wrapped Err is for logs only.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an operation failure.
type Kind int

const (
	// KindUnknown is any error that was not produced by this package.
	KindUnknown Kind = iota
	KindInvalidInput
	KindInvalidType
	KindUnauthenticated
	KindUnauthorized
	KindConflict
	KindNotFound
	KindRateLimited
	KindUpstreamFailure
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindInvalidType:
		return "invalid_type"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindRateLimited:
		return "rate_limited"
	case KindUpstreamFailure:
		return "upstream_failure"
	default:
		return "unknown"
	}
}

// Error is a classified operation error.
type Error struct {
	Kind    Kind
	Message string // safe to show to clients
	Err     error  // underlying cause, never sent to clients
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// InvalidInput reports a missing or malformed field.
func InvalidInput(msg string) error {
	return &Error{Kind: KindInvalidInput, Message: msg}
}

// InvalidType reports a value outside an allow-list.
func InvalidType(msg string) error {
	return &Error{Kind: KindInvalidType, Message: msg}
}

// Unauthenticated reports bad credentials at login.
func Unauthenticated(msg string) error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

// Unauthorized reports a missing, expired or invalid token.
func Unauthorized(msg string) error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// Conflict reports a unique-key collision.
func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Message: msg}
}

// NotFound reports that the targeted document does not exist.
func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// RateLimited reports that the caller must wait before retrying.
func RateLimited(msg string) error {
	return &Error{Kind: KindRateLimited, Message: msg}
}

// Upstream wraps a storage or database failure behind a safe message.
func Upstream(msg string, err error) error {
	return &Error{Kind: KindUpstreamFailure, Message: msg, Err: err}
}

// KindOf returns the kind of err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err has the given kind.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// Message returns the client-safe message for err. Unclassified errors get a
// generic message so internal details never leak.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "Internal server error"
}

// HTTPStatus maps err onto a response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInvalidInput, KindInvalidType:
		return http.StatusBadRequest
	case KindUnauthenticated, KindUnauthorized:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
