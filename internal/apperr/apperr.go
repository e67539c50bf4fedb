// Package apperr defines the closed set of error kinds the service surfaces
// at its HTTP boundary. Every failure that reaches a client is one of these
// kinds; internal causes are kept for server-side logging only.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindInvalidToken
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// Error carries a kind, a client-safe message and an optional internal cause.
// The cause is never serialized to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

func InvalidToken() *Error {
	return &Error{Kind: KindInvalidToken, Message: "Invalid token"}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Internal wraps a store, query or crypto failure. The wrapped error is logged
// server-side; clients only ever see the generic message.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal server error", Err: err}
}

// KindOf extracts the kind from err. Anything that is not an *Error is
// treated as internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
