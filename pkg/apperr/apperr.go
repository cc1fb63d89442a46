package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind tags a domain error so the HTTP boundary can map it to a status code
// without inspecting message text.
type Kind int

const (
	KindInternal Kind = iota
	KindFormat
	KindPasswordMismatch
	KindDuplicate
	KindIdentityLookup
	KindInvalidCredentials
	KindNotFound
	KindPermission
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Format(message string) *Error { return New(KindFormat, message) }

func PasswordMismatch() *Error {
	return New(KindPasswordMismatch, "passwords do not match")
}

// Duplicate names the identifier that collided; field is a JSON field name.
func Duplicate(field string) *Error {
	return New(KindDuplicate, fmt.Sprintf("the %s is already registered", field))
}

// IdentityLookup carries a user-safe message; the upstream cause is kept for
// logging only and must never reach the client.
func IdentityLookup(err error) *Error {
	return Wrap(KindIdentityLookup, "could not verify the ID, check it is correct", err)
}

// InvalidCredentials uses one message for both unknown identifier and wrong
// password so login responses do not reveal which identifiers exist.
func InvalidCredentials() *Error {
	return New(KindInvalidCredentials, "incorrect username or password")
}

func NotFound(what string) *Error {
	return New(KindNotFound, what+" not found")
}

func Permission(message string) *Error { return New(KindPermission, message) }

// KindOf returns the tagged kind, or KindInternal for untagged errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Status maps an error to the HTTP status code and the message that is safe
// to return to the client. Untagged errors become a generic 500.
func Status(err error) (int, string) {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError, "internal error, please try again"
	}
	switch e.Kind {
	case KindFormat, KindPasswordMismatch, KindIdentityLookup:
		return http.StatusBadRequest, e.Message
	case KindDuplicate:
		return http.StatusConflict, e.Message
	case KindInvalidCredentials:
		return http.StatusUnauthorized, e.Message
	case KindNotFound:
		return http.StatusNotFound, e.Message
	case KindPermission:
		return http.StatusForbidden, e.Message
	default:
		return http.StatusInternalServerError, "internal error, please try again"
	}
}
