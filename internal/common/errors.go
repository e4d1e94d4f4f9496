// Package common holds the error taxonomy shared by repositories, services and handlers.
package common

import (
	"errors"
	"strings"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden access")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("already exists")
	ErrInternal        = errors.New("internal error")

	// ErrUnavailable is returned when an optional collaborator (processor, uploader,
	// ledger) is not configured for this deployment.
	ErrUnavailable = errors.New("service unavailable")
)

// Error carries a client-facing message on top of one of the sentinel kinds above.
type Error struct {
	Kind    error
	Message string
	Fields  []string
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Fields, ", ")
}

func (e *Error) Unwrap() error { return e.Kind }

// New returns an error of the given kind with a message that is safe to show to clients.
func New(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Missing reports absent required fields as ErrInvalidInput.
func Missing(message string, fields ...string) error {
	return &Error{Kind: ErrInvalidInput, Message: message, Fields: fields}
}

// PublicMessage returns the message a client may see for err. Errors that carry no
// explicit message fall back to the sentinel text, except internal failures which
// are never described.
func PublicMessage(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	for _, kind := range []error{ErrInvalidInput, ErrUnauthenticated, ErrForbidden, ErrNotFound, ErrConflict, ErrUnavailable} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return fallback
}
