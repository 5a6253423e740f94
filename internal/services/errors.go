package services

import (
	"errors"
	"fmt"

	"github.com/virtualhotel/hotel-backend/internal/database"
)

// Domain error kinds. Handlers map them onto HTTP status codes with errors.Is.
var (
	ErrNotFound     = database.ErrNotFound
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
)

// Error is a domain error with a message fit for API clients
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func invalidInput(format string, args ...interface{}) error {
	return &Error{Kind: ErrInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func conflict(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}
