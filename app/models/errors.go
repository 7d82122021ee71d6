package models

import "errors"

// ErrMalformedID is returned when an id does not parse as a store key.
var ErrMalformedID = errors.New("malformatted id")

// ValidationError reports input that breaks a field rule. Message is safe to show to clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given message
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}
