package services

import "errors"

var (
	// ErrUnauthorized is returned when a valid caller tries to change a post it does not own.
	ErrUnauthorized = errors.New("only the creator can delete or update posts")
	// ErrInvalidCredentials is returned by login for an unknown user or a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
