package repositories

import "errors"

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateUsername = errors.New("username already taken")
)
