package storage

import "errors"

// Common storage errors
var (
	// ErrNotFound indicates that the requested row does not exist
	ErrNotFound = errors.New("not found")

	// ErrUserNotFound indicates that the user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that a user with this email already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrTokenNotFound indicates that the refresh token row was not found
	ErrTokenNotFound = errors.New("refresh token not found")

	// ErrInvalidQuery indicates that a list query referenced an unknown
	// column or used an invalid direction
	ErrInvalidQuery = errors.New("invalid list query")
)
