// Package common defines shared constants and sentinel errors used across
// the server, transports and client of credvault. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Request validation. Returned before any I/O is attempted.
	ErrInvalidRequest = errors.New("invalid request")

	// Authentication errors. A token failing on signature and one failing on
	// expiry both yield ErrInvalidToken.
	ErrInvalidUsernameOrPassword = errors.New("invalid username or password")
	ErrInvalidToken              = errors.New("invalid token")
	ErrAuthenticationFailed      = errors.New("authentication failed")

	// Ownership and existence.
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrUserAlreadyExists = errors.New("user already exists")

	// Infrastructure errors.
	ErrDatabase      = errors.New("database error")
	ErrObjectStorage = errors.New("object storage error")
	ErrHashing       = errors.New("hashing error")
	ErrInternal      = errors.New("internal error")
)
