package client

import (
	"errors"

	"github.com/dmitrijs2005/credvault/internal/common"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotLoggedIn  = errors.New("not logged in")
)

// LoginFailedError is returned by Login when the credentials are rejected.
type LoginFailedError struct {
	Hint *string
}

func (e *LoginFailedError) Error() string {
	return common.ErrInvalidUsernameOrPassword.Error()
}

func (e *LoginFailedError) Unwrap() error {
	return common.ErrInvalidUsernameOrPassword
}
