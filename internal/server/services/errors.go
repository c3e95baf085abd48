package services

import "github.com/dmitrijs2005/credvault/internal/common"

// LoginError is returned by Login for any credential mismatch. Hint is set
// only when hints are exposed and the account exists.
type LoginError struct {
	Hint *string
}

func (e *LoginError) Error() string { return common.ErrInvalidUsernameOrPassword.Error() }

func (e *LoginError) Unwrap() error { return common.ErrInvalidUsernameOrPassword }
