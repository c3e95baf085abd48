// Package models holds the server-side domain records.
package models

import "time"

// User is an account. PasswordHash is a self-describing Argon2id string;
// PasswordHint is stored in plaintext and never used cryptographically.
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	PasswordHint *string
	CreatedAt    time.Time
}

// UserPatch holds the fields of a profile update. Nil fields are kept.
type UserPatch struct {
	Email        *string
	Username     *string
	PasswordHash *string
	PasswordHint *string
}

func (p UserPatch) Empty() bool {
	return p.Email == nil && p.Username == nil && p.PasswordHash == nil && p.PasswordHint == nil
}

// ApplyTo merges the set fields of p into u.
func (p UserPatch) ApplyTo(u *User) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.PasswordHint != nil {
		u.PasswordHint = p.PasswordHint
	}
}
