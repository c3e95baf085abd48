package models

import "time"

// Secret is a stored credential. Ciphertext is nonce||sealed; Salt feeds the
// key derivation and is stored next to it. The remaining fields are plain.
type Secret struct {
	ID          string
	OwnerID     string
	Ciphertext  []byte
	Salt        []byte
	Name        string
	Website     *string
	Username    *string
	Description *string
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SecretPatch is a partial update. Nil fields keep their stored value.
// Ciphertext and Salt are set together when the secret value changes.
// Tags, when non-nil, replaces the whole tag set.
type SecretPatch struct {
	Name        *string
	Ciphertext  []byte
	Salt        []byte
	Website     *string
	Username    *string
	Description *string
	Tags        []string
}

// ApplyTo merges the set columns of p into s. Tags are not touched.
func (p SecretPatch) ApplyTo(s *Secret) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Ciphertext != nil {
		s.Ciphertext = p.Ciphertext
		s.Salt = p.Salt
	}
	if p.Website != nil {
		s.Website = p.Website
	}
	if p.Username != nil {
		s.Username = p.Username
	}
	if p.Description != nil {
		s.Description = p.Description
	}
}
