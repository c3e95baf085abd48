// Package services contains the server-side business logic shared by both
// transports: accounts (UserService), the secret vault with its
// transactional record+tag writes (SecretService), ownership checks
// (AccessGuard) and encrypted exports to object storage (ExportService).
package services

import "context"

// PasswordHasher hashes and verifies login passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// SecretCipher seals secret payloads under a master passphrase.
type SecretCipher interface {
	Encrypt(plaintext, passphrase []byte) (blob, salt []byte, err error)
	Decrypt(blob, salt, passphrase []byte) ([]byte, error)
}

// TokenIssuer mints access tokens for a user id.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// Revoker invalidates the outstanding tokens of a user.
type Revoker interface {
	Revoke(ctx context.Context, userID string) error
}
