// Package cryptox implements the two Argon2-based primitives of the vault:
// the PasswordHasher for login credentials and the SecretCipher that
// encrypts stored secrets under a key derived from a master passphrase.
//
// The two are configured independently; each has its own Params.
package cryptox

import (
	"fmt"

	"github.com/dmitrijs2005/credvault/internal/common"
)

const (
	minSaltLen = 16
	minKeyLen  = 16
)

// Params is an Argon2id cost configuration. Memory is in KiB.
type Params struct {
	Time    uint32 `json:"time"`
	Memory  uint32 `json:"memory"`
	Threads uint8  `json:"threads"`
	SaltLen uint32 `json:"salt_len"`
	KeyLen  uint32 `json:"key_len"`
}

// DefaultPasswordParams follows the OWASP Argon2id baseline
// (19 MiB, two passes, one lane).
func DefaultPasswordParams() Params {
	return Params{Time: 2, Memory: 19 * 1024, Threads: 1, SaltLen: 16, KeyLen: 32}
}

// DefaultKDFParams is the cost of deriving a secret's encryption key from
// the master passphrase. KeyLen is always 32 (AES-256).
func DefaultKDFParams() Params {
	return Params{Time: 1, Memory: 64 * 1024, Threads: 4, SaltLen: 16, KeyLen: 32}
}

// Validate reports whether p can drive argon2.IDKey safely.
func (p Params) Validate() error {
	switch {
	case p.Time < 1:
		return fmt.Errorf("%w: argon2 time must be >= 1", common.ErrInvalidRequest)
	case p.Threads < 1:
		return fmt.Errorf("%w: argon2 threads must be >= 1", common.ErrInvalidRequest)
	case p.Memory < 8*uint32(p.Threads):
		return fmt.Errorf("%w: argon2 memory must be >= 8*threads KiB", common.ErrInvalidRequest)
	case p.SaltLen < minSaltLen:
		return fmt.Errorf("%w: salt length must be >= %d", common.ErrInvalidRequest, minSaltLen)
	case p.KeyLen < minKeyLen:
		return fmt.Errorf("%w: key length must be >= %d", common.ErrInvalidRequest, minKeyLen)
	}
	return nil
}
