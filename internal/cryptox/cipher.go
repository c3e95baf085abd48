package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/dmitrijs2005/credvault/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	aesKeyLen = 32
	nonceLen  = 12
)

// SecretCipher encrypts secret payloads with AES-256-GCM under a key derived
// per operation from (passphrase, salt) with Argon2id.
//
// The stored blob is nonce(12) || sealed; the salt is returned separately
// and must be stored next to it. Records are bound to the KDF cost they
// were written with: changing Params makes existing records undecryptable.
type SecretCipher struct {
	params Params
}

func NewSecretCipher(p Params) (*SecretCipher, error) {
	p.KeyLen = aesKeyLen
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &SecretCipher{params: p}, nil
}

func (c *SecretCipher) deriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, c.params.Time, c.params.Memory, c.params.Threads, aesKeyLen)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Encrypt seals plaintext under passphrase with a fresh salt and nonce.
func (c *SecretCipher) Encrypt(plaintext, passphrase []byte) (blob, salt []byte, err error) {
	salt, err = common.GenerateRandByteArray(int(c.params.SaltLen))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", common.ErrInternal, err)
	}

	key := c.deriveKey(passphrase, salt)
	defer common.WipeByteArray(key)

	aead, err := newGCM(key)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", common.ErrInternal, err)
	}

	nonce, err := common.GenerateRandByteArray(nonceLen)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", common.ErrInternal, err)
	}

	blob = aead.Seal(nonce, nonce, plaintext, nil)
	return blob, salt, nil
}

// Decrypt opens a blob produced by Encrypt. Every integrity failure (wrong
// passphrase, wrong salt, altered or truncated blob) is ErrAuthenticationFailed.
func (c *SecretCipher) Decrypt(blob, salt, passphrase []byte) ([]byte, error) {
	if len(blob) < nonceLen {
		return nil, common.ErrAuthenticationFailed
	}

	key := c.deriveKey(passphrase, salt)
	defer common.WipeByteArray(key)

	aead, err := newGCM(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInternal, err)
	}

	plaintext, err := aead.Open(nil, blob[:nonceLen], blob[nonceLen:], nil)
	if err != nil {
		return nil, common.ErrAuthenticationFailed
	}
	return plaintext, nil
}
