// Package keystore holds the process-lifetime token signing key inside a
// memguard enclave. The key is fixed at construction and never changes.
package keystore

import (
	"errors"
	"fmt"

	"github.com/awnumar/memguard"
)

// GeneratedKeySize is the length of a key generated when none is configured.
const GeneratedKeySize = 32

// KeyStore seals the signing key in an encrypted enclave and only exposes
// it for the duration of a Use callback.
type KeyStore struct {
	enclave   *memguard.Enclave
	generated bool
}

// New seals secret. An empty secret makes New generate GeneratedKeySize
// random bytes instead.
func New(secret string) (*KeyStore, error) {
	if secret == "" {
		enclave := memguard.NewEnclaveRandom(GeneratedKeySize)
		if enclave == nil {
			return nil, errors.New("keystore: failed to generate key")
		}
		return &KeyStore{enclave: enclave, generated: true}, nil
	}

	// NewEnclave wipes its argument; hand it a copy.
	buf := []byte(secret)
	enclave := memguard.NewEnclave(buf)
	if enclave == nil {
		return nil, errors.New("keystore: failed to seal key")
	}
	return &KeyStore{enclave: enclave}, nil
}

// Generated reports whether the key was generated rather than configured.
func (k *KeyStore) Generated() bool { return k.generated }

// Use opens the enclave, passes the key to fn and destroys the plaintext
// copy when fn returns. fn must not retain key.
func (k *KeyStore) Use(fn func(key []byte) error) error {
	buf, err := k.enclave.Open()
	if err != nil {
		return fmt.Errorf("keystore: open enclave: %w", err)
	}
	defer buf.Destroy()

	return fn(buf.Bytes())
}
