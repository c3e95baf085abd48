package common

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/awnumar/memguard"
)

// GenerateRandByteArray returns size bytes from the system CSPRNG.
func GenerateRandByteArray(size int) ([]byte, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("read random bytes: %w", err)
	}
	return b, nil
}

// MakeRandHexString generates size random bytes and returns them hex-encoded
// (so the result is 2*size characters long).
func MakeRandHexString(size int) (string, error) {
	b, err := GenerateRandByteArray(size)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// WipeByteArray overwrites b with zeros. Nil is a no-op.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	memguard.WipeBytes(b)
}
