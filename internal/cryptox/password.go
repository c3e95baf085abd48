package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/credvault/internal/common"
	"golang.org/x/crypto/argon2"
)

const algorithmID = "argon2id"

// PasswordHasher hashes login passwords into self-describing PHC strings:
//
//	$argon2id$v=19$m=19456,t=2,p=1$<salt b64>$<hash b64>
//
// Verification reads the cost from the encoded hash, so hashes stay valid
// after the configured cost changes.
type PasswordHasher struct {
	params Params
}

func NewPasswordHasher(p Params) (*PasswordHasher, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &PasswordHasher{params: p}, nil
}

// Hash returns the encoded Argon2id hash of password under a fresh salt.
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt, err := common.GenerateRandByteArray(int(h.params.SaltLen))
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrHashing, err)
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)

	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithmID,
		argon2.Version,
		h.params.Memory,
		h.params.Time,
		h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether password matches encoded. A wrong password is
// (false, nil); an encoded value that cannot be parsed is ErrHashing.
func (h *PasswordHasher) Verify(password, encoded string) (bool, error) {
	phc, err := parsePHC(encoded)
	if err != nil {
		return false, fmt.Errorf("%w: %w", common.ErrHashing, err)
	}

	computed := argon2.IDKey([]byte(password), phc.salt, phc.time, phc.memory, phc.threads, uint32(len(phc.hash)))
	defer common.WipeByteArray(computed)

	return subtle.ConstantTimeCompare(computed, phc.hash) == 1, nil
}

type phcHash struct {
	time    uint32
	memory  uint32
	threads uint8
	salt    []byte
	hash    []byte
}

func parsePHC(encoded string) (*phcHash, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, fmt.Errorf("invalid PHC format")
	}
	if parts[1] != algorithmID {
		return nil, fmt.Errorf("unsupported algorithm %q", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, fmt.Errorf("unsupported argon2 version %q", parts[2])
	}

	out := &phcHash{}
	seen := 0
	for _, kv := range strings.Split(parts[3], ",") {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("invalid parameter %q", kv)
		}
		switch k {
		case "m":
			n, err := strconv.ParseUint(v, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid memory parameter: %w", err)
			}
			out.memory = uint32(n)
		case "t":
			n, err := strconv.ParseUint(v, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid time parameter: %w", err)
			}
			out.time = uint32(n)
		case "p":
			n, err := strconv.ParseUint(v, 10, 8)
			if err != nil {
				return nil, fmt.Errorf("invalid threads parameter: %w", err)
			}
			out.threads = uint8(n)
		default:
			return nil, fmt.Errorf("unsupported parameter %q", k)
		}
		seen++
	}
	if seen != 3 || out.time < 1 || out.threads < 1 || out.memory < 8*uint32(out.threads) {
		return nil, fmt.Errorf("invalid argon2 parameters %q", parts[3])
	}

	var err error
	if out.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, fmt.Errorf("invalid salt encoding: %w", err)
	}
	if len(out.salt) < minSaltLen {
		return nil, fmt.Errorf("salt too short")
	}
	if out.hash, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, fmt.Errorf("invalid hash encoding: %w", err)
	}
	if len(out.hash) == 0 {
		return nil, fmt.Errorf("empty hash")
	}

	return out, nil
}
