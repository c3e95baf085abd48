// Package auth issues and validates access tokens and extracts them from
// transport carriers (HTTP headers or gRPC metadata).
package auth

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the signed contents of an access token. Subject is the user id.
type Claims struct {
	jwt.RegisteredClaims
}

// KeySource exposes the signing key for the duration of fn.
type KeySource interface {
	Use(fn func(key []byte) error) error
}

// TokenService issues and validates HS256 tokens signed with the process key.
type TokenService struct {
	keys   KeySource
	window time.Duration
	now    func() time.Time
}

func NewTokenService(keys KeySource, window time.Duration) *TokenService {
	return &TokenService{keys: keys, window: window, now: time.Now}
}

// Window returns how long an issued token stays valid.
func (s *TokenService) Window() time.Duration { return s.window }

// Issue returns a token for subject valid over [now, now+window).
func (s *TokenService) Issue(subject string) (string, error) {
	now := s.now().Truncate(time.Second)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    common.TokenIssuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.window)),
		},
	})

	var signed string
	err := s.keys.Use(func(key []byte) error {
		var err error
		signed, err = token.SignedString(key)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("%w: sign token: %w", common.ErrInternal, err)
	}
	return signed, nil
}

// Validate checks signature, issuer and expiry. Every token failure is
// ErrInvalidToken.
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}

	var parseErr error
	err := s.keys.Use(func(key []byte) error {
		_, parseErr = jwt.ParseWithClaims(tokenString, claims,
			func(t *jwt.Token) (any, error) { return key, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(common.TokenIssuer),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(s.now),
		)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInternal, err)
	}
	if parseErr != nil {
		return nil, common.ErrInvalidToken
	}

	// Checked here as well as by the parser: valid only while now < exp.
	if !s.now().Before(claims.ExpiresAt.Time) || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
