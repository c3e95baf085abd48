package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/credvault/internal/common"
)

// RevocationChecker reports whether a token of userID issued at issuedAt
// was revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error)
}

// Authenticator turns a transport carrier into a caller identity.
type Authenticator struct {
	tokens  *TokenService
	revoked RevocationChecker
}

func NewAuthenticator(tokens *TokenService, revoked RevocationChecker) *Authenticator {
	return &Authenticator{tokens: tokens, revoked: revoked}
}

// Authenticate extracts and validates the bearer token. It returns the
// claims on success, ErrInvalidRequest for a missing or malformed entry and
// ErrInvalidToken for a bad, expired or revoked token.
func (a *Authenticator) Authenticate(ctx context.Context, c Carrier) (*Claims, error) {
	raw, err := ExtractBearer(c)
	if err != nil {
		return nil, err
	}

	claims, err := a.tokens.Validate(raw)
	if err != nil {
		return nil, err
	}

	if a.revoked != nil {
		var issuedAt time.Time
		if claims.IssuedAt != nil {
			issuedAt = claims.IssuedAt.Time
		}
		revoked, err := a.revoked.IsRevoked(ctx, claims.Subject, issuedAt)
		if err != nil {
			return nil, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return nil, common.ErrInvalidToken
		}
	}

	return claims, nil
}
