package services

import (
	"fmt"

	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/dmitrijs2005/credvault/internal/server/config"
	"github.com/dmitrijs2005/credvault/internal/server/models"
	"github.com/google/uuid"
)

// AccessGuard decides whether a caller may touch a record. The answer for
// a record owned by someone else is fixed by the configured policy.
type AccessGuard struct {
	notOwner error
}

func NewAccessGuard(policy string) (*AccessGuard, error) {
	switch policy {
	case config.OwnershipHide, "":
		return &AccessGuard{notOwner: common.ErrNotFound}, nil
	case config.OwnershipDeny:
		return &AccessGuard{notOwner: common.ErrForbidden}, nil
	default:
		return nil, fmt.Errorf("unknown ownership policy %q", policy)
	}
}

// Check returns nil when callerID owns s.
func (g *AccessGuard) Check(callerID string, s *models.Secret) error {
	if callerID == "" {
		return common.ErrInvalidToken
	}
	if s.OwnerID != callerID {
		return g.notOwner
	}
	return nil
}

// parseID rejects ids that are not UUIDs before any query is made.
func parseID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: invalid id %q", common.ErrInvalidRequest, id)
	}
	return u.String(), nil
}
