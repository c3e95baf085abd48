// Package secrets persists encrypted secret records. Ownership is not
// filtered here; callers load a record and check its OwnerID.
package secrets

import (
	"context"

	"github.com/dmitrijs2005/credvault/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, s *models.Secret) error
	GetByID(ctx context.Context, id string) (*models.Secret, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*models.Secret, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Secret, error)
	Update(ctx context.Context, s *models.Secret) error
	Delete(ctx context.Context, id string) error
}
