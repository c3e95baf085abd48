package secrets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/dmitrijs2005/credvault/internal/dbx"
	"github.com/dmitrijs2005/credvault/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func wrap(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrNotFound
	}
	return fmt.Errorf("%w: %w", common.ErrDatabase, err)
}

const selectSecret = `SELECT id, owner_id, ciphertext, salt, name, website, username, description, created_at, updated_at
		 FROM secrets`

type scanner interface {
	Scan(dest ...any) error
}

func scanSecret(row scanner) (*models.Secret, error) {
	s := &models.Secret{}
	err := row.Scan(&s.ID, &s.OwnerID, &s.Ciphertext, &s.Salt, &s.Name,
		&s.Website, &s.Username, &s.Description, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts s; s.ID must already be set. Timestamps are filled in.
func (r *PostgresRepository) Create(ctx context.Context, s *models.Secret) error {
	query :=
		`INSERT INTO secrets (id, owner_id, ciphertext, salt, name, website, username, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		s.ID, s.OwnerID, s.Ciphertext, s.Salt, s.Name, s.Website, s.Username, s.Description).
		Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return wrap(err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Secret, error) {
	s, err := scanSecret(r.db.QueryRowContext(ctx, selectSecret+` WHERE id = $1`, id))
	if err != nil {
		return nil, wrap(err)
	}
	return s, nil
}

func (r *PostgresRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Secret, error) {
	s, err := scanSecret(r.db.QueryRowContext(ctx, selectSecret+` WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, wrap(err)
	}
	return s, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Secret, error) {
	rows, err := r.db.QueryContext(ctx, selectSecret+` WHERE owner_id = $1 ORDER BY name, created_at`, ownerID)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()

	var out []*models.Secret
	for rows.Next() {
		s, err := scanSecret(rows)
		if err != nil {
			return nil, wrap(err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err)
	}
	return out, nil
}

// Update writes every mutable column of s and bumps updated_at.
func (r *PostgresRepository) Update(ctx context.Context, s *models.Secret) error {
	query :=
		`UPDATE secrets
		 SET ciphertext = $2, salt = $3, name = $4, website = $5, username = $6, description = $7, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		s.ID, s.Ciphertext, s.Salt, s.Name, s.Website, s.Username, s.Description).Scan(&s.UpdatedAt)
	if err != nil {
		return wrap(err)
	}
	return nil
}

// Delete removes the record; its tags go with it (ON DELETE CASCADE).
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM secrets WHERE id = $1`, id)
	if err != nil {
		return wrap(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrap(err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
