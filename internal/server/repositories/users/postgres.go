package users

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
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return common.ErrNotFound
	case dbx.IsUniqueViolation(err):
		return common.ErrUserAlreadyExists
	default:
		return fmt.Errorf("%w: %w", common.ErrDatabase, err)
	}
}

// Create inserts user; user.ID must already be set. CreatedAt is filled in.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) error {
	query :=
		`INSERT INTO users (id, email, username, password_hash, password_hint)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Email, user.Username, user.PasswordHash, user.PasswordHint).Scan(&user.CreatedAt)
	if err != nil {
		return wrap(err)
	}
	return nil
}

const selectUser = `SELECT id, email, username, password_hash, password_hint, created_at FROM users`

func (r *PostgresRepository) get(ctx context.Context, where string, arg any) (*models.User, error) {
	u := &models.User{}
	err := r.db.QueryRowContext(ctx, selectUser+" WHERE "+where+" = $1", arg).
		Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.PasswordHint, &u.CreatedAt)
	if err != nil {
		return nil, wrap(err)
	}
	return u, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.get(ctx, "id", id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.get(ctx, "email", email)
}

// Update writes every mutable column of user.
func (r *PostgresRepository) Update(ctx context.Context, user *models.User) error {
	query :=
		`UPDATE users
		 SET email = $2, username = $3, password_hash = $4, password_hint = $5
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Username, user.PasswordHash, user.PasswordHint)
	if err != nil {
		return wrap(err)
	}
	return requireOneRow(res)
}

// Delete removes the user; secrets and tags go with it (ON DELETE CASCADE).
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return wrap(err)
	}
	return requireOneRow(res)
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return wrap(err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
