package tags

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/dmitrijs2005/credvault/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func wrap(err error) error {
	return fmt.Errorf("%w: %w", common.ErrDatabase, err)
}

func (r *PostgresRepository) Add(ctx context.Context, secretID, content string) (bool, error) {
	query :=
		`INSERT INTO tags (secret_id, content)
		 VALUES ($1, $2)
		 ON CONFLICT (secret_id, content) DO NOTHING
		 RETURNING content`

	var inserted string
	err := r.db.QueryRowContext(ctx, query, secretID, content).Scan(&inserted)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	default:
		return false, wrap(err)
	}
}

func (r *PostgresRepository) Remove(ctx context.Context, secretID, content string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE secret_id = $1 AND content = $2`, secretID, content)
	if err != nil {
		return false, wrap(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, wrap(err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) DeleteAll(ctx context.Context, secretID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE secret_id = $1`, secretID); err != nil {
		return wrap(err)
	}
	return nil
}

func (r *PostgresRepository) ListBySecret(ctx context.Context, secretID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT content FROM tags WHERE secret_id = $1 ORDER BY content`, secretID)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, wrap(err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err)
	}
	return out, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) (map[string][]string, error) {
	query :=
		`SELECT t.secret_id, t.content
		 FROM tags t
		 JOIN secrets s ON s.id = t.secret_id
		 WHERE s.owner_id = $1
		 ORDER BY t.secret_id, t.content`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var id, c string
		if err := rows.Scan(&id, &c); err != nil {
			return nil, wrap(err)
		}
		out[id] = append(out[id], c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err)
	}
	return out, nil
}
