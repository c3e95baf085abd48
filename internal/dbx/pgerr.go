package dbx

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// UniqueViolation is the Postgres SQLSTATE of a unique constraint violation.
const UniqueViolation = "23505"

// IsUniqueViolation reports whether err carries a Postgres unique violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == UniqueViolation
}
