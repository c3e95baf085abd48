package dbx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: UniqueViolation, ConstraintName: "users_email_key"}

	assert.True(t, IsUniqueViolation(unique))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert user: %w", unique)))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(nil))
}
