package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/credvault/internal/dbx"
	"github.com/dmitrijs2005/credvault/internal/server/migrations"
	"github.com/dmitrijs2005/credvault/internal/server/repositories/secrets"
	"github.com/dmitrijs2005/credvault/internal/server/repositories/tags"
	"github.com/dmitrijs2005/credvault/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories and runs
// the embedded schema migrations.
type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Secrets(db dbx.DBTX) secrets.Repository {
	return secrets.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Tags(db dbx.DBTX) tags.Repository {
	return tags.NewPostgresRepository(db)
}

// gooseUpContext is a seam for tests.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
