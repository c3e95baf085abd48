// Package repomanager vends repositories bound to a DBTX, so services can
// run the same repositories against the pool or inside a transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/credvault/internal/dbx"
	"github.com/dmitrijs2005/credvault/internal/server/repositories/secrets"
	"github.com/dmitrijs2005/credvault/internal/server/repositories/tags"
	"github.com/dmitrijs2005/credvault/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Secrets(db dbx.DBTX) secrets.Repository
	Tags(db dbx.DBTX) tags.Repository
}
