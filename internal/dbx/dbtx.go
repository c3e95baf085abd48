// Package dbx provides the small database/sql abstractions shared by
// repositories: DBTX, satisfied by both *sql.DB and *sql.Tx, and WithTx.
package dbx

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/credvault/internal/common"
)

// DBTX is the subset of database/sql used by the repositories.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxFunc is the unit of work executed by WithTx.
type TxFunc func(ctx context.Context, tx DBTX) error

// WithTx runs fn inside a transaction. It commits when fn returns nil and
// rolls back when fn returns an error or panics; panics are rethrown after
// the rollback. Begin and commit failures wrap common.ErrDatabase.
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    _, err := tx.ExecContext(ctx, "DELETE FROM tags WHERE secret_id = $1", id)
//	    return err
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn TxFunc) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %w", common.ErrDatabase, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = fmt.Errorf("%w: commit tx: %w", common.ErrDatabase, cerr)
		}
	}()

	return fn(ctx, tx)
}
