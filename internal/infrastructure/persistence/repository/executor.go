package repository

import (
	"context"
	"database/sql"

	"github.com/lwazim/claim-workflow/internal/infrastructure/persistence/sqlite"
)

// executor is satisfied by both *sql.DB and *sql.Tx so repository methods
// transparently join an ambient transaction.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// executorFor returns the transaction from the context when one is active,
// otherwise the plain connection.
func executorFor(ctx context.Context, db *sql.DB) executor {
	if tx := sqlite.ExtractTx(ctx); tx != nil {
		return tx
	}
	return db
}
