package db

import (
	"context"
	_ "embed"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed schema.sql
var Schema string

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// New creates Queries over a connection or transaction
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Queries runs the engine's SQL against a DBTX
type Queries struct {
	db DBTX
}

// WithTx returns Queries bound to the transaction
func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

// GetDBTX returns the underlying database transaction or connection interface
func (q *Queries) GetDBTX() DBTX {
	return q.db
}

// Migrate applies the schema. Every statement is idempotent.
func (q *Queries) Migrate(ctx context.Context) error {
	_, err := q.db.Exec(ctx, Schema)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}
