// Package xpgx marries squirrel builders to pgx/v5 row collection, so the
// store never touches raw SQL strings or row scanning.
package xpgx

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Sqlizer matches squirrel's builder output.
type Sqlizer interface {
	ToSql() (string, []interface{}, error)
}

// Querier is the subset of pgxpool.Pool the helpers need. Tests substitute
// an in-memory implementation.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Pool wraps a pgxpool.Pool for squirrel-built statements.
type Pool struct {
	*pgxpool.Pool
}

func NewPool(pool *pgxpool.Pool) *Pool {
	return &Pool{Pool: pool}
}

// Execx runs a builder that returns no rows.
func (p *Pool) Execx(ctx context.Context, q Sqlizer) (pgconn.CommandTag, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	return p.Exec(ctx, sql, args...)
}

// Getx collects exactly one row into T by db tag. Returns pgx.ErrNoRows when
// the query matches nothing.
func Getx[T any](ctx context.Context, q Querier, query Sqlizer) (*T, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByNameLax[T])
}

// Selectx collects all rows into a slice of *T by db tag. An empty result is
// an empty slice, not an error.
func Selectx[T any](ctx context.Context, q Querier, query Sqlizer) ([]*T, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByNameLax[T])
}
