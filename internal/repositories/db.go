package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/AdelereKehinde/Estate-management/internal/utils"
)

// DB is satisfied by both *pgxpool.Pool and pgx.Tx, so every repository can
// run either directly on the pool or inside a transaction.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Begin(ctx context.Context) (pgx.Tx, error)
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateError maps constraint violations onto the store sentinels in
// utils. Anything else is returned untouched.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", utils.ErrDuplicateKey, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", utils.ErrForeignKeyViolation, pgErr.ConstraintName)
		}
	}
	return err
}

/* ───────────── dynamic WHERE / paging ───────────── */

type queryBuilder struct {
	clauses []string
	args    []any
}

// add appends a clause; every "?" in it is bound to arg.
func (q *queryBuilder) add(clause string, arg any) {
	q.args = append(q.args, arg)
	q.clauses = append(q.clauses, strings.ReplaceAll(clause, "?", "$"+strconv.Itoa(len(q.args))))
}

func (q *queryBuilder) where() string {
	if len(q.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.clauses, " AND ")
}

func (q *queryBuilder) page(opts ListOptions) string {
	var sb strings.Builder
	if opts.Limit > 0 {
		q.args = append(q.args, opts.Limit)
		sb.WriteString(" LIMIT $" + strconv.Itoa(len(q.args)))
	}
	if opts.Offset > 0 {
		q.args = append(q.args, opts.Offset)
		sb.WriteString(" OFFSET $" + strconv.Itoa(len(q.args)))
	}
	return sb.String()
}

// collect drains rows through scan. No rows yields an empty, non-nil slice.
func collect[T any](rows pgx.Rows, scan func(pgx.Row) (*T, error)) ([]*T, error) {
	defer rows.Close()
	out := []*T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
