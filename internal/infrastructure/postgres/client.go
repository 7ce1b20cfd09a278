package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// executor is satisfied by both *pgxpool.Pool and pgx.Tx.
type executor interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PGClient implements Client on top of pgx.
type PGClient struct {
	db   executor
	inTx bool
}

func NewClient(pool *pgxpool.Pool) *PGClient {
	return &PGClient{db: pool}
}

func (c *PGClient) Select(ctx context.Context, q *Query) ([]json.RawMessage, error) {
	sql, args := buildSelect(q)
	rows, err := c.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", q.Table, err)
	}
	raw, err := pgx.CollectRows(rows, pgx.RowTo[[]byte])
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", q.Table, err)
	}
	out := make([]json.RawMessage, len(raw))
	for i, b := range raw {
		out[i] = b
	}
	return out, nil
}

func (c *PGClient) SelectSingle(ctx context.Context, q *Query) (json.RawMessage, error) {
	probe := *q
	probe.Max = 2
	rows, err := c.Select(ctx, &probe)
	if err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, fmt.Errorf("select %s: %w", q.Table, ErrNoRows)
	case 1:
		return rows[0], nil
	default:
		return nil, fmt.Errorf("select %s: %w", q.Table, ErrMultipleRows)
	}
}

func (c *PGClient) Count(ctx context.Context, q *Query) (int64, error) {
	sql, args := buildCount(q)
	var n int64
	if err := c.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", q.Table, err)
	}
	return n, nil
}

func (c *PGClient) Insert(ctx context.Context, table string, rows ...Values) ([]json.RawMessage, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	sql, args := buildInsert(table, rows)
	res, err := c.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", table, err)
	}
	raw, err := pgx.CollectRows(res, pgx.RowTo[[]byte])
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", table, err)
	}
	out := make([]json.RawMessage, len(raw))
	for i, b := range raw {
		out[i] = b
	}
	return out, nil
}

func (c *PGClient) Update(ctx context.Context, q *Query, set Values) (int64, error) {
	if len(q.Filters) == 0 {
		return 0, fmt.Errorf("update %s: %w", q.Table, ErrUnfiltered)
	}
	if len(set) == 0 {
		return 0, nil
	}
	sql, args := buildUpdate(q, set)
	tag, err := c.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("update %s: %w", q.Table, err)
	}
	return tag.RowsAffected(), nil
}

func (c *PGClient) Delete(ctx context.Context, q *Query) (int64, error) {
	if len(q.Filters) == 0 {
		return 0, fmt.Errorf("delete %s: %w", q.Table, ErrUnfiltered)
	}
	sql, args := buildDelete(q)
	tag, err := c.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", q.Table, err)
	}
	return tag.RowsAffected(), nil
}

// Tx nests as a savepoint when already inside a transaction.
func (c *PGClient) Tx(ctx context.Context, fn func(tx Client) error) error {
	tx, err := c.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&PGClient{db: tx, inTx: true}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (c *PGClient) Lock(ctx context.Context, key string) error {
	if !c.inTx {
		return ErrNoTx
	}
	if _, err := c.db.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", key); err != nil {
		return fmt.Errorf("advisory lock %q: %w", key, err)
	}
	return nil
}

// UniqueViolation returns the Postgres unique_violation (23505) in err's chain.
func UniqueViolation(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr, true
	}
	return nil, false
}

func IsUniqueViolation(err error) bool {
	_, ok := UniqueViolation(err)
	return ok
}

var _ Client = (*PGClient)(nil)
