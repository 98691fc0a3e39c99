// Package xpgx adapts a pgx pool (or transaction) to squirrel builders.
package xpgx

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Pool runs squirrel statements.
type Pool interface {
	Querier
	Execx(ctx context.Context, sqlizer sq.Sqlizer) (pgconn.CommandTag, error)
	Getx(ctx context.Context, dst any, sqlizer sq.Sqlizer) error
	Selectx(ctx context.Context, dst any, sqlizer sq.Sqlizer) error
	Ping(ctx context.Context) error
	Close()
}

type pool struct {
	Querier
	p *pgxpool.Pool
}

// NewPool wraps an existing pgx pool.
func NewPool(p *pgxpool.Pool) Pool {
	return &pool{Querier: p, p: p}
}

// Connect parses dsn, opens a pool and verifies connectivity.
func Connect(ctx context.Context, dsn string, maxConns int32) (Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	p, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.NewWithConfig: %w", err)
	}

	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return NewPool(p), nil
}

func (p *pool) Execx(ctx context.Context, sqlizer sq.Sqlizer) (pgconn.CommandTag, error) {
	return Execx(ctx, p.Querier, sqlizer)
}

func (p *pool) Getx(ctx context.Context, dst any, sqlizer sq.Sqlizer) error {
	return Getx(ctx, p.Querier, dst, sqlizer)
}

func (p *pool) Selectx(ctx context.Context, dst any, sqlizer sq.Sqlizer) error {
	return Selectx(ctx, p.Querier, dst, sqlizer)
}

func (p *pool) Ping(ctx context.Context) error {
	return p.p.Ping(ctx)
}

func (p *pool) Close() {
	p.p.Close()
}

// Execx renders sqlizer and executes it on q.
func Execx(ctx context.Context, q Querier, sqlizer sq.Sqlizer) (pgconn.CommandTag, error) {
	query, args, err := sqlizer.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("ToSql: %w", err)
	}
	return q.Exec(ctx, query, args...)
}

// Getx scans exactly one row into dst. No rows yields pgx.ErrNoRows.
func Getx(ctx context.Context, q Querier, dst any, sqlizer sq.Sqlizer) error {
	query, args, err := sqlizer.ToSql()
	if err != nil {
		return fmt.Errorf("ToSql: %w", err)
	}
	return pgxscan.Get(ctx, q, dst, query, args...)
}

// Selectx scans all rows into the slice pointed to by dst.
func Selectx(ctx context.Context, q Querier, dst any, sqlizer sq.Sqlizer) error {
	query, args, err := sqlizer.ToSql()
	if err != nil {
		return fmt.Errorf("ToSql: %w", err)
	}
	return pgxscan.Select(ctx, q, dst, query, args...)
}
