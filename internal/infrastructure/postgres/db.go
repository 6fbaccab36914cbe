package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS client (
	id TEXT PRIMARY KEY,
	perfil TEXT NOT NULL DEFAULT '',
	id_type TEXT NOT NULL DEFAULT '',
	legal_name TEXT NOT NULL DEFAULT '',
	id_number TEXT NOT NULL DEFAULT '',
	address TEXT NOT NULL DEFAULT '',
	type_document_rep TEXT NOT NULL DEFAULT '',
	id_rep_lega TEXT NOT NULL DEFAULT '',
	name_rep TEXT NOT NULL DEFAULT '',
	last_name_rep TEXT NOT NULL DEFAULT '',
	email_rep TEXT NOT NULL DEFAULT '',
	plan_type TEXT NOT NULL DEFAULT '',
	cellphone TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_client_legal_name ON client(legal_name);
`

// DB wraps a pgx connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// New connects to url and makes sure the client table exists.
func New(ctx context.Context, url string, maxConns int) (*DB, error) {
	if url == "" {
		return nil, fmt.Errorf("database URL is required for PostgreSQL")
	}

	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	if maxConns > 0 {
		poolConfig.MaxConns = int32(maxConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Pool returns the underlying pgxpool.Pool.
func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

func (db *DB) Close() error {
	db.pool.Close()
	return nil
}
