package sqlite

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
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
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_client_legal_name ON client(legal_name);
`

const memoryPath = ":memory:"

type DB struct {
	*sqlx.DB
}

func New(dbPath string) (*DB, error) {
	db, err := sqlx.Connect("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Every pooled connection to :memory: would see its own empty database
	if dbPath == memoryPath {
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrency (allows concurrent reads/writes)
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Set busy timeout to handle concurrent access from multiple processes
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &DB{db}, nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}
