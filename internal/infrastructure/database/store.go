package database

import (
	"context"
	"fmt"

	"github.com/abcall/clients/internal/core/repository"
	"github.com/abcall/clients/internal/infrastructure/postgres"
	"github.com/abcall/clients/internal/infrastructure/sqlite"
)

// Config selects and configures the storage backend.
type Config struct {
	// URL is a PostgreSQL connection string. When empty, SQLitePath is used.
	URL string
	// SQLitePath is the SQLite database file.
	SQLitePath string
	// MaxConns caps the PostgreSQL pool.
	MaxConns int
}

// Store owns an open database and hands out repositories bound to it.
type Store struct {
	driver Driver
	sqlite *sqlite.DB
	pg     *postgres.DB
}

// Open connects to the backend the configuration points at.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	driver := DetectDriver(cfg.URL)

	switch driver {
	case DriverPostgres:
		db, err := postgres.New(ctx, cfg.URL, cfg.MaxConns)
		if err != nil {
			return nil, err
		}
		return &Store{driver: driver, pg: db}, nil

	case DriverSQLite:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("sqlite path is required when no database URL is set")
		}
		db, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Store{driver: driver, sqlite: db}, nil

	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}
}

// Driver returns the backend in use.
func (s *Store) Driver() Driver {
	return s.driver
}

// ClientRepository creates a client repository for the configured driver.
func (s *Store) ClientRepository() (repository.ClientRepository, error) {
	switch s.driver {
	case DriverPostgres:
		return postgres.NewClientRepository(s.pg), nil
	case DriverSQLite:
		return sqlite.NewClientRepository(s.sqlite), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", s.driver)
	}
}

// Close releases the underlying connections.
func (s *Store) Close() error {
	switch {
	case s.pg != nil:
		return s.pg.Close()
	case s.sqlite != nil:
		return s.sqlite.Close()
	}
	return nil
}
