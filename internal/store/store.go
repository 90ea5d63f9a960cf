// Package store is the optional Postgres-backed prediction log. All methods
// are safe on a nil *Store so callers need no guards when the log is not
// configured.
package store

import (
	"context"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"sentimeter/migrations"
)

// Store wraps a pgxpool connection pool.
type Store struct {
	Pool *pgxpool.Pool
}

// New creates a new database connection pool.
func New(ctx context.Context, connString string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{Pool: pool}, nil
}

// RunMigrations runs all embedded SQL migrations.
func (s *Store) RunMigrations(connString string) error {
	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, connString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Enabled returns true when the prediction log is configured.
func (s *Store) Enabled() bool {
	return s != nil
}

// Ping checks database reachability. A nil store is always reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil {
		return nil
	}
	return s.Pool.Ping(ctx)
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s == nil {
		return
	}
	s.Pool.Close()
}
