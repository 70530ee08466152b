package storage

import (
	"context"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
)

// migrationsDir is where every binary expects the SQL migration files,
// relative to the working directory it is launched from.
const migrationsDir = "migrations"

// DB bundles the connection pool behind the workout repository methods.
// Reads go straight through Pool; imports go through BeginImport so each
// CSV file commits or rolls back as a unit.
type DB struct {
	Pool *pgxpool.Pool
}

// New opens a connection pool against the workout database and verifies
// it is reachable before returning.
func New(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening workout database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("verifying workout database connection: %w", err)
	}
	return &DB{Pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	db.Pool.Close()
}

// RunMigrations brings the workouts/exercises/sets schema up to date.
// Already-applied migrations are a no-op.
func RunMigrations(dsn string) error {
	m, err := migrate.New("file://"+migrationsDir, dsn)
	if err != nil {
		return fmt.Errorf("creating schema migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migrating workout schema: %w", err)
	}
	return nil
}
