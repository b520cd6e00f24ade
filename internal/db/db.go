package db

import (
	"context"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"yorkfacts/migrations"
)

// DB wraps a pgxpool connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// New creates a new database connection pool.
func New(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// RunMigrations runs all embedded SQL migrations.
func (d *DB) RunMigrations(connString string) error {
	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, connString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Close closes the connection pool.
func (d *DB) Close() error {
	d.Pool.Close()
	return nil
}

// SeedDevFacts inserts sample facts for development. Skips facts whose question already exists.
func (d *DB) SeedDevFacts(ctx context.Context) error {
	facts := []struct {
		question string
		answer   string
		location string
		category string
	}{
		{"What is Ontario's vegetable patch?", "Holland Marsh.", "King", "Physiographic"},
		{"Which lake forms the northern shore of Georgina?", "Lake Simcoe.", "Georgina", "Physiographic"},
		{"Which municipality is home to the McMichael Canadian Art Collection?", "Vaughan.", "Vaughan", "Cultural"},
	}

	query := `
		INSERT INTO facts (id, question, answer, location, category)
		SELECT $1::uuid, $2::text, $3::text, $4::text, $5::text
		WHERE NOT EXISTS (SELECT 1 FROM facts WHERE question = $2::text)
	`

	for _, f := range facts {
		if _, err := d.Pool.Exec(ctx, query, uuid.New(), f.question, f.answer, f.location, f.category); err != nil {
			return fmt.Errorf("failed to seed fact %q: %w", f.question, err)
		}
	}

	return nil
}
