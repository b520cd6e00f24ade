package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"yorkfacts/internal/models"
	"yorkfacts/internal/store"
)

var _ store.Store = (*DB)(nil)
var _ store.Locker = (*DB)(nil)

// factsLockKey is the pg_advisory_lock key that serializes fact writers.
const factsLockKey int64 = 0x66616374 // "fact"

// factColumns is the standard column list for fact queries.
const factColumns = `id, question, answer, location, category, created_at`

// scanFacts scans multiple rows into a slice of Facts.
func scanFacts(rows pgx.Rows) ([]models.Fact, error) {
	defer rows.Close()

	var facts []models.Fact
	for rows.Next() {
		var f models.Fact
		if err := rows.Scan(
			&f.ID,
			&f.Question,
			&f.Answer,
			&f.Location,
			&f.Category,
			&f.CreatedAt,
		); err != nil {
			return nil, err
		}
		facts = append(facts, f)
	}

	return facts, rows.Err()
}

// Questions returns the question of every fact in insertion order.
func (d *DB) Questions(ctx context.Context) ([]string, error) {
	rows, err := d.Pool.Query(ctx, `SELECT question FROM facts ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// List returns all facts in insertion order.
func (d *DB) List(ctx context.Context) ([]models.Fact, error) {
	rows, err := d.Pool.Query(ctx, `SELECT `+factColumns+` FROM facts ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	return scanFacts(rows)
}

// Count returns the number of facts.
func (d *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM facts`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Append inserts a fact. A nil ID is replaced with a new UUID.
func (d *DB) Append(ctx context.Context, fact *models.Fact) error {
	if fact.ID == uuid.Nil {
		fact.ID = uuid.New()
	}

	query := `
		INSERT INTO facts (id, question, answer, location, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	return d.Pool.QueryRow(ctx, query,
		fact.ID,
		fact.Question,
		fact.Answer,
		fact.Location,
		fact.Category,
	).Scan(&fact.CreatedAt)
}

// DeleteByQuestion deletes every fact with exactly this question.
func (d *DB) DeleteByQuestion(ctx context.Context, question string) (int, error) {
	result, err := d.Pool.Exec(ctx, `DELETE FROM facts WHERE question = $1`, question)
	if err != nil {
		return 0, err
	}
	return int(result.RowsAffected()), nil
}

// Lock takes a session-level advisory lock on a dedicated connection so
// writers in every process sharing the database are serialized.
func (d *DB) Lock(ctx context.Context) (func(), error) {
	conn, err := d.Pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, `SELECT pg_advisory_lock($1)`, factsLockKey); err != nil {
		conn.Release()
		return nil, fmt.Errorf("failed to take advisory lock: %w", err)
	}

	return func() {
		if _, err := conn.Exec(context.Background(), `SELECT pg_advisory_unlock($1)`, factsLockKey); err != nil {
			// A lock that can't be released must not go back to the pool.
			conn.Conn().Close(context.Background())
		}
		conn.Release()
	}, nil
}
