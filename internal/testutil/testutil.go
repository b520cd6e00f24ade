// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"yorkfacts/internal/db"
	"yorkfacts/internal/models"
	"yorkfacts/internal/store"
)

// TestDB creates a test database connection and returns a cleanup function.
// Uses TEST_DATABASE_URL and skips the test when it is not set.
func TestDB(t *testing.T) (*db.DB, func()) {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	database.Pool.Exec(ctx, "DELETE FROM facts")

	cleanup := func() {
		database.Pool.Exec(ctx, "DELETE FROM facts")
		database.Close()
	}

	return database, cleanup
}

// TempCSV writes contents to a facts file in a temp dir and opens it.
// An empty contents string yields a fresh store with only the header.
func TempCSV(t *testing.T, contents string) (*store.CSVStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "facts.csv")
	if contents != "" {
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	s, err := store.OpenCSV(path)
	if err != nil {
		t.Fatalf("failed to open csv store: %v", err)
	}
	return s, path
}

// Fact returns a valid fact with the given question.
func Fact(question string) models.Fact {
	return models.Fact{
		Question: question,
		Answer:   "An answer.",
		Location: "Markham",
		Category: "Other",
	}
}

// MemoryStore is an in-memory store with injectable failures.
type MemoryStore struct {
	mu    sync.Mutex
	facts []models.Fact

	ReadErr   error
	AppendErr error
	DeleteErr error
	LockErr   error

	Locks int
}

var _ store.Store = (*MemoryStore)(nil)
var _ store.Locker = (*MemoryStore)(nil)

// NewMemoryStore creates a store seeded with facts.
func NewMemoryStore(facts ...models.Fact) *MemoryStore {
	return &MemoryStore{facts: append([]models.Fact(nil), facts...)}
}

// Questions returns every question in append order.
func (m *MemoryStore) Questions(ctx context.Context) ([]string, error) {
	facts, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(facts))
	for i := range facts {
		out[i] = facts[i].Question
	}
	return out, nil
}

// List returns a copy of every fact.
func (m *MemoryStore) List(context.Context) ([]models.Fact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	return append([]models.Fact(nil), m.facts...), nil
}

// Count returns the number of facts.
func (m *MemoryStore) Count(ctx context.Context) (int, error) {
	facts, err := m.List(ctx)
	return len(facts), err
}

// Append adds a fact.
func (m *MemoryStore) Append(_ context.Context, fact *models.Fact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.facts = append(m.facts, *fact)
	return nil
}

// DeleteByQuestion removes every exact match.
func (m *MemoryStore) DeleteByQuestion(_ context.Context, question string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return 0, m.DeleteErr
	}
	kept := m.facts[:0]
	for _, f := range m.facts {
		if f.Question != question {
			kept = append(kept, f)
		}
	}
	removed := len(m.facts) - len(kept)
	m.facts = kept
	return removed, nil
}

// Lock counts lock acquisitions.
func (m *MemoryStore) Lock(context.Context) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LockErr != nil {
		return nil, m.LockErr
	}
	m.Locks++
	return func() {}, nil
}

// Close does nothing.
func (m *MemoryStore) Close() error {
	return nil
}
