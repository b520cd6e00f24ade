// Package store defines the fact store contract and its CSV file backend.
package store

import (
	"context"
	"errors"

	"yorkfacts/internal/models"
)

// ErrMalformedRecord is returned when a persisted row cannot be decoded.
var ErrMalformedRecord = errors.New("malformed fact record")

// Store is the persisted collection of facts.
type Store interface {
	// Questions returns the question of every fact, in append order.
	Questions(ctx context.Context) ([]string, error)
	// List returns every fact, in append order.
	List(ctx context.Context) ([]models.Fact, error)
	// Count returns the number of facts.
	Count(ctx context.Context) (int, error)
	// Append durably adds a fact at the end of the collection.
	Append(ctx context.Context, fact *models.Fact) error
	// DeleteByQuestion removes every fact whose question equals question
	// and returns how many were removed.
	DeleteByQuestion(ctx context.Context, question string) (int, error)
	// Close releases the store's resources.
	Close() error
}

// Locker is implemented by stores that can serialize writers across
// processes. The returned function releases the lock.
type Locker interface {
	Lock(ctx context.Context) (func(), error)
}
