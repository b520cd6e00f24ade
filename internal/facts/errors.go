package facts

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when no fact matches.
var ErrNotFound = errors.New("fact not found")

// ValidationError reports missing or invalid fields. The store is unchanged.
type ValidationError struct {
	Missing []string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return "missing required fields: " + strings.Join(e.Missing, ", ")
	}
	return e.Message
}

// ConflictError reports a question that is too similar to an existing one.
// The store is unchanged.
type ConflictError struct {
	Match string
	Score float64
}

func (e *ConflictError) Error() string {
	return `"` + e.Match + `" is too similar to your question.`
}

// StorageError wraps a failure of the underlying store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
