package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"yorkfacts/internal/models"
)

// CSVStore keeps facts in a delimited text file whose first row is the
// fixed header. Values are quoted per RFC 4180 when they contain the
// separator, quotes or leading spaces; other values are written as-is.
type CSVStore struct {
	path string
	mu   sync.RWMutex
}

// OpenCSV opens the CSV file at path, creating it with a header row if it
// doesn't exist or is empty.
func OpenCSV(path string) (*CSVStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.Size() == 0 {
		if err := writeRecords(f, nil); err != nil {
			return nil, fmt.Errorf("failed to write header to %s: %w", path, err)
		}
	}

	return &CSVStore{path: path}, nil
}

// Path returns the backing file path.
func (s *CSVStore) Path() string {
	return s.path
}

// Questions returns the question of every fact, in append order.
func (s *CSVStore) Questions(ctx context.Context) ([]string, error) {
	facts, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	questions := make([]string, len(facts))
	for i := range facts {
		questions[i] = facts[i].Question
	}
	return questions, nil
}

// List returns every fact, in append order.
func (s *CSVStore) List(ctx context.Context) ([]models.Fact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.read()
}

// Count returns the number of facts.
func (s *CSVStore) Count(ctx context.Context) (int, error) {
	facts, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(facts), nil
}

// Append adds a fact at the end of the file and syncs it to disk.
// On a failed write the file is truncated back to its previous size.
func (s *CSVStore) Append(ctx context.Context, fact *models.Fact) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", s.path, err)
	}
	size := info.Size()

	var prefix []byte
	if size > 0 {
		last := make([]byte, 1)
		if _, err := f.ReadAt(last, size-1); err != nil {
			return fmt.Errorf("failed to read %s: %w", s.path, err)
		}
		if last[0] != '\n' {
			prefix = []byte{'\n'}
		}
	}

	werr := func() error {
		if size == 0 {
			return writeRecords(f, [][]string{fact.Record()})
		}
		if len(prefix) > 0 {
			if _, err := f.Write(prefix); err != nil {
				return err
			}
		}
		w := csv.NewWriter(f)
		if err := w.Write(fact.Record()); err != nil {
			return err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
		return f.Sync()
	}()
	if werr != nil {
		if terr := f.Truncate(size); terr != nil {
			return fmt.Errorf("failed to append to %s: %w (truncate: %v)", s.path, werr, terr)
		}
		return fmt.Errorf("failed to append to %s: %w", s.path, werr)
	}

	return nil
}

// DeleteByQuestion removes every fact whose question equals question.
// The remaining rows are written to a temporary file that replaces the
// original with a rename, so a failed write leaves the old file intact.
func (s *CSVStore) DeleteByQuestion(ctx context.Context, question string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	facts, err := s.read()
	if err != nil {
		return 0, err
	}

	kept := make([][]string, 0, len(facts))
	for i := range facts {
		if facts[i].Question == question {
			continue
		}
		kept = append(kept, facts[i].Record())
	}

	removed := len(facts) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	if err := s.replace(kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// Close is a no-op; the file is opened per operation.
func (s *CSVStore) Close() error {
	return nil
}

// read decodes all rows after the header. Callers hold s.mu.
func (s *CSVStore) read() ([]models.Fact, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	return ReadTable(f)
}

func (s *CSVStore) replace(records [][]string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := writeRecords(tmp, records); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}

	return nil
}

// writeRecords writes the header followed by records and syncs f.
func writeRecords(f *os.File, records [][]string) error {
	w := csv.NewWriter(f)
	if err := w.Write(models.Header); err != nil {
		return err
	}
	if err := w.WriteAll(records); err != nil {
		return err
	}
	return f.Sync()
}

// WriteTable writes facts as CSV with the header row to w.
func WriteTable(w io.Writer, facts []models.Fact) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.Header); err != nil {
		return err
	}
	for i := range facts {
		if err := cw.Write(facts[i].Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadTable decodes a CSV table with a header row from r.
func ReadTable(r io.Reader) ([]models.Fact, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	// Hand-edited rows may carry a bare quote inside an unquoted field.
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	facts := make([]models.Fact, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(models.Header) {
			return nil, fmt.Errorf("%w: row %d has %d fields, want %d", ErrMalformedRecord, i+2, len(record), len(models.Header))
		}
		facts = append(facts, models.FactFromRecord(record))
	}
	return facts, nil
}
