package facts

import (
	"context"
	"errors"
	"fmt"
	"io"

	"yorkfacts/internal/store"
)

// ImportReport summarizes an Import run.
type ImportReport struct {
	Saved    int
	Rejected []ImportRejection
}

// ImportRejection is a row that was not saved.
type ImportRejection struct {
	Row      int
	Question string
	Reason   string
}

// Import submits every row of a facts table read from r. The similarity
// gate is applied unless force is set. Validation failures and conflicts
// are collected in the report; a storage failure stops the run.
func (s *Service) Import(ctx context.Context, r io.Reader, force bool) (*ImportReport, error) {
	rows, err := store.ReadTable(r)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}

	report := &ImportReport{}
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		_, err := s.submit(ctx, row, !force)
		if err == nil {
			report.Saved++
			continue
		}

		var verr *ValidationError
		var cerr *ConflictError
		if errors.As(err, &verr) || errors.As(err, &cerr) {
			report.Rejected = append(report.Rejected, ImportRejection{
				// header is row 1
				Row:      i + 2,
				Question: row.Question,
				Reason:   err.Error(),
			})
			continue
		}
		return report, err
	}

	s.logger.Info("import finished", "saved", report.Saved, "rejected", len(report.Rejected), "force", force)
	return report, nil
}
