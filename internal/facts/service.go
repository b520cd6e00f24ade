// Package facts implements submission, retrieval, deletion and the quiz
// on top of a fact store.
package facts

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"yorkfacts/internal/config"
	"yorkfacts/internal/events"
	"yorkfacts/internal/metrics"
	"yorkfacts/internal/models"
	"yorkfacts/internal/similarity"
	"yorkfacts/internal/store"
	"yorkfacts/internal/validation"
)

const publishTimeout = 5 * time.Second

// Service is the single entry point to the fact store. Submissions and
// deletions are serialized so the similarity check and the write happen
// against the same store contents.
type Service struct {
	store     store.Store
	gate      *similarity.Gate
	catalog   *config.Catalog
	publisher events.Publisher
	logger    *slog.Logger

	mu       sync.Mutex
	inflight sync.WaitGroup
	intn     func(n int) int
}

// NewService creates a fact service. A nil catalog uses the defaults, a
// nil publisher discards events and a nil logger uses slog.Default.
func NewService(st store.Store, gate *similarity.Gate, catalog *config.Catalog, publisher events.Publisher, logger *slog.Logger) *Service {
	if catalog == nil {
		catalog = config.DefaultCatalog()
	}
	if publisher == nil {
		publisher = events.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:     st,
		gate:      gate,
		catalog:   catalog,
		publisher: publisher,
		logger:    logger,
		intn:      rand.IntN,
	}
}

// Submit validates fact, rejects it when its question is too similar to an
// existing one and otherwise appends it durably.
func (s *Service) Submit(ctx context.Context, fact models.Fact) (*models.Fact, error) {
	return s.submit(ctx, fact, true)
}

func (s *Service) submit(ctx context.Context, fact models.Fact, gated bool) (*models.Fact, error) {
	fact.Normalize()

	if missing := fact.MissingFields(); len(missing) > 0 {
		metrics.RecordSubmission(metrics.OutcomeMissingFields)
		return nil, &ValidationError{Missing: missing}
	}
	if err := s.validate(&fact); err != nil {
		metrics.RecordSubmission(metrics.OutcomeInvalid)
		return nil, err
	}

	unlock, err := s.lock(ctx)
	if err != nil {
		metrics.RecordSubmission(metrics.OutcomeError)
		return nil, &StorageError{Op: "lock", Err: err}
	}
	defer unlock()

	existing, err := s.store.Questions(ctx)
	if err != nil {
		metrics.RecordSubmission(metrics.OutcomeError)
		return nil, &StorageError{Op: "read", Err: err}
	}

	match := s.gate.Evaluate(fact.Question, existing)
	s.logger.Debug("checking similarity",
		"question", fact.Question,
		"best_match", match.Text,
		"score", match.Score,
		"threshold", s.gate.Threshold(),
	)
	if match.Found() {
		metrics.ObserveSimilarity(match.Score)
	}

	if gated && s.gate.Exceeds(match) {
		metrics.RecordSubmission(metrics.OutcomeTooSimilar)
		s.logger.Info("rejected similar question", "question", fact.Question, "match", match.Text, "score", match.Score)
		return nil, &ConflictError{Match: match.Text, Score: match.Score}
	}

	fact.ID = uuid.New()
	if err := s.store.Append(ctx, &fact); err != nil {
		metrics.RecordSubmission(metrics.OutcomeError)
		s.logger.Error("failed to save fact", "error", err)
		return nil, &StorageError{Op: "append", Err: err}
	}

	metrics.RecordSubmission(metrics.OutcomeOK)
	s.publish(events.Submitted(&fact))
	return &fact, nil
}

// validate checks field formats and maps location and category to their
// catalog spelling.
func (s *Service) validate(fact *models.Fact) error {
	if ok, msg := validation.ValidateText("question", fact.Question, validation.MaxQuestionLength); !ok {
		return &ValidationError{Field: "question", Message: msg}
	}
	if ok, msg := validation.ValidateText("answer", fact.Answer, validation.MaxAnswerLength); !ok {
		return &ValidationError{Field: "answer", Message: msg}
	}

	location, ok, msg := validation.ValidateChoice("location", fact.Location, s.catalog.Locations)
	if !ok {
		return &ValidationError{Field: "location", Message: msg}
	}
	category, ok, msg := validation.ValidateChoice("category", fact.Category, s.catalog.Categories)
	if !ok {
		return &ValidationError{Field: "category", Message: msg}
	}

	fact.Location = location
	fact.Category = category
	return nil
}

// List returns every fact in append order.
func (s *Service) List(ctx context.Context) ([]models.Fact, error) {
	facts, err := s.store.List(ctx)
	if err != nil {
		return nil, &StorageError{Op: "read", Err: err}
	}
	if facts == nil {
		facts = []models.Fact{}
	}
	return facts, nil
}

// Export writes every fact as a CSV table with a header row.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	facts, err := s.List(ctx)
	if err != nil {
		return err
	}
	if err := store.WriteTable(w, facts); err != nil {
		return &StorageError{Op: "write", Err: err}
	}
	return nil
}

// DeleteByQuestion removes every fact whose question equals question
// (after trimming) and returns how many were removed.
func (s *Service) DeleteByQuestion(ctx context.Context, question string) (int, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		metrics.RecordDeletion(metrics.OutcomeMissingFields)
		return 0, &ValidationError{Missing: []string{"question"}}
	}

	unlock, err := s.lock(ctx)
	if err != nil {
		metrics.RecordDeletion(metrics.OutcomeError)
		return 0, &StorageError{Op: "lock", Err: err}
	}
	defer unlock()

	removed, err := s.store.DeleteByQuestion(ctx, question)
	if err != nil {
		metrics.RecordDeletion(metrics.OutcomeError)
		s.logger.Error("failed to delete fact", "question", question, "error", err)
		return 0, &StorageError{Op: "delete", Err: err}
	}
	if removed == 0 {
		metrics.RecordDeletion(metrics.OutcomeNotFound)
		return 0, ErrNotFound
	}

	metrics.RecordDeletion(metrics.OutcomeOK)
	s.logger.Info("deleted facts", "question", question, "removed", removed)
	s.publish(events.Deleted(question, removed))
	return removed, nil
}

// Check runs the similarity gate for question without storing anything.
func (s *Service) Check(ctx context.Context, question string) (*models.SimilarityCheckResponse, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, &ValidationError{Missing: []string{"question"}}
	}

	existing, err := s.store.Questions(ctx)
	if err != nil {
		return nil, &StorageError{Op: "read", Err: err}
	}

	match := s.gate.Evaluate(question, existing)
	return &models.SimilarityCheckResponse{
		Question:   question,
		Match:      match.Text,
		Score:      match.Score,
		Threshold:  s.gate.Threshold(),
		TooSimilar: s.gate.Exceeds(match),
	}, nil
}

// Options returns the accepted locations and categories.
func (s *Service) Options() models.OptionsResponse {
	return models.OptionsResponse{
		Locations:  append([]string(nil), s.catalog.Locations...),
		Categories: append([]string(nil), s.catalog.Categories...),
	}
}

// Ping reports whether the store answers.
func (s *Service) Ping(ctx context.Context) error {
	if _, err := s.store.Count(ctx); err != nil {
		return &StorageError{Op: "ping", Err: err}
	}
	return nil
}

// lock serializes writers in this process and, when the store supports
// it, across processes.
func (s *Service) lock(ctx context.Context) (func(), error) {
	s.mu.Lock()

	locker, ok := s.store.(store.Locker)
	if !ok {
		return s.mu.Unlock, nil
	}

	release, err := locker.Lock(ctx)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	return func() {
		release()
		s.mu.Unlock()
	}, nil
}

func (s *Service) publish(event events.Event) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish event", "type", event.Type, "error", err)
		}
	}()
}

// Wait blocks until every event published so far has been delivered or
// has failed. Call it before closing the publisher.
func (s *Service) Wait() {
	s.inflight.Wait()
}
