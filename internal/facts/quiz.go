package facts

import (
	"context"
	"strings"

	"yorkfacts/internal/models"
)

// RandomQuestion picks a fact at random and withholds its answer.
func (s *Service) RandomQuestion(ctx context.Context) (*models.QuizQuestion, error) {
	facts, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(facts) == 0 {
		return nil, ErrNotFound
	}

	f := facts[s.intn(len(facts))]
	return &models.QuizQuestion{Question: f.Question, Category: f.Category}, nil
}

// Guess checks a municipality guess for the first fact with this question.
func (s *Service) Guess(ctx context.Context, question, guess string) (*models.GuessResult, error) {
	question = strings.TrimSpace(question)
	guess = strings.TrimSpace(guess)

	var missing []string
	if question == "" {
		missing = append(missing, "question")
	}
	if guess == "" {
		missing = append(missing, "location")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	facts, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, f := range facts {
		if f.Question != question {
			continue
		}
		return &models.GuessResult{
			Guess:    guess,
			Correct:  strings.EqualFold(guess, strings.TrimSpace(f.Location)),
			Location: f.Location,
			Answer:   f.Answer,
		}, nil
	}

	return nil, ErrNotFound
}
