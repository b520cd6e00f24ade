package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"

	"yorkfacts/internal/facts"
)

// QuizHandler serves quiz questions and checks guesses.
type QuizHandler struct {
	service *facts.Service
}

// NewQuizHandler creates a new API quiz handler.
func NewQuizHandler(service *facts.Service) *QuizHandler {
	return &QuizHandler{service: service}
}

// Random returns a random question without its answer.
func (h *QuizHandler) Random(c fiber.Ctx) error {
	q, err := h.service.RandomQuestion(c.Context())
	if err != nil {
		if errors.Is(err, facts.ErrNotFound) {
			return jsonError(c, fiber.StatusNotFound, "no facts yet")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to read facts")
	}
	return jsonSuccess(c, q)
}

// Guess checks a municipality guess for a question.
func (h *QuizHandler) Guess(c fiber.Ctx) error {
	var body struct {
		Question string `json:"question"`
		Location string `json:"location"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	res, err := h.service.Guess(c.Context(), body.Question, body.Location)
	if err != nil {
		var verr *facts.ValidationError
		switch {
		case errors.As(err, &verr):
			return jsonError(c, fiber.StatusBadRequest, verr.Error())
		case errors.Is(err, facts.ErrNotFound):
			return jsonError(c, fiber.StatusNotFound, "question not found")
		default:
			return jsonError(c, fiber.StatusInternalServerError, "failed to read facts")
		}
	}
	return jsonSuccess(c, res)
}
