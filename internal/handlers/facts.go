package handlers

import (
	"bytes"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"yorkfacts/internal/facts"
	"yorkfacts/internal/models"
)

// FactHandler handles submission, retrieval and deletion of facts.
type FactHandler struct {
	service *facts.Service
	logger  *slog.Logger
}

// NewFactHandler creates a new fact handler.
func NewFactHandler(service *facts.Service, logger *slog.Logger) *FactHandler {
	return &FactHandler{service: service, logger: logger}
}

// Submit stores a new fact unless its question is too similar to an
// existing one.
func (h *FactHandler) Submit(c fiber.Ctx) error {
	var body models.Fact
	if err := decodeBody(c, &body); err != nil {
		return textError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if _, err := h.service.Submit(c.Context(), body); err != nil {
		var verr *facts.ValidationError
		var cerr *facts.ConflictError
		switch {
		case errors.As(err, &verr):
			if len(verr.Missing) > 0 {
				return textError(c, fiber.StatusBadRequest, "Missing required fields")
			}
			return textError(c, fiber.StatusBadRequest, verr.Message)
		case errors.As(err, &cerr):
			return textError(c, fiber.StatusConflict, cerr.Error())
		default:
			h.logger.Error("submit failed", "error", err)
			return textError(c, fiber.StatusInternalServerError, "Failed to save fact")
		}
	}

	return c.SendString("Fact saved")
}

// List returns every fact as CSV with a header row.
func (h *FactHandler) List(c fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.service.Export(c.Context(), &buf); err != nil {
		h.logger.Error("list failed", "error", err)
		return textError(c, fiber.StatusInternalServerError, "Failed to read file")
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(buf.Bytes())
}

// Delete removes every fact whose question matches exactly.
func (h *FactHandler) Delete(c fiber.Ctx) error {
	var body struct {
		Question string `json:"question"`
	}
	if err := decodeBody(c, &body); err != nil {
		return textError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if _, err := h.service.DeleteByQuestion(c.Context(), body.Question); err != nil {
		var verr *facts.ValidationError
		switch {
		case errors.As(err, &verr):
			return textError(c, fiber.StatusBadRequest, "Missing question")
		case errors.Is(err, facts.ErrNotFound):
			return textError(c, fiber.StatusNotFound, "Fact not found")
		default:
			h.logger.Error("delete failed", "error", err)
			return textError(c, fiber.StatusInternalServerError, "Failed to delete fact")
		}
	}

	return c.SendString("Fact deleted.")
}
