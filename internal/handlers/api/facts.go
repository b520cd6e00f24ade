// Package api serves the JSON endpoints under /api.
package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"

	"yorkfacts/internal/facts"
)

// FactHandler exposes facts and the similarity dry run via JSON API.
type FactHandler struct {
	service *facts.Service
}

// NewFactHandler creates a new API fact handler.
func NewFactHandler(service *facts.Service) *FactHandler {
	return &FactHandler{service: service}
}

// List returns every fact in append order.
func (h *FactHandler) List(c fiber.Ctx) error {
	list, err := h.service.List(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to read facts")
	}
	return jsonSuccess(c, list)
}

// Check reports the closest existing question and whether a submission
// would be rejected.
func (h *FactHandler) Check(c fiber.Ctx) error {
	var body struct {
		Question string `json:"question"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	res, err := h.service.Check(c.Context(), body.Question)
	if err != nil {
		var verr *facts.ValidationError
		if errors.As(err, &verr) {
			return jsonError(c, fiber.StatusBadRequest, "question is required")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to read facts")
	}
	return jsonSuccess(c, res)
}

// Options returns the accepted locations and categories.
func (h *FactHandler) Options(c fiber.Ctx) error {
	return jsonSuccess(c, h.service.Options())
}
