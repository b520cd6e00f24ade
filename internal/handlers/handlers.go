// Package handlers serves the plain-text endpoints used by the quiz
// frontend.
package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"
)

// textError returns message as a plain-text body with the given status.
func textError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).SendString(message)
}

// decodeBody unmarshals a JSON request body into v. An empty body leaves
// v unchanged so required-field checks report it.
func decodeBody(c fiber.Ctx, v any) error {
	body := c.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, v)
}
