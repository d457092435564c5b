package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"
)

// jsonSuccess returns a 200 response with data wrapped in the standard envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}

// jsonFromError writes err in the envelope, keeping the status of a
// *fiber.Error and hiding the text of anything else.
func jsonFromError(c fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return jsonError(c, fe.Code, fe.Message)
	}
	slog.Error("api request failed", "path", c.Path(), "error", err)
	return jsonError(c, fiber.StatusInternalServerError, "internal error")
}
