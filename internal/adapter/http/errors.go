package http

import (
	"errors"
	"log/slog"
	"strings"

	"resume-builder/internal/domain"

	"github.com/gofiber/fiber/v2"
)

const genericInternalMessage = "Internal server error"

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// fail writes the JSON error body for err. msg is the client-facing text for
// the route; validation errors carry their own detail instead. Server faults
// are logged, and their raw message is only exposed in development.
func (h *Handler) fail(c *fiber.Ctx, err error, msg string) error {
	status := statusFor(err)
	body := fiber.Map{"error": msg}

	switch {
	case status == fiber.StatusBadRequest:
		body["error"] = validationMessage(err)
	case status >= fiber.StatusInternalServerError:
		slog.Error("request failed",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", requestID(c),
			"error", err,
		)
		if h.settings.Development {
			body["details"] = err.Error()
		}
	}
	return c.Status(status).JSON(body)
}

func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, domain.ErrValidation.Error()+": "); i >= 0 {
		return msg[i+len(domain.ErrValidation.Error())+2:]
	}
	return msg
}

// errorHandler handles errors that escape a handler, including recovered
// panics and fiber's own errors such as an oversized body.
func errorHandler(development bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}

		slog.Error("unhandled error",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", requestID(c),
			"error", err,
		)
		msg := genericInternalMessage
		if development {
			msg = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": msg})
	}
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Route not found"})
}
