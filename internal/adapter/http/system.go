package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) Health(c *fiber.Ctx) error {
	database := "up"
	if h.db == nil {
		database = "unknown"
	} else {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			database = "down"
		}
	}
	return c.JSON(fiber.Map{
		"status":      "OK",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.settings.Environment,
		"version":     h.settings.Version,
		"database":    database,
	})
}
