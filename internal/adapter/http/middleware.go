package http

import (
	"log/slog"
	"time"

	"resume-builder/internal/metrics"

	"github.com/gofiber/fiber/v2"
)

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}

// instrument logs one record per request and feeds the request metrics.
// Errors are resolved through the app's ErrorHandler here so the logged
// status is the one the client receives.
func instrument(logger *slog.Logger, collector *metrics.Collector) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		d := time.Since(start)
		status := c.Response().StatusCode()

		if collector != nil {
			collector.ObserveRequest(c.Method(), c.Route().Path, status, d)
		}

		level := slog.LevelInfo
		if status >= fiber.StatusInternalServerError {
			level = slog.LevelError
		} else if status >= fiber.StatusBadRequest {
			level = slog.LevelWarn
		}
		logger.Log(c.UserContext(), level, "http_request",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Float64("duration_ms", float64(d.Microseconds())/1000),
			slog.String("request_id", requestID(c)),
		)
		return nil
	}
}
