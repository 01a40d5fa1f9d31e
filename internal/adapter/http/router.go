package http

import (
	"log/slog"
	"time"

	"resume-builder/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// AppConfig holds the wiring that is not per-request.
type AppConfig struct {
	AllowedOrigins   string
	StaticDir        string
	RenderRatePerMin int
	Logger           *slog.Logger
	Metrics          *metrics.Collector
	Gatherer         prometheus.Gatherer
}

// NewApp builds the fiber app with every route of the service.
func NewApp(h *Handler, cfg AppConfig) *fiber.App {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	app := fiber.New(fiber.Config{
		AppName:               "resume-builder " + h.settings.Version,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(h.settings.Development),
		// leave room for multipart framing so the upload size check, not
		// the transport, rejects oversized files
		BodyLimit: int(h.exporter.MaxUploadBytes()) + 1<<20,
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(instrument(logger, cfg.Metrics))
	app.Use(recover.New(recover.Config{EnableStackTrace: h.settings.Development}))
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.AllowedOrigins}))

	app.Get("/health", h.Health)
	if cfg.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler(cfg.Gatherer)))
	}

	api := app.Group("/api")
	api.Post("/register", h.Register)
	api.Post("/login", h.Login)
	api.Post("/resumes", h.CreateResume)
	api.Get("/resumes", h.ListResumes)
	api.Post("/resumes/deleteAll", h.DeleteAllResumes)
	api.Get("/resumes/:id", h.GetResume)
	api.Put("/resumes/:id", h.UpdateResume)
	api.Delete("/resumes/:id", h.DeleteResume)

	renderLimit := func(c *fiber.Ctx) error { return c.Next() }
	if cfg.RenderRatePerMin > 0 {
		renderLimit = limiter.New(limiter.Config{
			Max:        cfg.RenderRatePerMin,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many render requests, try again later"})
			},
		})
	}
	app.Post("/convert", renderLimit, h.Convert)
	app.Post("/upload", renderLimit, h.Upload)

	if cfg.StaticDir != "" {
		app.Static("/", cfg.StaticDir)
	}

	app.Use(notFound)
	return app
}
