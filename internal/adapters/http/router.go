package http

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/melih/docker-agent/internal/core/ports"
)

// Dependencies are the services the HTTP surface is wired to.
type Dependencies struct {
	Chat      ports.ChatService
	Files     ports.FileStore
	Notifier  ports.Notifier
	// Gatherer backs /metrics; the route is omitted when nil.
	Gatherer  prometheus.Gatherer
	Logger    *slog.Logger
	BodyLimit int
}

// NewApp builds the Fiber application with all routes registered.
func NewApp(deps Dependencies) *fiber.App {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		BodyLimit:             deps.BodyLimit,
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(RequestID())
	app.Use(AccessLog(logger.With("component", "http")))

	system := NewSystemHandler(deps.Notifier, logger)
	chat := NewChatHandler(deps.Chat)
	files := NewFileHandler(deps.Files, deps.Notifier, logger)

	app.Get("/", system.Root)
	app.Get("/health", system.Health)
	app.Post("/webhook/n8n", system.ReceiveN8N)

	app.Post("/chat", chat.Chat)

	app.Get("/files", files.ListFiles)
	app.Post("/files/upload", files.Upload)
	app.Get("/files/:filename", files.Download)

	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}
	return app
}
