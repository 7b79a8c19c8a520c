package http

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/melih/docker-agent/internal/core/domain"
	"github.com/melih/docker-agent/internal/core/ports"
	"github.com/melih/docker-agent/internal/observability"
)

const serviceName = "Docker AI Agent with n8n Integration"

// SystemHandler serves the status endpoints and the inbound n8n webhook.
type SystemHandler struct {
	notifier ports.Notifier
	logger   *slog.Logger
}

func NewSystemHandler(notifier ports.Notifier, logger *slog.Logger) *SystemHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SystemHandler{notifier: notifier, logger: logger.With("component", "system")}
}

func (h *SystemHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": serviceName, "status": "running"})
}

func (h *SystemHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy", "n8n_url": h.notifier.BaseURL()})
}

// ReceiveN8N acknowledges an event pushed by n8n, echoing it back.
func (h *SystemHandler) ReceiveN8N(c *fiber.Ctx) error {
	var evt domain.InboundEvent
	if err := c.BodyParser(&evt); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": "Invalid request body: " + err.Error(),
		})
	}
	if evt.Event == nil || evt.Data == nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": "Fields 'event' and 'data' are required",
		})
	}

	observability.WithTrace(c.UserContext(), h.logger).Info("n8n event received", "event", *evt.Event)
	return c.JSON(fiber.Map{
		"received": true,
		"event":    *evt.Event,
		"data":     evt.Data,
	})
}
