package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/melih/docker-agent/internal/core/ports"
)

type ChatHandler struct {
	service ports.ChatService
}

func NewChatHandler(service ports.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

type ChatRequest struct {
	Message *string `json:"message"`
}

// Chat forwards the user's message to the agent. Any failure along the way
// is reported as a 500 carrying the underlying error text.
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": "Invalid request body: " + err.Error(),
		})
	}
	if req.Message == nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": "Field 'message' is required",
		})
	}

	reply, err := h.service.Chat(c.UserContext(), *req.Message)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": err.Error(),
		})
	}
	return c.JSON(reply)
}
