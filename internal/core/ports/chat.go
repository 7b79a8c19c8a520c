package ports

import (
	"context"

	"github.com/melih/docker-agent/internal/core/domain"
)

// ChatService answers a user message, possibly by running tools.
type ChatService interface {
	Chat(ctx context.Context, message string) (*domain.ChatReply, error)
}
