package ports

import (
	"context"

	"github.com/melih/docker-agent/internal/core/domain"
)

// ChatModel is the language-model backend. Chat returns the assistant
// message, which may request tool calls.
type ChatModel interface {
	Chat(ctx context.Context, req domain.ChatRequest) (*domain.Message, error)
}
