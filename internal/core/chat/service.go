// Package chat runs a user message through the language model, executing any
// tool calls the model requests and asking it to summarise the results.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/melih/docker-agent/internal/core/domain"
	"github.com/melih/docker-agent/internal/core/ports"
	"github.com/melih/docker-agent/internal/core/tools"
	"github.com/melih/docker-agent/internal/observability"
)

// Service is the chat orchestrator.
type Service struct {
	model    ports.ChatModel
	registry *tools.Registry
	executor *tools.Executor
	notifier ports.Notifier
	logger   *slog.Logger
	metrics  *observability.Metrics
}

func NewService(
	model ports.ChatModel,
	registry *tools.Registry,
	executor *tools.Executor,
	notifier ports.Notifier,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		model:    model,
		registry: registry,
		executor: executor,
		notifier: notifier,
		logger:   logger.With("component", "chat"),
		metrics:  metrics,
	}
}

// Chat answers message. When the model requests tools, they run in order,
// their results go back to the model for a final answer, and the automation
// receiver is notified of what ran.
func (s *Service) Chat(ctx context.Context, message string) (*domain.ChatReply, error) {
	reply, err := s.chat(ctx, message)
	if err != nil {
		s.metrics.ObserveChat(observability.OutcomeError)
		observability.WithTrace(ctx, s.logger).Error("chat failed", "err", err)
		return nil, err
	}
	s.metrics.ObserveChat(observability.OutcomeOK)
	return reply, nil
}

func (s *Service) chat(ctx context.Context, message string) (*domain.ChatReply, error) {
	user := domain.Message{Role: domain.RoleUser, Content: message}

	first, err := s.complete(ctx, domain.ChatRequest{
		Messages: []domain.Message{user},
		Tools:    s.registry.Definitions(),
	})
	if err != nil {
		return nil, err
	}
	if len(first.ToolCalls) == 0 {
		return &domain.ChatReply{Response: first.Content}, nil
	}

	results := make([]domain.ToolResult, 0, len(first.ToolCalls))
	for _, call := range first.ToolCalls {
		op, err := s.registry.Parse(call)
		if err != nil {
			return nil, err
		}
		result, err := s.executor.Execute(ctx, op)
		if err != nil {
			return nil, err
		}
		results = append(results, domain.ToolResult{Function: op.Function(), Result: result})
	}

	encoded, err := json.Marshal(results)
	if err != nil {
		return nil, fmt.Errorf("encode tool results: %w", err)
	}
	final, err := s.complete(ctx, domain.ChatRequest{
		Messages: []domain.Message{
			user,
			*first,
			{Role: domain.RoleTool, Content: string(encoded)},
		},
	})
	if err != nil {
		return nil, err
	}

	reply := &domain.ChatReply{Response: final.Content, ToolResults: results}
	s.notifier.Notify(ctx, domain.HookAgentAction, domain.ToolExecutedEvent{
		Event:   domain.EventToolExecuted,
		Message: message,
		Results: results,
	})
	return reply, nil
}

func (s *Service) complete(ctx context.Context, req domain.ChatRequest) (*domain.Message, error) {
	started := time.Now()
	msg, err := s.model.Chat(ctx, req)
	s.metrics.ObserveLLM(started, err)
	if err != nil {
		return nil, fmt.Errorf("language model: %w", err)
	}
	return msg, nil
}
