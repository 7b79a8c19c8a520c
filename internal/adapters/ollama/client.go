// Package ollama implements ports.ChatModel against an Ollama server's
// /api/chat endpoint, including native tool calling.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/melih/docker-agent/internal/core/domain"
)

const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultTimeout = 120 * time.Second
)

// Config configures the Ollama client.
type Config struct {
	BaseURL string
	Model   string
	// Timeout for each chat call. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// Client is a non-streaming Ollama chat client.
type Client struct {
	model      string
	endpoint   string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/api")
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		model:      cfg.Model,
		endpoint:   baseURL + "/api/chat",
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Model() string { return c.model }

// Chat sends the conversation and returns the assistant message.
func (c *Client) Chat(ctx context.Context, req domain.ChatRequest) (*domain.Message, error) {
	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: req.Messages,
		Tools:    req.Tools,
		Stream:   false,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal ollama request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ollama request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("ollama request failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode ollama response: %w", err)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("ollama error: %s", out.Error)
	}
	if out.Message == nil {
		return nil, fmt.Errorf("ollama response has no message")
	}

	msg := *out.Message
	if msg.Role == "" {
		msg.Role = domain.RoleAssistant
	}
	for i := range msg.ToolCalls {
		if msg.ToolCalls[i].Function.Arguments == nil {
			msg.ToolCalls[i].Function.Arguments = map[string]any{}
		}
	}
	return &msg, nil
}

type chatRequest struct {
	Model    string                  `json:"model"`
	Messages []domain.Message        `json:"messages"`
	Tools    []domain.ToolDefinition `json:"tools,omitempty"`
	Stream   bool                    `json:"stream"`
}

type chatResponse struct {
	Model      string          `json:"model"`
	Message    *domain.Message `json:"message"`
	Done       bool            `json:"done"`
	DoneReason string          `json:"done_reason"`
	Error      string          `json:"error"`
}
