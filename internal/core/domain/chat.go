package domain

// Role is the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is a single entry of a conversation with the language model.
type Message struct {
	Role      Role       `json:"role"`
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// ToolCall is a function invocation requested by the model.
type ToolCall struct {
	Function FunctionCall `json:"function"`
}

// FunctionCall names a registered tool and carries its decoded arguments.
type FunctionCall struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// ToolDefinition advertises one callable tool to the model.
type ToolDefinition struct {
	Type     string      `json:"type" yaml:"type"`
	Function FunctionDef `json:"function" yaml:"function"`
}

// FunctionDef is the name, description and JSON-schema parameters of a tool.
type FunctionDef struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	Parameters  map[string]any `json:"parameters" yaml:"parameters"`
}

// ChatRequest is one inference call: the history so far and, optionally,
// the tools the model may request.
type ChatRequest struct {
	Messages []Message
	Tools    []ToolDefinition
}

// ToolResult pairs an executed function with whatever it returned.
type ToolResult struct {
	Function string `json:"function"`
	Result   any    `json:"result"`
}

// ChatReply is what the agent answers to a user message.
type ChatReply struct {
	Response    string       `json:"response"`
	ToolResults []ToolResult `json:"tool_results,omitempty"`
}
