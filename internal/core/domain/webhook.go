package domain

// Paths on the automation receiver that the agent posts to.
const (
	HookAgentAction  = "/webhook/agent-action"
	HookFileUploaded = "/webhook/file-uploaded"
)

// EventToolExecuted is the event name sent after a tool-assisted chat turn.
const EventToolExecuted = "tool_executed"

// ToolExecutedEvent is posted to HookAgentAction.
type ToolExecutedEvent struct {
	Event   string       `json:"event"`
	Message string       `json:"message"`
	Results []ToolResult `json:"results"`
}

// FileUploadedEvent is posted to HookFileUploaded.
type FileUploadedEvent struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Path     string `json:"path"`
}

// InboundEvent is what the automation receiver sends back to the agent.
type InboundEvent struct {
	Event *string        `json:"event"`
	Data  map[string]any `json:"data"`
}

// Delivery records how a webhook notification went. Callers are free to
// ignore it; the notifier has already logged the outcome.
type Delivery struct {
	URL        string
	StatusCode int
	Err        error
}

// OK reports whether the receiver accepted the notification.
func (d Delivery) OK() bool {
	return d.Err == nil && d.StatusCode >= 200 && d.StatusCode < 300
}
