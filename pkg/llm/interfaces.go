// Package llm provides the oracle clients used by the counselor and
// strategist conversation loops.
package llm

import (
	"context"
)

// ChatClient is the contract around the tool-capable oracle. Given a prompt
// and an optional tool catalog it returns either free text or a structured
// tool call; the loop around it decides what to do with either.
// Use this interface for dependency injection to enable mocking in tests.
type ChatClient interface {
	// Chat sends a full conversation and returns the oracle's reply.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// GenerateJSON requests a structured JSON-object completion for a
	// single instruction. The returned string is the raw model output.
	GenerateJSON(ctx context.Context, instruction string) (string, error)

	// GenerateText requests a plain completion with a system prompt.
	GenerateText(ctx context.Context, systemPrompt, prompt string) (string, error)

	// GetModel returns the configured model name.
	GetModel() string
}

// StrategistClient is the contract around the deep-reasoning oracle.
// It never receives tools.
type StrategistClient interface {
	// Converse sends a system prompt plus history and returns the reply text.
	Converse(ctx context.Context, systemPrompt string, messages []Message) (string, error)
}

// Message role constants.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message represents a chat message.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ToolCall represents a tool call from the oracle.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function ToolCallFunc `json:"function"`
}

// ToolCallFunc represents a function call within a tool call.
type ToolCallFunc struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ChatRequest is a single oracle round trip.
type ChatRequest struct {
	SystemPrompt string
	Messages     []Message
	Tools        []ToolDefinition
	Temperature  float64
}

// ChatResponse carries either free text or tool calls. The conversation
// loop honors at most one tool call per user message.
type ChatResponse struct {
	Content   string
	ToolCalls []ToolCall
}

// HasToolCall reports whether the oracle requested a tool invocation.
func (r *ChatResponse) HasToolCall() bool {
	return len(r.ToolCalls) > 0
}

// ToolExecutor defines the interface for executing tools.
type ToolExecutor interface {
	ExecuteTool(ctx context.Context, name string, arguments string) (string, error)
}

// Ensure Client implements ChatClient at compile time.
var _ ChatClient = (*Client)(nil)
