package llm

import (
	"context"
)

// MockChatClient is a configurable mock for testing counselor chat flows.
// Set the function fields to control behavior in tests.
type MockChatClient struct {
	// ChatFunc is called when Chat is invoked.
	// If nil, returns an empty response and nil error.
	ChatFunc func(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// GenerateJSONFunc is called when GenerateJSON is invoked.
	// If nil, returns "{}" and nil error.
	GenerateJSONFunc func(ctx context.Context, instruction string) (string, error)

	// GenerateTextFunc is called when GenerateText is invoked.
	// If nil, returns empty string and nil error.
	GenerateTextFunc func(ctx context.Context, systemPrompt, prompt string) (string, error)

	// Model is returned by GetModel. Defaults to "mock-model".
	Model string

	// Call tracking for verification
	ChatCalls         int
	GenerateJSONCalls int
	GenerateTextCalls int
}

// NewMockChatClient creates a new mock with sensible defaults.
func NewMockChatClient() *MockChatClient {
	return &MockChatClient{Model: "mock-model"}
}

// Chat implements ChatClient.
func (m *MockChatClient) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	m.ChatCalls++
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, req)
	}
	return &ChatResponse{}, nil
}

// GenerateJSON implements ChatClient.
func (m *MockChatClient) GenerateJSON(ctx context.Context, instruction string) (string, error) {
	m.GenerateJSONCalls++
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, instruction)
	}
	return "{}", nil
}

// GenerateText implements ChatClient.
func (m *MockChatClient) GenerateText(ctx context.Context, systemPrompt, prompt string) (string, error) {
	m.GenerateTextCalls++
	if m.GenerateTextFunc != nil {
		return m.GenerateTextFunc(ctx, systemPrompt, prompt)
	}
	return "", nil
}

// GetModel implements ChatClient.
func (m *MockChatClient) GetModel() string {
	if m.Model == "" {
		return "mock-model"
	}
	return m.Model
}

// Reset clears call tracking counters.
func (m *MockChatClient) Reset() {
	m.ChatCalls = 0
	m.GenerateJSONCalls = 0
	m.GenerateTextCalls = 0
}

var _ ChatClient = (*MockChatClient)(nil)

// MockStrategistClient is a configurable mock for testing strategist chat flows.
type MockStrategistClient struct {
	// ConverseFunc is called when Converse is invoked.
	// If nil, returns empty string and nil error.
	ConverseFunc func(ctx context.Context, systemPrompt string, messages []Message) (string, error)

	ConverseCalls int
}

// Converse implements StrategistClient.
func (m *MockStrategistClient) Converse(ctx context.Context, systemPrompt string, messages []Message) (string, error) {
	m.ConverseCalls++
	if m.ConverseFunc != nil {
		return m.ConverseFunc(ctx, systemPrompt, messages)
	}
	return "", nil
}

var _ StrategistClient = (*MockStrategistClient)(nil)

// MockToolExecutor is a configurable mock for testing tool dispatch.
type MockToolExecutor struct {
	// ExecuteToolFunc is called when ExecuteTool is invoked.
	// If nil, returns "{}" and nil error.
	ExecuteToolFunc func(ctx context.Context, name, arguments string) (string, error)

	ExecuteToolCalls int
	// ExecutedTools records the tool names in call order.
	ExecutedTools []string
}

// ExecuteTool implements ToolExecutor.
func (m *MockToolExecutor) ExecuteTool(ctx context.Context, name, arguments string) (string, error) {
	m.ExecuteToolCalls++
	m.ExecutedTools = append(m.ExecutedTools, name)
	if m.ExecuteToolFunc != nil {
		return m.ExecuteToolFunc(ctx, name, arguments)
	}
	return "{}", nil
}

var _ ToolExecutor = (*MockToolExecutor)(nil)
