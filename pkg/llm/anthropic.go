package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"
)

// AnthropicClient wraps the Anthropic API for the strategist conversations.
// It deliberately has no tool surface.
type AnthropicClient struct {
	client    *anthropic.Client
	model     string
	maxTokens int
	timeout   time.Duration
	logger    *zap.Logger
}

// AnthropicConfig holds configuration for creating a strategist client.
type AnthropicConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// NewAnthropicClient creates a new strategist client.
func NewAnthropicClient(cfg *AnthropicConfig, logger *zap.Logger) (*AnthropicClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1536
	}

	return &AnthropicClient{
		client:    anthropic.NewClient(cfg.APIKey),
		model:     cfg.Model,
		maxTokens: maxTokens,
		timeout:   cfg.Timeout,
		logger:    logger.Named("strategist-llm"),
	}, nil
}

// Converse sends a system prompt plus conversation history and returns the
// reply text. The configured timeout bounds the call; a trip surfaces as a
// context error for the caller to convert into a fallback message.
func (c *AnthropicClient) Converse(ctx context.Context, systemPrompt string, messages []Message) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req := anthropic.MessagesRequest{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		System:    systemPrompt,
	}
	for _, msg := range messages {
		role := anthropic.RoleUser
		if msg.Role == RoleAssistant {
			role = anthropic.RoleAssistant
		}
		content := msg.Content
		req.Messages = append(req.Messages, anthropic.Message{
			Role:    role,
			Content: []anthropic.MessageContent{{Type: "text", Text: &content}},
		})
	}

	start := time.Now()
	resp, err := c.client.CreateMessages(ctx, req)
	if err != nil {
		c.logger.Error("Strategist request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", fmt.Errorf("create messages: %w", err)
	}

	c.logger.Info("Strategist request completed",
		zap.Duration("elapsed", time.Since(start)))

	for _, block := range resp.Content {
		if block.Type == "text" && block.Text != nil {
			return *block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in response")
}

// Ensure AnthropicClient implements StrategistClient at compile time.
var _ StrategistClient = (*AnthropicClient)(nil)
