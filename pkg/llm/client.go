package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/waypoint-hq/waypoint-engine/pkg/logging"
)

// Client provides access to OpenAI-compatible chat endpoints.
type Client struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// Config holds configuration for creating a chat client.
type Config struct {
	BaseURL string // e.g. "https://api.openai.com/v1"
	Model   string // e.g. "gpt-4o"
	APIKey  string
}

// NewClient creates a new OpenAI-compatible chat client.
func NewClient(cfg *Config, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		logger: logger.Named("llm"),
	}, nil
}

// Chat sends a full conversation, optionally with a tool catalog, and
// returns the oracle's reply. Tool calls are returned to the caller rather
// than executed here; the conversation loop owns dispatch.
func (c *Client) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	messages := c.buildMessages(req.Messages, req.SystemPrompt)
	tools := c.buildTools(req.Tools)

	temperature := float32(req.Temperature)
	if temperature == 0 {
		temperature = 0.7
	}

	c.logger.Debug("Oracle request",
		zap.String("model", c.model),
		zap.Int("message_count", len(messages)),
		zap.Int("tool_count", len(tools)),
		zap.String("latest_message", logging.SanitizePrompt(latestUserMessage(req.Messages))))

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Tools:       tools,
		Temperature: temperature,
	})
	if err != nil {
		c.logger.Error("Oracle request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.String("error", logging.SanitizeError(err)))
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	choice := resp.Choices[0]
	result := &ChatResponse{Content: choice.Message.Content}
	for _, tc := range choice.Message.ToolCalls {
		result.ToolCalls = append(result.ToolCalls, ToolCall{
			ID:   tc.ID,
			Type: string(tc.Type),
			Function: ToolCallFunc{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			},
		})
	}

	c.logger.Info("Oracle request completed",
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Int("tool_calls", len(result.ToolCalls)),
		zap.Duration("elapsed", time.Since(start)))

	return result, nil
}

// latestUserMessage returns the content of the most recent user turn,
// for log previews only.
func latestUserMessage(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content
		}
	}
	return ""
}

// GenerateJSON requests a JSON-object completion for a single instruction.
// Used by the research engine, which demands a complete structured record.
func (c *Client) GenerateJSON(ctx context.Context, instruction string) (string, error) {
	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: instruction},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		c.logger.Error("JSON completion failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", fmt.Errorf("json completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return resp.Choices[0].Message.Content, nil
}

// GenerateText requests a plain completion with a system prompt. Used by the
// essay brainstorm/review and live-research passthrough tools.
func (c *Client) GenerateText(ctx context.Context, systemPrompt, prompt string) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
	}
	if prompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleUser, Content: prompt,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("text completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return resp.Choices[0].Message.Content, nil
}

// GetModel returns the configured model name.
func (c *Client) GetModel() string {
	return c.model
}

// buildMessages converts our message format to OpenAI format.
func (c *Client) buildMessages(messages []Message, systemPrompt string) []openai.ChatCompletionMessage {
	var result []openai.ChatCompletionMessage

	if systemPrompt != "" {
		result = append(result, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}

	for _, msg := range messages {
		oaiMsg := openai.ChatCompletionMessage{
			Role:       msg.Role,
			Content:    msg.Content,
			ToolCallID: msg.ToolCallID,
		}
		for _, tc := range msg.ToolCalls {
			oaiMsg.ToolCalls = append(oaiMsg.ToolCalls, openai.ToolCall{
				ID:   tc.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      tc.Function.Name,
					Arguments: tc.Function.Arguments,
				},
			})
		}
		result = append(result, oaiMsg)
	}

	return result
}

// buildTools converts our tool definitions to OpenAI format.
func (c *Client) buildTools(tools []ToolDefinition) []openai.Tool {
	if len(tools) == 0 {
		return nil
	}

	result := make([]openai.Tool, len(tools))
	for i, def := range tools {
		paramsJSON, _ := json.Marshal(def.Parameters)
		result[i] = openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  json.RawMessage(paramsJSON),
			},
		}
	}

	return result
}
