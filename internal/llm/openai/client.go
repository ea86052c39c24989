package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"analyzer-backend/internal/llm"
	"analyzer-backend/internal/shared/telemetry"
)

const maxCompletionTokens = 2048

// Client implements llm.Client using OpenAI Chat Completions.
type Client struct {
	api          *openai.Client
	defaultModel string
}

// NewClient constructs a new OpenAI client.
func NewClient(apiKey, defaultModel string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(defaultModel) == "" {
		defaultModel = "gpt-3.5-turbo"
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &Client{
		api:          openai.NewClientWithConfig(cfg),
		defaultModel: defaultModel,
	}, nil
}

// AnalyzeCode sends one completion request and returns the raw model output.
// The model name is passed through opaquely; unknown models fail only when
// the provider rejects them.
func (c *Client) AnalyzeCode(ctx context.Context, input llm.AnalyzeInput) (json.RawMessage, error) {
	model := strings.TrimSpace(input.Model)
	if model == "" {
		model = c.defaultModel
	}

	messages := BuildPrompt(input.Language, input.Code, input.StructureSummary)
	reqMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		reqMessages = append(reqMessages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	req := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    reqMessages,
		Temperature: 0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}
	// Reasoning models reject MaxTokens in favor of MaxCompletionTokens.
	if isReasoningModel(model) {
		req.MaxCompletionTokens = maxCompletionTokens
	} else {
		req.MaxTokens = maxCompletionTokens
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai response missing choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return nil, fmt.Errorf("openai response empty content")
	}

	telemetry.Info("llm.response", map[string]any{
		"model":             resp.Model,
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
		"total_tokens":      resp.Usage.TotalTokens,
	})

	return json.RawMessage(content), nil
}

func isReasoningModel(model string) bool {
	m := strings.ToLower(model)
	return strings.HasPrefix(m, "o1") || strings.HasPrefix(m, "o3") ||
		strings.HasPrefix(m, "o4") || strings.HasPrefix(m, "gpt-5")
}

var _ llm.Client = (*Client)(nil)
