package llm

import (
	"context"
	"fmt"
	"strings"

	"reviewdash/reviewdash/utils/logging"

	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o"
)

// GPTClient talks to an OpenAI compatible chat completions endpoint.
type GPTClient struct {
	client *openai.Client
	model  string
}

func NewGPTClient(apiKey, baseURL, model string) *GPTClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	return &GPTClient{client: openai.NewClientWithConfig(cfg), model: model}
}

// Run executes a single completion. An empty model on req uses the client's.
func (c *GPTClient) Run(ctx context.Context, req ChatRequest) (string, error) {
	defer logging.LogDuration(ctx, "gpt_service_run")()

	model := req.Model
	if model == "" {
		model = c.model
	}
	gptReq := openai.ChatCompletionRequest{
		Model:    model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(req.Messages)),
	}
	for _, m := range req.Messages {
		gptReq.Messages = append(gptReq.Messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	if req.ResponseFormat != nil {
		gptReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatType(req.ResponseFormat.Type),
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, gptReq)
	if err != nil {
		return "", fmt.Errorf("gpt request failed: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}
