// reviewdash/services/llm/llm.go
package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when the model answers without content.
var ErrEmptyResponse = errors.New("no content in model response")

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ResponseFormat struct {
	Type string `json:"type"`
}

// JSONObject asks the model to answer with a single JSON object.
var JSONObject = &ResponseFormat{Type: "json_object"}

type ChatRequest struct {
	Model          string          `json:"model,omitempty"`
	Messages       []Message       `json:"messages"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// Completer runs one non-streaming chat completion and returns the reply text.
type Completer interface {
	Run(ctx context.Context, req ChatRequest) (string, error)
}
