package provider

import (
	"context"

	"github.com/VyankateshD206/aiobs/pkg/model"
)

// Provider is an interface for LLM API providers. It is the
// dependency-injected seam that Instrument wraps.
type Provider interface {
	// Call makes an LLM API call
	Call(ctx context.Context, request Request) (*Response, error)

	// Provider returns the provider name
	Provider() string
}

// Request contains the request parameters for an LLM call.
type Request struct {
	Model        string    `json:"model"`
	Messages     []Message `json:"messages"`
	SystemPrompt string    `json:"system_prompt,omitempty"`
	Temperature  float64   `json:"temperature,omitempty"`
	MaxTokens    int       `json:"max_tokens,omitempty"`
}

// Message is a single conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Response contains the response from an LLM call.
type Response struct {
	Content string      `json:"content"`
	Model   string      `json:"model,omitempty"`
	Usage   *TokenUsage `json:"usage,omitempty"`
}

// TokenUsage reports token consumption for a call.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Recorder receives completed call events. The collector implements it;
// interceptors never know session identity, only how to submit events.
type Recorder interface {
	Record(event model.Event)
}
