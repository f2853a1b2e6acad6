package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/VyankateshD206/aiobs/pkg/provider"
)

// ChatProvider implements provider.Provider over the OpenAI chat
// completions API. Wrapped with provider.Instrument it records every
// call; it also serves as the judge backend for the evals package.
type ChatProvider struct {
	client openai.Client
}

// NewChatProvider creates an OpenAI chat provider.
func NewChatProvider(apiKey string, opts ...option.RequestOption) *ChatProvider {
	all := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &ChatProvider{client: openai.NewClient(all...)}
}

// Provider returns the provider name.
func (p *ChatProvider) Provider() string {
	return Name
}

// Call makes a chat completion call.
func (p *ChatProvider) Call(ctx context.Context, request provider.Request) (*provider.Response, error) {
	messages := []openai.ChatCompletionMessageParamUnion{}

	if request.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(request.SystemPrompt))
	}

	for _, msg := range request.Messages {
		switch msg.Role {
		case "system":
			// Handled above
		case "user":
			messages = append(messages, openai.UserMessage(msg.Content))
		case "assistant":
			messages = append(messages, openai.AssistantMessage(msg.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(request.Model),
		Messages: messages,
	}
	if request.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(request.MaxTokens))
	}
	if request.Temperature > 0 {
		params.Temperature = openai.Float(request.Temperature)
	}

	response, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, err
	}

	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("no response choices returned")
	}

	return &provider.Response{
		Content: response.Choices[0].Message.Content,
		Model:   response.Model,
		Usage: &provider.TokenUsage{
			InputTokens:  int(response.Usage.PromptTokens),
			OutputTokens: int(response.Usage.CompletionTokens),
		},
	}, nil
}
