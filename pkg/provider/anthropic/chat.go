package anthropic

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/VyankateshD206/aiobs/pkg/provider"
)

// defaultMaxTokens is used when a request does not set a limit; the
// messages API requires one.
const defaultMaxTokens = 4096

// ChatProvider implements provider.Provider over the Anthropic messages
// API. Wrapped with provider.Instrument it records every call; it also
// serves as the judge backend for the evals package.
type ChatProvider struct {
	client anthropic.Client
}

// NewChatProvider creates an Anthropic chat provider.
func NewChatProvider(apiKey string, opts ...option.RequestOption) *ChatProvider {
	all := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &ChatProvider{client: anthropic.NewClient(all...)}
}

// Provider returns the provider name.
func (p *ChatProvider) Provider() string {
	return Name
}

// Call makes a messages API call.
func (p *ChatProvider) Call(ctx context.Context, request provider.Request) (*provider.Response, error) {
	messages := []anthropic.MessageParam{}

	for _, msg := range request.Messages {
		switch msg.Role {
		case "system":
			// Carried in the system field below
		case "user":
			messages = append(messages, anthropic.NewUserMessage(
				anthropic.NewTextBlock(msg.Content),
			))
		case "assistant":
			messages = append(messages, anthropic.MessageParam{
				Role: anthropic.MessageParamRoleAssistant,
				Content: []anthropic.ContentBlockParamUnion{
					anthropic.NewTextBlock(msg.Content),
				},
			})
		}
	}

	maxTokens := request.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(request.Model),
		Messages:  messages,
		MaxTokens: int64(maxTokens),
	}
	if request.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: request.SystemPrompt},
		}
	}
	if request.Temperature > 0 {
		params.Temperature = anthropic.Float(request.Temperature)
	}

	response, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, err
	}

	content := ""
	for _, block := range response.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			content += text.Text
		}
	}

	return &provider.Response{
		Content: content,
		Model:   string(response.Model),
		Usage: &provider.TokenUsage{
			InputTokens:  int(response.Usage.InputTokens),
			OutputTokens: int(response.Usage.OutputTokens),
		},
	}, nil
}
