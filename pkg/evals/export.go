package evals

import (
	"strings"

	"github.com/VyankateshD206/aiobs/pkg/model"
)

// InputsFromExport extracts evaluatable interactions from an export
// artifact. Chat-completion style events contribute one Input each;
// events without a recognizable prompt/output pair are skipped.
// Extraction is best-effort over the opaque request/response trees and
// understands both the OpenAI and Anthropic wire shapes.
func InputsFromExport(artifact *model.Export) []Input {
	inputs := make([]Input, 0, len(artifact.Events))
	for _, event := range artifact.Events {
		if event.Failed() {
			continue
		}
		input, ok := inputFromEvent(event.Event)
		if ok {
			inputs = append(inputs, input)
		}
	}
	return inputs
}

func inputFromEvent(event model.Event) (Input, bool) {
	request, ok := event.Request.(map[string]any)
	if !ok {
		return Input{}, false
	}

	input := Input{}

	// System prompt: OpenAI uses a system-role message, Anthropic a
	// top-level "system" field.
	if system, ok := request["system"].(string); ok {
		input.SystemPrompt = system
	}

	messages, _ := request["messages"].([]any)
	for _, raw := range messages {
		msg, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		role, _ := msg["role"].(string)
		content := contentText(msg["content"])
		switch role {
		case "user":
			input.UserInput = content
		case "system":
			if input.SystemPrompt == "" {
				input.SystemPrompt = content
			}
		}
	}

	input.ModelOutput = outputText(event.Response)
	if input.UserInput == "" || input.ModelOutput == "" {
		return Input{}, false
	}
	return input, true
}

// contentText flattens a message content value: either a plain string
// or a list of typed blocks with text fields.
func contentText(v any) string {
	switch content := v.(type) {
	case string:
		return content
	case []any:
		var parts []string
		for _, raw := range content {
			block, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			if text, ok := block["text"].(string); ok {
				parts = append(parts, text)
			}
		}
		return strings.Join(parts, "\n")
	default:
		return ""
	}
}

// outputText extracts the assistant text from a captured response tree.
func outputText(v any) string {
	response, ok := v.(map[string]any)
	if !ok {
		return ""
	}

	// OpenAI: choices[0].message.content
	if choices, ok := response["choices"].([]any); ok && len(choices) > 0 {
		if choice, ok := choices[0].(map[string]any); ok {
			if message, ok := choice["message"].(map[string]any); ok {
				if content, ok := message["content"].(string); ok {
					return content
				}
			}
		}
	}

	// Anthropic: content[0].text. A captured provider.Response also
	// lands here, with content as a plain string.
	return contentText(response["content"])
}
