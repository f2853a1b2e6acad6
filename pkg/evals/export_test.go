package evals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VyankateshD206/aiobs/pkg/model"
)

func openaiEvent() model.ObservedEvent {
	return model.ObservedEvent{
		SessionID: "s1",
		Event: model.Event{
			Provider: "openai",
			API:      "chat.completions.create",
			Request: map[string]any{
				"model": "gpt-4o-mini",
				"messages": []any{
					map[string]any{"role": "system", "content": "Be terse."},
					map[string]any{"role": "user", "content": "what is 2+2?"},
				},
			},
			Response: map[string]any{
				"choices": []any{
					map[string]any{"message": map[string]any{"role": "assistant", "content": "4"}},
				},
			},
		},
	}
}

func anthropicEvent() model.ObservedEvent {
	return model.ObservedEvent{
		SessionID: "s1",
		Event: model.Event{
			Provider: "anthropic",
			API:      "messages.create",
			Request: map[string]any{
				"model":  "claude-sonnet-4-20250514",
				"system": "Be terse.",
				"messages": []any{
					map[string]any{"role": "user", "content": []any{
						map[string]any{"type": "text", "text": "what is 2+2?"},
					}},
				},
			},
			Response: map[string]any{
				"content": []any{
					map[string]any{"type": "text", "text": "4"},
				},
			},
		},
	}
}

func TestInputsFromExport_OpenAIShape(t *testing.T) {
	artifact := &model.Export{Events: []model.ObservedEvent{openaiEvent()}}

	inputs := InputsFromExport(artifact)
	require.Len(t, inputs, 1)
	assert.Equal(t, "what is 2+2?", inputs[0].UserInput)
	assert.Equal(t, "Be terse.", inputs[0].SystemPrompt)
	assert.Equal(t, "4", inputs[0].ModelOutput)
}

func TestInputsFromExport_AnthropicShape(t *testing.T) {
	artifact := &model.Export{Events: []model.ObservedEvent{anthropicEvent()}}

	inputs := InputsFromExport(artifact)
	require.Len(t, inputs, 1)
	assert.Equal(t, "what is 2+2?", inputs[0].UserInput)
	assert.Equal(t, "Be terse.", inputs[0].SystemPrompt)
	assert.Equal(t, "4", inputs[0].ModelOutput)
}

func TestInputsFromExport_SkipsFailedEvents(t *testing.T) {
	failed := openaiEvent()
	failed.Error = "unexpected status 400 Bad Request"
	failed.Response = nil

	artifact := &model.Export{Events: []model.ObservedEvent{failed, anthropicEvent()}}

	inputs := InputsFromExport(artifact)
	require.Len(t, inputs, 1)
	assert.Equal(t, "4", inputs[0].ModelOutput)
}

func TestInputsFromExport_SkipsUnrecognizedShapes(t *testing.T) {
	unrecognized := model.ObservedEvent{
		SessionID: "s1",
		Event: model.Event{
			Provider: "openai",
			API:      "embeddings.create",
			Request:  map[string]any{"model": "text-embedding-3-small", "input": "hello"},
			Response: map[string]any{"data": []any{}},
		},
	}
	artifact := &model.Export{Events: []model.ObservedEvent{unrecognized}}
	assert.Empty(t, InputsFromExport(artifact))
}

func TestInputsFromExport_LastUserMessageWins(t *testing.T) {
	event := openaiEvent()
	request := event.Request.(map[string]any)
	request["messages"] = []any{
		map[string]any{"role": "user", "content": "first question"},
		map[string]any{"role": "assistant", "content": "first answer"},
		map[string]any{"role": "user", "content": "second question"},
	}

	inputs := InputsFromExport(&model.Export{Events: []model.ObservedEvent{event}})
	require.Len(t, inputs, 1)
	assert.Equal(t, "second question", inputs[0].UserInput)
}

func TestContentText(t *testing.T) {
	assert.Equal(t, "plain", contentText("plain"))
	assert.Equal(t, "a\nb", contentText([]any{
		map[string]any{"type": "text", "text": "a"},
		map[string]any{"type": "text", "text": "b"},
	}))
	assert.Equal(t, "", contentText(42))
	assert.Equal(t, "", contentText(nil))
}
