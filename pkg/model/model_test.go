package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Open(t *testing.T) {
	s := Session{ID: "s1", Name: "n", StartedAt: 1}
	assert.True(t, s.Open())

	ended := 2.0
	s.EndedAt = &ended
	assert.False(t, s.Open())
}

func TestSession_JSONShape(t *testing.T) {
	s := Session{
		ID:        "abc",
		Name:      "run",
		StartedAt: 100.5,
		Meta:      SessionMeta{PID: 42, CWD: "/tmp"},
	}
	data, err := json.Marshal(s)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "abc", m["id"])
	assert.Equal(t, "run", m["name"])
	assert.Equal(t, 100.5, m["started_at"])
	assert.NotContains(t, m, "ended_at")
	meta, ok := m["meta"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(42), meta["pid"])
}

func TestEvent_Failed(t *testing.T) {
	assert.False(t, Event{}.Failed())
	assert.True(t, Event{Error: "boom"}.Failed())
}

func TestEvent_OmitsEmptyOptionalFields(t *testing.T) {
	e := Event{Provider: "openai", API: "chat.completions.create", Request: map[string]any{"model": "m"}}
	data, err := json.Marshal(e)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.NotContains(t, m, "error")
	assert.NotContains(t, m, "response")
	assert.NotContains(t, m, "callsite")
}

func TestObservedEvent_FlattensEvent(t *testing.T) {
	oe := ObservedEvent{
		Event:     Event{Provider: "anthropic", API: "messages.create", Request: nil},
		SessionID: "s1",
	}
	data, err := json.Marshal(oe)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	// The event fields sit beside session_id, not nested under "event".
	assert.Equal(t, "anthropic", m["provider"])
	assert.Equal(t, "s1", m["session_id"])
	assert.NotContains(t, m, "event")
}

func TestCallsite_IsZero(t *testing.T) {
	assert.True(t, Callsite{}.IsZero())
	assert.False(t, Callsite{File: "main.go"}.IsZero())
	assert.False(t, Callsite{Line: 10}.IsZero())
}
