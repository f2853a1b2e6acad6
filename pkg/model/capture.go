package model

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// maxRawCapture caps how much of a non-JSON payload is retained verbatim.
const maxRawCapture = 4096

// Capture converts an arbitrary value into a JSON-representable tree of
// primitives, slices, and string-keyed maps. Values that cannot be
// serialized degrade to a placeholder instead of failing: a capture
// failure must never affect the outcome of the wrapped call.
func Capture(v any) any {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return Placeholder(v)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return Placeholder(v)
	}
	return out
}

// CaptureRaw converts a raw payload (typically an HTTP body) into the
// same tree shape as Capture. Non-JSON payloads are kept as a truncated
// string rather than dropped.
func CaptureRaw(data []byte) any {
	if len(data) == 0 {
		return nil
	}
	var out any
	if err := json.Unmarshal(data, &out); err == nil {
		return out
	}
	s := string(data)
	if len(s) > maxRawCapture {
		s = truncateValid(s, maxRawCapture)
	}
	return s
}

// Placeholder is the best-effort stand-in recorded when a request or
// response value cannot be serialized.
func Placeholder(v any) map[string]any {
	return map[string]any{"unserializable": fmt.Sprintf("%T", v)}
}

// truncateValid cuts s to at most n bytes without splitting a rune.
func truncateValid(s string, n int) string {
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
