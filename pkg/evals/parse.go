package evals

import (
	"encoding/json"
	"regexp"
)

var (
	fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?```")
	bracedJSON = regexp.MustCompile(`(?s)\{.*\}`)
)

// parseJudgeResponse extracts the JSON object from a judge LLM's reply.
// Judges are instructed to answer with bare JSON but routinely wrap it
// in markdown fences or prose, so parsing degrades in stages: direct
// parse, fenced block, first brace-to-last-brace span.
func parseJudgeResponse(text string) (map[string]any, bool) {
	var parsed map[string]any
	if err := json.Unmarshal([]byte(text), &parsed); err == nil {
		return parsed, true
	}

	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		if err := json.Unmarshal([]byte(m[1]), &parsed); err == nil {
			return parsed, true
		}
	}

	if m := bracedJSON.FindString(text); m != "" {
		if err := json.Unmarshal([]byte(m), &parsed); err == nil {
			return parsed, true
		}
	}

	return nil, false
}

// truncate shortens s for inclusion in a parse-failure message.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
