// Package evals provides LLM-as-judge evaluators that consume observed
// model output, either live or from export artifacts. Evaluators are
// downstream consumers of the event contract; the collector never
// depends on them.
package evals

import (
	"fmt"
)

// Status is the outcome of one evaluation.
type Status string

const (
	StatusPassed Status = "passed"
	StatusFailed Status = "failed"
	StatusError  Status = "error"
)

// Input is one model interaction to evaluate.
type Input struct {
	UserInput    string `json:"user_input"`
	SystemPrompt string `json:"system_prompt,omitempty"`
	ModelOutput  string `json:"model_output"`
}

// AssertionDetail describes one check made by an evaluator.
type AssertionDetail struct {
	Name     string `json:"name"`
	Passed   bool   `json:"passed"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Message  string `json:"message"`
}

// Result is the outcome of evaluating one Input.
type Result struct {
	Status     Status            `json:"status"`
	Score      float64           `json:"score"`
	EvalName   string            `json:"eval_name"`
	Message    string            `json:"message"`
	Assertions []AssertionDetail `json:"assertions,omitempty"`
	Details    map[string]any    `json:"details,omitempty"`
}

// Passed reports whether the evaluation completed and passed.
func (r Result) Passed() bool {
	return r.Status == StatusPassed
}

// errorResult builds the Result returned when the judge call itself fails.
func errorResult(evalName string, err error) Result {
	return Result{
		Status:   StatusError,
		Score:    0,
		EvalName: evalName,
		Message:  fmt.Sprintf("evaluation failed: %v", err),
	}
}

// severityCounts tallies violation severities for a result message.
func severityCounts(violations []map[string]any) map[string]int {
	counts := make(map[string]int)
	for _, v := range violations {
		sev, _ := v["severity"].(string)
		if sev == "" {
			sev = "unknown"
		}
		counts[sev]++
	}
	return counts
}

// stringField reads a string value out of a parsed judge response.
func stringField(m map[string]any, key, fallback string) string {
	if s, ok := m[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

// violationList normalizes the judge's violations array.
func violationList(parsed map[string]any, key string) []map[string]any {
	raw, _ := parsed[key].([]any)
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
