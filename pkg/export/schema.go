package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// artifactSchema is the JSON Schema every export artifact must satisfy.
// Consumers (evaluators, dashboards) depend on this shape.
const artifactSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["sessions", "events", "generated_at", "version"],
  "properties": {
    "sessions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name", "started_at", "meta"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string"},
          "started_at": {"type": "number"},
          "ended_at": {"type": "number"},
          "meta": {
            "type": "object",
            "required": ["pid", "cwd"],
            "properties": {
              "pid": {"type": "integer"},
              "cwd": {"type": "string"}
            }
          }
        }
      }
    },
    "events": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["provider", "api", "started_at", "ended_at", "duration_ms", "session_id"],
        "properties": {
          "provider": {"type": "string", "minLength": 1},
          "api": {"type": "string", "minLength": 1},
          "error": {"type": "string"},
          "started_at": {"type": "number"},
          "ended_at": {"type": "number"},
          "duration_ms": {"type": "number", "minimum": 0},
          "session_id": {"type": "string", "minLength": 1},
          "callsite": {
            "type": "object",
            "properties": {
              "file": {"type": "string"},
              "line": {"type": "integer"},
              "function": {"type": "string"}
            }
          }
        }
      }
    },
    "generated_at": {"type": "number"},
    "version": {"type": "integer"}
  }
}`

// ValidateBytes checks a serialized artifact against the export schema.
func ValidateBytes(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(artifactSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate artifact: %w", err)
	}
	if !result.Valid() {
		issues := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			issues = append(issues, desc.String())
		}
		return fmt.Errorf("artifact does not match export schema: %s", strings.Join(issues, "; "))
	}
	return nil
}

// ValidateFile checks an artifact on disk against the export schema.
func ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read artifact: %w", err)
	}
	return ValidateBytes(data)
}
