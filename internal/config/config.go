package config

import (
	"encoding/json"
	"fmt"

	"github.com/robfig/cron/v3"
)

// Config represents the aiobs SDK configuration
type Config struct {
	// Data directory
	DataDir string `json:"data_dir" mapstructure:"data_dir"`

	// Export artifact settings
	Export ExportConfig `json:"export" mapstructure:"export"`

	// Session defaults
	Session SessionConfig `json:"session" mapstructure:"session"`

	// Logging
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// ExportConfig holds export artifact configuration
type ExportConfig struct {
	// Dir is the directory export artifacts are written to
	Dir string `json:"dir" mapstructure:"dir"`

	// AutoFlush is an optional five-field cron expression for
	// scheduled flushes; empty disables them
	AutoFlush string `json:"auto_flush" mapstructure:"auto_flush"`
}

// SessionConfig holds session defaults
type SessionConfig struct {
	// DefaultName is used when a session is opened without a name
	DefaultName string `json:"default_name" mapstructure:"default_name"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level   string `json:"level" mapstructure:"level"`
	File    string `json:"file" mapstructure:"file"`
	Console bool   `json:"console" mapstructure:"console"`
	Pretty  bool   `json:"pretty" mapstructure:"pretty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Export: ExportConfig{
			Dir: ".",
		},
		Session: SessionConfig{
			DefaultName: "session",
		},
		Logging: LoggingConfig{
			Level:   "info",
			Console: true,
		},
	}
}

// String returns a JSON representation of the config
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Export.Dir == "" {
		return fmt.Errorf("export dir is required")
	}

	if c.Export.AutoFlush != "" {
		if _, err := cron.ParseStandard(c.Export.AutoFlush); err != nil {
			return fmt.Errorf("invalid auto_flush schedule %q: %w", c.Export.AutoFlush, err)
		}
	}

	if c.Logging.Level != "" {
		validLevels := []string{"trace", "debug", "info", "warn", "error"}
		valid := false
		for _, vl := range validLevels {
			if c.Logging.Level == vl {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("invalid log level %s (must be: trace, debug, info, warn, error)", c.Logging.Level)
		}
	}

	return nil
}
