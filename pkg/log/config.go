package log

import (
	"fmt"
	"io"
	"strings"
)

// Config defines logging configuration.
type Config struct {
	// Level sets the minimum log level
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format sets the output format (json, text)
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	// RedactedFields lists extra fields to redact on top of DefaultRedactedFields
	RedactedFields []string `json:"redacted_fields" yaml:"redacted_fields" mapstructure:"redacted_fields"`

	// Writer overrides stderr
	Writer io.Writer `json:"-" yaml:"-" mapstructure:"-"`

	// DisableColors turns off ANSI codes in text output
	DisableColors bool `json:"-" yaml:"-" mapstructure:"-"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Level:  "warn",
		Format: "text",
	}
}

// ApplyConfig creates a logger from a configuration.
func ApplyConfig(config *Config) (Logger, error) {
	if config == nil {
		config = DefaultConfig()
	}

	level, err := ParseLevel(config.Level)
	if err != nil {
		return nil, err
	}

	options := []LoggerOption{WithLevel(level)}

	switch strings.ToLower(config.Format) {
	case "json":
		options = append(options, WithFormatter(&JSONFormatter{}))
	case "text", "":
		formatter := NewTextFormatter()
		formatter.DisableColors = config.DisableColors
		options = append(options, WithFormatter(formatter))
	default:
		return nil, fmt.Errorf("invalid log format: %s", config.Format)
	}

	var consoleOpts []ConsoleOutputOption
	if config.Writer != nil {
		consoleOpts = append(consoleOpts, WithCustomWriter(config.Writer))
	}
	options = append(options, WithOutput(NewConsoleOutput(consoleOpts...)))

	redacted := append([]string{}, DefaultRedactedFields...)
	redacted = append(redacted, config.RedactedFields...)
	options = append(options, WithHook(NewRedactionHook(redacted)))

	return NewLogger(options...), nil
}

// ParseLevel parses a level string into a Level.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return DebugLevel, nil
	case "info", "":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return InfoLevel, fmt.Errorf("unknown log level: %s", level)
	}
}
