package config

import (
	"fmt"
	"strings"
)

// ConfigError is the base interface for all config errors.
// Allows callers to use errors.As to get config-specific details.
type ConfigError interface {
	error
	ConfigError() // marker method
}

// ParseError indicates the YAML file could not be read or parsed.
type ParseError struct {
	Filename string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Filename, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) ConfigError() {}

// SchemaError indicates the config structure doesn't match the schema.
// For example, wrong type for a field or unknown field.
type SchemaError struct {
	Filename string
	Messages []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error in %s: %s", e.Filename, strings.Join(e.Messages, "; "))
}

func (e *SchemaError) ConfigError() {}

// ValidationError indicates a semantic validation failure.
// The config parses correctly but values are invalid.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) ConfigError() {}
