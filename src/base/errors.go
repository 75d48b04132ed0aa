package base

import "fmt"

// FormatError is malformed compact notation or a malformed move string.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format error: %q: %s", e.Input, e.Reason)
}

// ValidationError is a well-formed value that is not a square, piece code,
// orientation or position.
type ValidationError struct {
	Kind   string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.Value, e.Reason)
}

// ConfigurationError aborts board construction.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}
