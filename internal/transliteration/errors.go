package transliteration

import (
	"errors"
	"fmt"
)

// Configuration errors. Every *ConfigError wraps exactly one of these.
var (
	ErrUnsupportedScript     = errors.New("unsupported script")
	ErrUnsupportedConvention = errors.New("unsupported convention")
	ErrUnsupportedDirection  = errors.New("unsupported direction")
	ErrUnsupportedOption     = errors.New("unsupported option")
)

// ConfigError is returned before any scanning when a Config cannot be honored.
type ConfigError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// TableError reports malformed static symbol data. It only ever comes out of
// NewTable and means the built-in tables need fixing.
type TableError struct {
	View   string
	Key    string
	Reason string
}

func (e *TableError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("symbol table %s: %s", e.View, e.Reason)
	}
	return fmt.Sprintf("symbol table %s: key %q: %s", e.View, e.Key, e.Reason)
}
