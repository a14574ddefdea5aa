// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
)

// ErrConfigMissing is a sentinel wrapped by every ConfigError
var ErrConfigMissing = errors.New("missing configuration")

// ConfigError is returned when a route's required configuration is absent.
// Message is the text sent back to the caller.
type ConfigError struct {
	Message string
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Missing)
}

func (e *ConfigError) Unwrap() error { return ErrConfigMissing }

// Helper constructor
func NewConfigError(message string, missing ...string) error {
	return &ConfigError{Message: message, Missing: missing}
}

// ValidationError is a caller mistake (missing name, id, ...)
type ValidationError struct {
	Message string
	Field   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Field)
}

func NewValidationError(message, field string) error {
	return &ValidationError{Message: message, Field: field}
}

// UpstreamError wraps a failed Jotform call. StatusCode is zero when the
// request never got a response.
type UpstreamError struct {
	Op         string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("jotform %s: status %d: %s", e.Op, e.StatusCode, string(e.Body))
	}
	return fmt.Sprintf("jotform %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func NewUpstreamError(op string, statusCode int, body []byte, err error) error {
	return &UpstreamError{Op: op, StatusCode: statusCode, Body: body, Err: err}
}
