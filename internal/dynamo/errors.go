package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for setup-time validation.
var (
	// ErrInvalidProbe indicates a probe with no points or a non-positive size.
	ErrInvalidProbe = errors.New("dynamo: probe has no points or non-positive size")

	// ErrInvalidFrames indicates a non-positive frame or period count.
	ErrInvalidFrames = errors.New("dynamo: frame count must be positive")

	// ErrInvalidGrid indicates an empty or inverted grid range, or a bad step.
	ErrInvalidGrid = errors.New("dynamo: grid range is empty or step is not positive")

	// ErrInvalidMotion indicates an orbit or oscillation with bad parameters.
	ErrInvalidMotion = errors.New("dynamo: motion parameters out of valid bounds")

	// ErrUnknownProbe indicates a probe kind with no registered builder.
	ErrUnknownProbe = errors.New("dynamo: unknown probe kind")

	// ErrInvalidOutput indicates bad render settings (fps, image size).
	ErrInvalidOutput = errors.New("dynamo: output settings out of valid bounds")

	// ErrEmptyScene indicates a composer with nothing to draw.
	ErrEmptyScene = errors.New("dynamo: scene has no probes and no grid")
)

// ConfigError wraps a validation error with the offending setting.
type ConfigError struct {
	Field   string
	Value   any
	Wrapped error
}

func NewConfigError(field string, value any, err error) *ConfigError {
	return &ConfigError{Field: field, Value: value, Wrapped: err}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s=%v", e.Wrapped, e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}

// IsConfigError reports whether err carries a *ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
