package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArchitecture is returned when a selector names an unknown
	// architecture. The current selection stays unchanged.
	ErrInvalidArchitecture = errors.New("invalid architecture")

	// ErrNotImplemented is returned when the selected architecture is declared
	// but has no implementation (hierarchical).
	ErrNotImplemented = errors.New("architecture not implemented")

	// ErrUnsupportedFormat is returned by export for unknown format identifiers.
	ErrUnsupportedFormat = errors.New("unsupported export format")

	// ErrNoHistory is the explicit marker returned by performance comparison
	// when no task has been processed yet.
	ErrNoHistory = errors.New("no processing history available")
)

// ConfigError indicates a missing or malformed roster configuration. It is
// fatal at startup.
type ConfigError struct {
	Path   string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("config error: %s", e.Reason)
	}
	return fmt.Sprintf("config error in %s: %s", e.Path, e.Reason)
}

// ProviderError wraps a failure of the response generator, including schema
// violations in its structured output. It is always absorbed at the agent
// boundary via deterministic fallbacks and never surfaces to callers.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// TaskProcessingError reports an unexpected internal failure mid-strategy.
// The in-progress run is abandoned and no partial result is recorded.
type TaskProcessingError struct {
	Architecture string
	TaskID       string
	Err          error
}

func (e *TaskProcessingError) Error() string {
	return fmt.Sprintf("processing task %s with %s architecture: %v", e.TaskID, e.Architecture, e.Err)
}

func (e *TaskProcessingError) Unwrap() error { return e.Err }
