package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskProcessingError_Unwrap(t *testing.T) {
	cause := errors.New("bus overflow")
	err := &TaskProcessingError{Architecture: "reactive", TaskID: "T-1", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "T-1")
	assert.Contains(t, err.Error(), "reactive")
}

func TestProviderError_Unwrap(t *testing.T) {
	cause := errors.New("status 429")
	err := &ProviderError{Provider: "openai", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "openai")
}

func TestConfigError_Message(t *testing.T) {
	err := &ConfigError{Path: "team.yaml", Reason: "duplicate member id tech_lead"}
	assert.Contains(t, err.Error(), "team.yaml")
	assert.Contains(t, err.Error(), "duplicate member id")

	bare := &ConfigError{Reason: "empty roster"}
	assert.Equal(t, "config error: empty roster", bare.Error())
}
