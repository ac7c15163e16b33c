package errors_test

import (
	goerrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sserrors "github.com/stackmill/secretsync/internal/errors"
)

func TestUserErrorFormatting(t *testing.T) {
	t.Parallel()

	err := sserrors.UserError{
		Message:    "Failed to write parameter",
		Details:    "ThrottlingException",
		Suggestion: "Wait a moment and try again",
	}

	msg := err.Error()
	assert.Contains(t, msg, "Failed to write parameter")
	assert.Contains(t, msg, "Details: ThrottlingException")
	assert.Contains(t, msg, "Try: Wait a moment and try again")
}

func TestUserErrorUnwrap(t *testing.T) {
	t.Parallel()

	inner := goerrors.New("boom")
	err := sserrors.UserError{Message: "wrapped", Err: inner}
	assert.ErrorIs(t, error(err), inner)
}

func TestConfigErrorFormatting(t *testing.T) {
	t.Parallel()

	err := sserrors.ConfigError{
		Field:      "secrets.file",
		Message:    "no secrets file configured",
		Suggestion: "Set 'secrets.file' in your secretsync.yaml",
	}

	msg := err.Error()
	assert.Contains(t, msg, "secrets.file")
	assert.Contains(t, msg, "no secrets file configured")
}

func TestFormatErrorIncludesPath(t *testing.T) {
	t.Parallel()

	err := sserrors.FormatError{
		Path:    "secrets.dev.yaml",
		Message: "top-level value must be a mapping, got a sequence",
	}
	assert.Contains(t, err.Error(), "secrets.dev.yaml")
	assert.Contains(t, err.Error(), "mapping")
}

func TestStoreErrorSuggestions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"access denied", goerrors.New("AccessDeniedException: not authorized"), "IAM permissions"},
		{"throttled", goerrors.New("ThrottlingException: slow down"), "throttled"},
		{"credentials", goerrors.New("failed to retrieve credentials"), "aws configure"},
		{"unknown", goerrors.New("something odd"), "Check AWS credentials"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			wrapped := sserrors.StoreError("put", tt.err)
			require.Error(t, wrapped)
			assert.Contains(t, wrapped.Error(), tt.expected)
			assert.ErrorIs(t, wrapped, tt.err)
		})
	}
}
