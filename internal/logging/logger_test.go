package logging_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stackmill/secretsync/internal/logging"
)

func TestSecretIsRedactedInAllVerbs(t *testing.T) {
	s := logging.Secret("hunter2")

	assert.Equal(t, "[REDACTED]", s.String())
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%s", s))
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%v", s))
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%#v", s))
	assert.NotContains(t, fmt.Sprintf("param value: %s", s), "hunter2")
}

func TestRedactReplacesKnownSecrets(t *testing.T) {
	out := logging.Redact("wrote hunter2 to /p/secrets/db", []string{"hunter2"})
	assert.Equal(t, "wrote [REDACTED] to /p/secrets/db", out)
}

func TestRedactSkipsTrivialValues(t *testing.T) {
	// Very short values would redact half the message
	out := logging.Redact("set a=1", []string{"a", ""})
	assert.Equal(t, "set a=1", out)
}

func TestDebugEnabledViaEnv(t *testing.T) {
	t.Setenv(logging.DebugEnvVar, "1")
	assert.True(t, logging.New(false, true).DebugEnabled())
}

func TestDebugDisabledByDefault(t *testing.T) {
	t.Setenv(logging.DebugEnvVar, "")
	assert.False(t, logging.New(false, true).DebugEnabled())
}
