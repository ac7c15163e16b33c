package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackmill/secretsync/internal/config"
	sserrors "github.com/stackmill/secretsync/internal/errors"
	"github.com/stackmill/secretsync/internal/logging"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "secretsync.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Path: writeConfig(t, `
service: myapp
stage: dev
region: eu-central-1
secrets:
  file: secrets.dev.yaml
  ssmPath: /custom/prefix/
`),
		Logger: logging.New(false, true),
	}

	require.NoError(t, cfg.Load())
	assert.Equal(t, "myapp", cfg.Definition.Service)
	assert.Equal(t, "eu-central-1", cfg.Definition.Region)
	assert.Equal(t, "secrets.dev.yaml", cfg.Definition.Secrets.File)
	assert.Equal(t, "/custom/prefix/", cfg.Definition.Secrets.SSMPath)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Path: filepath.Join(t.TempDir(), "nope.yaml")}
	err := cfg.Load()
	require.Error(t, err)

	var configErr sserrors.ConfigError
	assert.True(t, errors.As(err, &configErr))
}

func TestLoadRequiresService(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Path: writeConfig(t, "stage: dev\n")}
	err := cfg.Load()
	require.Error(t, err)

	var configErr sserrors.ConfigError
	require.True(t, errors.As(err, &configErr))
	assert.Equal(t, "service", configErr.Field)
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Path: writeConfig(t, "service: [unclosed\n")}
	assert.Error(t, cfg.Load())
}

func TestEffectiveStagePrecedence(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Path: writeConfig(t, "service: myapp\nstage: staging\n")}
	require.NoError(t, cfg.Load())

	assert.Equal(t, "staging", cfg.EffectiveStage())

	cfg.Stage = "prod"
	assert.Equal(t, "prod", cfg.EffectiveStage())
}

func TestEffectiveStageDefault(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Path: writeConfig(t, "service: myapp\n")}
	require.NoError(t, cfg.Load())
	assert.Equal(t, "dev", cfg.EffectiveStage())
}
