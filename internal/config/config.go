package config

import (
	"os"

	sserrors "github.com/stackmill/secretsync/internal/errors"
	"github.com/stackmill/secretsync/internal/logging"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime configuration
type Config struct {
	Path       string
	Stage      string // --stage flag, overrides the definition default
	Logger     *logging.Logger
	Definition *Definition
}

// Definition represents the secretsync.yaml structure
type Definition struct {
	Service string        `yaml:"service"`
	Stage   string        `yaml:"stage,omitempty"`
	Region  string        `yaml:"region,omitempty"`
	Profile string        `yaml:"profile,omitempty"`
	Secrets SecretsConfig `yaml:"secrets"`
}

// SecretsConfig holds the secrets file location and the optional namespace
// prefix override
type SecretsConfig struct {
	File    string `yaml:"file,omitempty"`
	SSMPath string `yaml:"ssmPath,omitempty"`
}

// Load reads and parses the secretsync.yaml file
func (c *Config) Load() error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return sserrors.ConfigError{
				Field:      "path",
				Value:      c.Path,
				Message:    "configuration file not found",
				Suggestion: "Create a secretsync.yaml with 'service', 'stage' and 'secrets.file' fields",
			}
		}
		return sserrors.UserError{
			Message:    "Failed to read configuration file",
			Details:    err.Error(),
			Suggestion: "Check file permissions and path",
			Err:        err,
		}
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return sserrors.ConfigError{
			Message:    "invalid YAML syntax in configuration file",
			Suggestion: "Check for indentation errors, missing quotes, or invalid characters. Use a YAML validator",
		}
	}

	if def.Service == "" {
		return sserrors.ConfigError{
			Field:      "service",
			Message:    "service name is required",
			Suggestion: "Set 'service: <name>' at the top of your secretsync.yaml",
		}
	}

	c.Definition = &def
	return nil
}

// EffectiveStage returns the stage from the --stage flag, falling back to the
// definition default, then to "dev".
func (c *Config) EffectiveStage() string {
	if c.Stage != "" {
		return c.Stage
	}
	if c.Definition != nil && c.Definition.Stage != "" {
		return c.Definition.Stage
	}
	return "dev"
}
