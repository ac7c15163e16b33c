// Package state records which namespace prefix a deploy actually used, so
// remove can clean up what was deployed rather than what the current
// configuration would compute.
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Store is the consumed lookup for previously deployed namespace prefixes
type Store interface {
	// RecordPrefix remembers the prefix used by a deploy.
	RecordPrefix(service, stage, prefix string) error

	// DeployedPrefix returns the recorded prefix for a deployment, or
	// ok=false when none was recorded.
	DeployedPrefix(service, stage string) (string, bool, error)

	// ClearPrefix forgets the record after a successful remove.
	ClearPrefix(service, stage string) error
}

const stateFile = "deployments.yaml"

// FileStore implements Store using a single YAML document on disk
type FileStore struct {
	baseDir string
	mu      sync.Mutex
}

// NewFileStore creates a file-based state store
func NewFileStore(baseDir string) *FileStore {
	return &FileStore{baseDir: baseDir}
}

// DefaultStateDir returns the default state directory
func DefaultStateDir() string {
	// Check for test environment variable first
	if testDir := os.Getenv("SECRETSYNC_STATE_DIR"); testDir != "" {
		return testDir
	}

	// Try to use XDG_DATA_HOME first
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "secretsync")
	}

	// Fall back to ~/.local/share
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "secretsync")
	}

	// Last resort: use temp directory
	return filepath.Join(os.TempDir(), "secretsync")
}

// RecordPrefix remembers the prefix used by a deploy
func (fs *FileStore) RecordPrefix(service, stage, prefix string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	records, err := fs.load()
	if err != nil {
		return err
	}

	records[deploymentKey(service, stage)] = prefix
	return fs.save(records)
}

// DeployedPrefix returns the recorded prefix for a deployment
func (fs *FileStore) DeployedPrefix(service, stage string) (string, bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	records, err := fs.load()
	if err != nil {
		return "", false, err
	}

	prefix, ok := records[deploymentKey(service, stage)]
	return prefix, ok && prefix != "", nil
}

// ClearPrefix forgets the record after a successful remove
func (fs *FileStore) ClearPrefix(service, stage string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	records, err := fs.load()
	if err != nil {
		return err
	}

	delete(records, deploymentKey(service, stage))
	return fs.save(records)
}

func (fs *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(filepath.Join(fs.baseDir, stateFile))
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	records := make(map[string]string)
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	return records, nil
}

func (fs *FileStore) save(records map[string]string) error {
	if err := os.MkdirAll(fs.baseDir, 0700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(filepath.Join(fs.baseDir, stateFile), data, 0600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

func deploymentKey(service, stage string) string {
	return service + "/" + stage
}
