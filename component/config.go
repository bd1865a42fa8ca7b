// Package component provides loading and parsing of engine.yaml configuration
// files. Engine configurations define planner metadata, capabilities, binary
// dependencies, and runtime settings.
package component

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/planforge-ai/sdk/types"
	"gopkg.in/yaml.v3"
)

// Config represents an engine.yaml configuration file.
// This is the primary configuration for planner engines in the PlanForge
// ecosystem.
type Config struct {
	// Identity
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`

	// Capabilities lists the modeling features the engine supports.
	// Feature names use the temporal and numeric planning taxonomy
	// (e.g., "ACTION_BASED", "DURATIVE_ACTIONS", "NUMERIC_FLUENTS").
	Capabilities []string `yaml:"capabilities,omitempty"`

	// PlanKinds lists the plan kinds the engine can validate
	// (e.g., "sequential", "time_triggered").
	PlanKinds []string `yaml:"plan_kinds,omitempty"`

	// Dependencies
	Dependencies *DependenciesConfig `yaml:"dependencies,omitempty"`

	// Worker configuration (for queue-based execution)
	Worker *WorkerConfig `yaml:"worker,omitempty"`

	// Build configuration
	Build *BuildConfig `yaml:"build,omitempty"`

	// Additional metadata
	Authors    []string `yaml:"authors,omitempty"`
	Contact    string   `yaml:"contact,omitempty"`
	License    string   `yaml:"license,omitempty"`
	Repository string   `yaml:"repository,omitempty"`
}

// SupportedKind converts the declared capabilities into a problem kind.
func (c *Config) SupportedKind() types.ProblemKind {
	features := make([]types.Feature, 0, len(c.Capabilities))
	for _, cap := range c.Capabilities {
		features = append(features, types.Feature(cap))
	}
	return types.NewProblemKind(features...)
}

// DependenciesConfig defines external dependencies required by the engine.
type DependenciesConfig struct {
	Binaries []BinaryDependency `yaml:"binaries,omitempty"`
}

// BinaryDependency describes a required external binary.
type BinaryDependency struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version,omitempty"` // Version constraint (e.g., ">=1.0.0")
	Install string `yaml:"install,omitempty"` // Installation command
}

// WorkerConfig defines configuration for queue-based worker execution.
type WorkerConfig struct {
	// Concurrency is the default number of concurrent solve workers.
	// Planner engines are CPU and memory bound, so the default is low.
	// Default: 1
	Concurrency int `yaml:"concurrency,omitempty"`

	// ShutdownTimeout is the time to wait for graceful shutdown.
	// Format: Go duration string (e.g., "30s", "1m")
	// Default: 30s
	ShutdownTimeout string `yaml:"shutdown_timeout,omitempty"`

	// QueuePrefix is the Redis key prefix for this engine's queue.
	// Default: "engine" (resulting in "engine:<name>:queue")
	QueuePrefix string `yaml:"queue_prefix,omitempty"`

	// HeartbeatInterval is the interval between health heartbeats.
	// Format: Go duration string (e.g., "10s")
	// Default: 10s
	HeartbeatInterval string `yaml:"heartbeat_interval,omitempty"`

	// MaxRetries is the maximum number of times to retry a failed solve job.
	// Default: 0 (no retries)
	MaxRetries int `yaml:"max_retries,omitempty"`
}

// GetShutdownTimeout parses the shutdown timeout string and returns a duration.
// Returns the default value if not set or invalid.
func (w *WorkerConfig) GetShutdownTimeout() time.Duration {
	if w == nil || w.ShutdownTimeout == "" {
		return 30 * time.Second
	}
	d, err := time.ParseDuration(w.ShutdownTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GetHeartbeatInterval parses the heartbeat interval string and returns a duration.
// Returns the default value if not set or invalid.
func (w *WorkerConfig) GetHeartbeatInterval() time.Duration {
	if w == nil || w.HeartbeatInterval == "" {
		return 10 * time.Second
	}
	d, err := time.ParseDuration(w.HeartbeatInterval)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// GetConcurrency returns the configured concurrency or the default value.
func (w *WorkerConfig) GetConcurrency() int {
	if w == nil || w.Concurrency <= 0 {
		return 1
	}
	return w.Concurrency
}

// GetQueuePrefix returns the queue prefix or the default value.
func (w *WorkerConfig) GetQueuePrefix() string {
	if w == nil || w.QueuePrefix == "" {
		return "engine"
	}
	return w.QueuePrefix
}

// BuildConfig defines build configuration for the engine.
type BuildConfig struct {
	Command string `yaml:"command,omitempty"` // Build command (e.g., "make build")
}

// Load reads and parses an engine.yaml file from the given path.
// If the path is a directory, it looks for engine.yaml or engine.yml in that
// directory.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	var configPath string
	if info.IsDir() {
		// Try engine.yaml first, then engine.yml
		yamlPath := filepath.Join(path, "engine.yaml")
		if _, err := os.Stat(yamlPath); err == nil {
			configPath = yamlPath
		} else {
			ymlPath := filepath.Join(path, "engine.yml")
			if _, err := os.Stat(ymlPath); err == nil {
				configPath = ymlPath
			} else {
				return nil, fmt.Errorf("no engine.yaml or engine.yml found in %s", path)
			}
		}
	} else {
		configPath = path
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// LoadFromDir searches for engine.yaml starting from the given directory
// and walking up to parent directories until found or root is reached.
func LoadFromDir(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		config, err := Load(absDir)
		if err == nil {
			return config, nil
		}

		// Move to parent directory
		parent := filepath.Dir(absDir)
		if parent == absDir {
			// Reached root
			return nil, fmt.Errorf("no engine.yaml found in %s or parent directories", dir)
		}
		absDir = parent
	}
}

// LoadFromCurrentDir loads engine.yaml from the current working directory.
func LoadFromCurrentDir() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadFromDir(cwd)
}
