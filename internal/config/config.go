// Package config loads stancelab configuration from an optional YAML file
// with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all stancelab configuration.
type Config struct {
	LLM        LLMConfig        `yaml:"llm"`
	Batch      BatchConfig      `yaml:"batch"`
	Checkpoint CheckpointConfig `yaml:"checkpoint"`
	Dataset    DatasetConfig    `yaml:"dataset"`
}

// LLMConfig configures the model and its retry policy.
type LLMConfig struct {
	Model          string `yaml:"model"`            // model selector (claude, gpt4, gemini)
	APIKey         string `yaml:"api_key"`          // optional; env var for the provider otherwise
	MaxAttempts    int    `yaml:"max_attempts"`     // retry attempts per batch call
	RetryBaseDelay string `yaml:"retry_base_delay"` // linear backoff unit, e.g. "2s"
}

// BatchConfig configures batching and fan-out.
type BatchConfig struct {
	Size  int `yaml:"size"`  // rows per batch
	Width int `yaml:"width"` // concurrent in-flight batches
}

// CheckpointConfig configures the checkpoint store.
type CheckpointConfig struct {
	Dir string `yaml:"dir"`
}

// DatasetConfig configures dataset locations and known targets.
type DatasetConfig struct {
	Dir     string                  `yaml:"dir"`
	Targets map[string]TargetConfig `yaml:"targets"`
}

// TargetConfig describes one stance target.
type TargetConfig struct {
	Language string `yaml:"language"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Model:          "claude",
			MaxAttempts:    3,
			RetryBaseDelay: "2s",
		},
		Batch: BatchConfig{
			Size:  100,
			Width: 4,
		},
		Checkpoint: CheckpointConfig{
			Dir: "checkpoints",
		},
		Dataset: DatasetConfig{
			Dir: "data",
			Targets: map[string]TargetConfig{
				"trump":     {Language: "english"},
				"netanyahu": {Language: "hebrew"},
			},
		},
	}
}

// Load reads config from path, falling back to defaults when the file is
// absent. A present-but-unparseable file is an error. Environment overrides
// are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies STANCELAB_* environment variables on top of the
// file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("STANCELAB_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("STANCELAB_CHECKPOINT_DIR"); v != "" {
		c.Checkpoint.Dir = v
	}
	if v := os.Getenv("STANCELAB_DATA_DIR"); v != "" {
		c.Dataset.Dir = v
	}
	if v := os.Getenv("STANCELAB_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Batch.Size = n
		}
	}
	if v := os.Getenv("STANCELAB_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Batch.Width = n
		}
	}
}

// Validate checks field ranges and duration syntax.
func (c *Config) Validate() error {
	if c.Batch.Size <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.Batch.Size)
	}
	if c.Batch.Width <= 0 {
		return fmt.Errorf("batch width must be positive, got %d", c.Batch.Width)
	}
	if c.LLM.MaxAttempts <= 0 {
		return fmt.Errorf("max attempts must be positive, got %d", c.LLM.MaxAttempts)
	}
	if _, err := c.RetryBaseDelay(); err != nil {
		return err
	}
	return nil
}

// RetryBaseDelay parses the configured backoff unit.
func (c *Config) RetryBaseDelay() (time.Duration, error) {
	if c.LLM.RetryBaseDelay == "" {
		return 2 * time.Second, nil
	}
	d, err := time.ParseDuration(c.LLM.RetryBaseDelay)
	if err != nil {
		return 0, fmt.Errorf("invalid retry_base_delay %q: %w", c.LLM.RetryBaseDelay, err)
	}
	return d, nil
}
