package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "claude", cfg.LLM.Model)
	assert.Equal(t, 100, cfg.Batch.Size)
	assert.Equal(t, 4, cfg.Batch.Width)
	assert.Equal(t, 3, cfg.LLM.MaxAttempts)
	assert.Equal(t, "checkpoints", cfg.Checkpoint.Dir)
	assert.Contains(t, cfg.Dataset.Targets, "trump")
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stancelab.yaml")
	content := `
llm:
  model: gemini
  max_attempts: 5
  retry_base_delay: 500ms
batch:
  size: 25
  width: 2
checkpoint:
  dir: /tmp/cp
dataset:
  dir: /tmp/data
  targets:
    obama:
      language: english
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.LLM.Model)
	assert.Equal(t, 5, cfg.LLM.MaxAttempts)
	assert.Equal(t, 25, cfg.Batch.Size)
	assert.Equal(t, 2, cfg.Batch.Width)
	assert.Equal(t, "/tmp/cp", cfg.Checkpoint.Dir)
	assert.Equal(t, "english", cfg.Dataset.Targets["obama"].Language)

	d, err := cfg.RetryBaseDelay()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, d)
}

func TestLoad_MalformedFileIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm: [not a map"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("model and dirs", func(t *testing.T) {
		t.Setenv("STANCELAB_MODEL", "gpt4")
		t.Setenv("STANCELAB_CHECKPOINT_DIR", "/env/cp")
		t.Setenv("STANCELAB_DATA_DIR", "/env/data")

		cfg := Default()
		cfg.applyEnvOverrides()

		assert.Equal(t, "gpt4", cfg.LLM.Model)
		assert.Equal(t, "/env/cp", cfg.Checkpoint.Dir)
		assert.Equal(t, "/env/data", cfg.Dataset.Dir)
	})

	t.Run("numeric overrides ignore garbage", func(t *testing.T) {
		t.Setenv("STANCELAB_BATCH_SIZE", "50")
		t.Setenv("STANCELAB_CONCURRENCY", "not-a-number")

		cfg := Default()
		cfg.applyEnvOverrides()

		assert.Equal(t, 50, cfg.Batch.Size)
		assert.Equal(t, 4, cfg.Batch.Width)
	})
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Batch.Size = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.LLM.RetryBaseDelay = "nonsense"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.LLM.MaxAttempts = -1
	assert.Error(t, cfg.Validate())
}
