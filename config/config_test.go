package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 10, cfg.Interview.MaxQuestions)
	assert.Equal(t, 5, cfg.Interview.MaxHallucinations)
	assert.Equal(t, 3, cfg.Resolver.MaxRetries)
	assert.Equal(t, time.Second, cfg.Resolver.RetryDelay)
	assert.Equal(t, ProviderOpenAI, cfg.Model.Provider)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
interview:
  max_questions: 5
model:
  provider: anthropic
  name: claude-3-5-sonnet-20241022
resolver:
  retry_delay: 250ms
transcript:
  dir: ./sessions
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Interview.MaxQuestions)
	// Fields missing from the file keep their defaults.
	assert.Equal(t, 5, cfg.Interview.MaxHallucinations)
	assert.Equal(t, ProviderAnthropic, cfg.Model.Provider)
	assert.Equal(t, 250*time.Millisecond, cfg.Resolver.RetryDelay)
	assert.Equal(t, "./sessions", cfg.Transcript.Dir)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeConfig(t, `
interview:
  max_questions: 0
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "max_questions")
}

func TestValidate_UnknownProvider(t *testing.T) {
	cfg := Default()
	cfg.Model.Provider = "bard"

	assert.ErrorContains(t, cfg.Validate(), "unknown model provider")
}
