// Package config loads the interviewmesh runtime configuration from a YAML
// file, with sane defaults for every field so an empty file is valid.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported model providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config is the full runtime configuration.
type Config struct {
	Interview  InterviewConfig  `yaml:"interview"`
	Model      ModelConfig      `yaml:"model"`
	Resolver   ResolverConfig   `yaml:"resolver"`
	Transcript TranscriptConfig `yaml:"transcript"`
	LogLevel   string           `yaml:"log_level"`
	LogFormat  string           `yaml:"log_format"`
}

// InterviewConfig bounds a single session.
type InterviewConfig struct {
	MaxQuestions      int `yaml:"max_questions"`
	MaxHallucinations int `yaml:"max_hallucinations"`
}

// ModelConfig selects the LLM backend.
type ModelConfig struct {
	Provider    string  `yaml:"provider"`
	Name        string  `yaml:"name"`
	Temperature float64 `yaml:"temperature"`
}

// ResolverConfig bounds the structured-output retry loop.
type ResolverConfig struct {
	MaxRetries int           `yaml:"max_retries"`
	RetryDelay time.Duration `yaml:"retry_delay"`
}

// UnmarshalYAML implements yaml.Unmarshaler, accepting retry_delay as a
// duration string like "250ms" or "1s".
func (c *ResolverConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		MaxRetries *int    `yaml:"max_retries"`
		RetryDelay *string `yaml:"retry_delay"`
	}

	if err := value.Decode(&raw); err != nil {
		return err
	}

	if raw.MaxRetries != nil {
		c.MaxRetries = *raw.MaxRetries
	}

	if raw.RetryDelay != nil {
		delay, err := time.ParseDuration(*raw.RetryDelay)
		if err != nil {
			return fmt.Errorf("parse resolver.retry_delay: %w", err)
		}
		c.RetryDelay = delay
	}

	return nil
}

// TranscriptConfig selects session log destinations. Empty values disable a
// destination.
type TranscriptConfig struct {
	Dir        string `yaml:"dir"`
	SQLitePath string `yaml:"sqlite_path"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Interview: InterviewConfig{
			MaxQuestions:      10,
			MaxHallucinations: 5,
		},
		Model: ModelConfig{
			Provider:    ProviderOpenAI,
			Name:        "gpt-4o-mini",
			Temperature: 0.7,
		},
		Resolver: ResolverConfig{
			MaxRetries: 3,
			RetryDelay: time.Second,
		},
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads and validates the configuration at path. Fields missing from
// the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks the configuration for values the engine cannot run with.
func (c Config) Validate() error {
	if c.Interview.MaxQuestions < 1 {
		return fmt.Errorf("config: interview.max_questions must be at least 1, got %d", c.Interview.MaxQuestions)
	}

	if c.Interview.MaxHallucinations < 1 {
		return fmt.Errorf("config: interview.max_hallucinations must be at least 1, got %d", c.Interview.MaxHallucinations)
	}

	if c.Resolver.MaxRetries < 1 {
		return fmt.Errorf("config: resolver.max_retries must be at least 1, got %d", c.Resolver.MaxRetries)
	}

	if c.Resolver.RetryDelay < 0 {
		return fmt.Errorf("config: resolver.retry_delay must not be negative, got %s", c.Resolver.RetryDelay)
	}

	switch c.Model.Provider {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("config: unknown model provider %q", c.Model.Provider)
	}

	if c.Model.Name == "" {
		return fmt.Errorf("config: model.name must not be empty")
	}

	return nil
}
