// Package config holds folproof's on-disk configuration: ambient settings
// (name/version/logging), the embedding backend for premise ranking, and
// the resolution engine's resource budget.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all folproof configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Embedding engine configuration for premise selection (internal/rank).
	Embedding EmbeddingConfig `yaml:"embedding"`

	// Selection configures the premise-selection adapter's cap on ranked
	// theorems.
	Selection SelectionConfig `yaml:"selection"`

	Logging LoggingConfig `yaml:"logging"`

	// Resolution engine resource limits.
	Limits ProverLimits `yaml:"limits"`
}

// EmbeddingConfig selects and parameterizes the premise-ranking backend.
type EmbeddingConfig struct {
	Provider       string `yaml:"provider"` // "hash" (default), "genai", "ollama"
	GenAIAPIKey    string `yaml:"genai_api_key"`
	GenAIModel     string `yaml:"genai_model"`
	TaskType       string `yaml:"task_type"`
	OllamaEndpoint string `yaml:"ollama_endpoint"`
	OllamaModel    string `yaml:"ollama_model"`
}

// SelectionConfig bounds how many ranked theorems (lemmas) a proof may draw
// on as premises.
type SelectionConfig struct {
	// Limit caps the ranked theorem pool kept per Prove call. 0 means no
	// cap: every ranked theorem is kept.
	Limit int `yaml:"limit"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "folproof",
		Version: "1.0.0",

		Embedding: EmbeddingConfig{
			Provider:       "hash",
			GenAIModel:     "gemini-embedding-001",
			TaskType:       "RETRIEVAL_QUERY",
			OllamaEndpoint: "http://localhost:11434",
			OllamaModel:    "embeddinggemma",
		},

		Selection: SelectionConfig{Limit: 25},

		Logging: LoggingConfig{Verbose: false},

		Limits: DefaultProverLimits(),
	}
}

// Load loads configuration from a YAML file, falling back to defaults (plus
// environment overrides) if the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes configuration to a YAML file, creating parent directories as
// needed.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("config: creating %s: %w", dir, err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshaling: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides lets deployment environments override embedding
// credentials without editing the checked-in config file.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GENAI_API_KEY"); key != "" {
		c.Embedding.GenAIAPIKey = key
		if c.Embedding.Provider == "" || c.Embedding.Provider == "hash" {
			c.Embedding.Provider = "genai"
		}
	}
	if endpoint := os.Getenv("OLLAMA_ENDPOINT"); endpoint != "" {
		c.Embedding.OllamaEndpoint = endpoint
	}
	if model := os.Getenv("OLLAMA_EMBEDDING_MODEL"); model != "" {
		c.Embedding.OllamaModel = model
	}
}
