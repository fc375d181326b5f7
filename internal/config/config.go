// Package config loads the binary's configuration from a yaml file plus
// environment variables (optionally via a .env file). Credentials are
// resolved here, at the outer boundary; the core packages only ever see
// already-resolved values.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EmbeddingConfig configures the embedding provider client.
type EmbeddingConfig struct {
	Provider    string `yaml:"provider"`
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// ChatConfig configures the chat-completion provider client. Its
// credential is separate from the embedding credential.
type ChatConfig struct {
	Provider    string `yaml:"provider"`
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// CatalogConfig points at the catalog export and its files directory.
type CatalogConfig struct {
	ExportPath string `yaml:"export_path"`
	FilesRoot  string `yaml:"files_root"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	DBPath    string          `yaml:"db_path"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Chat      ChatConfig      `yaml:"chat"`
	Catalog   CatalogConfig   `yaml:"catalog"`
}

// Load reads the config from a path. A missing file yields defaults.
// A .env file in the working directory is loaded first if present.
func Load(path string) (*AppConfig, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// EmbeddingAPIKey resolves the embedding credential: environment
// variable first, then an operator override via SEMINDEX_EMBEDDING_KEY.
func (c *AppConfig) EmbeddingAPIKey() string {
	if key := os.Getenv(c.Embedding.APIKeyEnv); key != "" {
		return key
	}
	return os.Getenv("SEMINDEX_EMBEDDING_KEY")
}

// ChatAPIKey resolves the chat credential with the same pattern.
func (c *AppConfig) ChatAPIKey() string {
	if key := os.Getenv(c.Chat.APIKeyEnv); key != "" {
		return key
	}
	return os.Getenv("SEMINDEX_CHAT_KEY")
}

// EmbeddingTimeout returns the embedding client timeout.
func (c *AppConfig) EmbeddingTimeout() time.Duration {
	return time.Duration(c.Embedding.TimeoutSecs) * time.Second
}

// ChatTimeout returns the chat client timeout.
func (c *AppConfig) ChatTimeout() time.Duration {
	return time.Duration(c.Chat.TimeoutSecs) * time.Second
}

// DefaultDBPath returns ~/.semindex/index.db.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".semindex", "index.db"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = "local"
	}
	if cfg.Embedding.APIKeyEnv == "" {
		cfg.Embedding.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Embedding.TimeoutSecs == 0 {
		cfg.Embedding.TimeoutSecs = 30
	}
	if cfg.Chat.Provider == "" {
		cfg.Chat.Provider = "openai"
	}
	if cfg.Chat.APIKeyEnv == "" {
		cfg.Chat.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Chat.TimeoutSecs == 0 {
		cfg.Chat.TimeoutSecs = 120
	}
	if cfg.Catalog.ExportPath == "" {
		cfg.Catalog.ExportPath = "catalog.json"
	}
	if cfg.Catalog.FilesRoot == "" {
		cfg.Catalog.FilesRoot = "."
	}
}
