package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the top-level application configuration.
type Config struct {
	Provider ProviderConfig `toml:"provider"`
	Hosting  HostingConfig  `toml:"hosting"`
	Prompt   PromptConfig   `toml:"prompt"`
}

// ProviderConfig holds settings for generation provider selection.
type ProviderConfig struct {
	Default   string          `toml:"default"`
	Model     string          `toml:"model"`
	Gemini    GeminiConfig    `toml:"gemini"`
	Anthropic AnthropicConfig `toml:"anthropic"`
}

// GeminiConfig holds Gemini-specific provider settings.
type GeminiConfig struct {
	APIKeySource string `toml:"api_key_source"`
	APIKey       string `toml:"api_key"`
}

// AnthropicConfig holds Anthropic-specific provider settings.
type AnthropicConfig struct {
	APIKeySource string `toml:"api_key_source"`
	APIKey       string `toml:"api_key"`
}

// HostingConfig holds optional tokens for the repository hosting APIs.
// Empty tokens mean unauthenticated access to public repositories.
type HostingConfig struct {
	GitHubToken string `toml:"github_token"`
	GitLabToken string `toml:"gitlab_token"`
}

// PromptConfig bounds the size of the generation prompt.
type PromptConfig struct {
	MaxTreeEntries int `toml:"max_tree_entries"`
	MaxFileChars   int `toml:"max_file_chars"`
}

// DefaultConfig returns a Config populated with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			Default: "gemini",
			Model:   "gemini-2.5-flash",
			Gemini: GeminiConfig{
				APIKeySource: "env",
			},
			Anthropic: AnthropicConfig{
				APIKeySource: "env",
			},
		},
		Prompt: PromptConfig{
			MaxTreeEntries: 150,
			MaxFileChars:   8000,
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "repowiki", "config.toml"), nil
}

// Load reads a TOML config from the given path. A missing file is not an
// error: defaults are returned so first runs work without any setup.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Prompt.MaxTreeEntries <= 0 {
		cfg.Prompt.MaxTreeEntries = 150
	}
	if cfg.Prompt.MaxFileChars <= 0 {
		cfg.Prompt.MaxFileChars = 8000
	}
	return cfg, nil
}

// Save writes the config as TOML to the given path, creating parent
// directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}
