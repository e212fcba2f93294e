package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "gemini", cfg.Provider.Default)
	assert.Equal(t, "gemini-2.5-flash", cfg.Provider.Model)
	assert.Equal(t, "env", cfg.Provider.Gemini.APIKeySource)
	assert.Equal(t, 150, cfg.Prompt.MaxTreeEntries)
	assert.Equal(t, 8000, cfg.Prompt.MaxFileChars)
}

func TestLoadFromFile(t *testing.T) {
	tomlContent := `
[provider]
default = "anthropic"
model = "claude-sonnet-4-5"

[provider.anthropic]
api_key_source = "config"
api_key = "sk-ant-test"

[hosting]
github_token = "ghp_test"

[prompt]
max_tree_entries = 200
max_file_chars = 4000
`
	tmpFile := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(tomlContent), 0o644))

	cfg, err := Load(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.Provider.Default)
	assert.Equal(t, "claude-sonnet-4-5", cfg.Provider.Model)
	assert.Equal(t, "config", cfg.Provider.Anthropic.APIKeySource)
	assert.Equal(t, "sk-ant-test", cfg.Provider.Anthropic.APIKey)
	assert.Equal(t, "ghp_test", cfg.Hosting.GitHubToken)
	assert.Equal(t, 200, cfg.Prompt.MaxTreeEntries)
	assert.Equal(t, 4000, cfg.Prompt.MaxFileChars)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.Provider.Default)
}

func TestLoadAppliesPromptFloors(t *testing.T) {
	tomlContent := `
[prompt]
max_tree_entries = -1
max_file_chars = 0
`
	tmpFile := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(tomlContent), 0o644))

	cfg, err := Load(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, 150, cfg.Prompt.MaxTreeEntries)
	assert.Equal(t, 8000, cfg.Prompt.MaxFileChars)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.Provider.Model = "gemini-2.5-pro"
	cfg.Hosting.GitLabToken = "glpat-test"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", loaded.Provider.Model)
	assert.Equal(t, "glpat-test", loaded.Hosting.GitLabToken)
}
