package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		DefaultModel: "main",
		Language:     "en",
		Models: map[string]ModelConfig{
			"main":  {Provider: "gemini", Model: "gemini-2.0-flash", APIKey: "key-a"},
			"local": {Provider: "ollama", Model: "qwen2.5:14b"},
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := testConfig()
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_NoModels(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no models configured")
}

func TestConfig_Validate_UnknownDefault(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultModel = "missing"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default model")
}

func TestModelConfig_Validate_UnsupportedProvider(t *testing.T) {
	mc := ModelConfig{Provider: "grok", Model: "grok-2"}
	err := mc.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported provider")
}

func TestGetModel_Priority(t *testing.T) {
	cfg := testConfig()

	// Explicit parameter wins
	t.Setenv("AUTOCOMMIT_MODEL", "main")
	mc, err := cfg.GetModel("local")
	require.NoError(t, err)
	assert.Equal(t, "ollama", mc.Provider)

	// Environment variable beats the config default
	mc, err = cfg.GetModel("")
	require.NoError(t, err)
	assert.Equal(t, "gemini", mc.Provider)

	// Config default is the last resort
	t.Setenv("AUTOCOMMIT_MODEL", "")
	mc, err = cfg.GetModel("")
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", mc.Model)
}

func TestGetModel_Unknown(t *testing.T) {
	cfg := testConfig()
	_, err := cfg.GetModel("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGetModel_ExpandsEnvAPIKey(t *testing.T) {
	t.Setenv("TEST_AUTOCOMMIT_KEY", "secret-value")

	cfg := testConfig()
	cfg.Models["env"] = ModelConfig{Provider: "openai", Model: "gpt-4o-mini", APIKey: "${TEST_AUTOCOMMIT_KEY}"}

	mc, err := cfg.GetModel("env")
	require.NoError(t, err)
	assert.Equal(t, "secret-value", mc.APIKey)
}

func TestGetLanguage_Priority(t *testing.T) {
	cfg := testConfig()
	cfg.Language = "de"

	t.Setenv("AUTOCOMMIT_LANG", "ja")

	assert.Equal(t, "zh", cfg.GetLanguage("zh"), "parameter wins")
	assert.Equal(t, "ja", cfg.GetLanguage(""), "environment beats config")

	t.Setenv("AUTOCOMMIT_LANG", "")
	assert.Equal(t, "de", cfg.GetLanguage(""), "config beats default")

	cfg.Language = ""
	assert.Equal(t, "en", cfg.GetLanguage(""), "default is en")
}

func TestGetAgentConfig_Defaults(t *testing.T) {
	cfg := testConfig()

	got := cfg.GetAgentConfig()
	assert.Equal(t, 8, got.MaxSteps)
	assert.Equal(t, 200, got.MaxLinesPerRead)
	assert.Equal(t, 256, got.MaxFileSizeKB)
	assert.Equal(t, 200, got.OutlineMaxLines)
	assert.Equal(t, 4, got.TreeMaxDepth)
	assert.Equal(t, 200, got.TreeMaxFiles)
}

func TestGetAgentConfig_PartialOverride(t *testing.T) {
	cfg := testConfig()
	cfg.Agent = &AgentConfig{MaxSteps: 3}

	got := cfg.GetAgentConfig()
	assert.Equal(t, 3, got.MaxSteps)
	assert.Equal(t, 200, got.MaxLinesPerRead, "unset knobs fall back to defaults")
	assert.Equal(t, 4, got.TreeMaxDepth)
}

func TestKeyEnvName(t *testing.T) {
	assert.Equal(t, "GEMINI_API_KEY", KeyEnvName("gemini"))
	assert.Equal(t, "OPENAI_API_KEY", KeyEnvName("openai"))
	assert.Equal(t, "DEEPSEEK_API_KEY", KeyEnvName("deepseek"))
	assert.Equal(t, "", KeyEnvName("ollama"))
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".autocommit.yaml")

	content := `default_model: main
language: zh
models:
  main:
    provider: deepseek
    model: deepseek-chat
    api_key: file-key
agent:
  max_steps: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "main", cfg.DefaultModel)
	assert.Equal(t, "zh", cfg.Language)
	require.Contains(t, cfg.Models, "main")
	assert.Equal(t, "deepseek", cfg.Models["main"].Provider)
	assert.Equal(t, "file-key", cfg.Models["main"].APIKey)
	require.NotNil(t, cfg.Agent)
	assert.Equal(t, 5, cfg.Agent.MaxSteps)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestFromEnvironment(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "env-key")

	cfg, err := FromEnvironment("deepseek", "")
	require.NoError(t, err)

	mc, err := cfg.GetModel("")
	require.NoError(t, err)
	assert.Equal(t, "deepseek", mc.Provider)
	assert.Equal(t, "deepseek-chat", mc.Model, "provider default model applies")
	assert.Equal(t, "env-key", mc.APIKey)
}

func TestFromEnvironment_Unsupported(t *testing.T) {
	_, err := FromEnvironment("grok", "")
	assert.Error(t, err)
}

func TestFromEnvironment_OllamaNeedsNoKey(t *testing.T) {
	cfg, err := FromEnvironment("ollama", "llama3")
	require.NoError(t, err)

	mc, err := cfg.GetModel("")
	require.NoError(t, err)
	assert.Equal(t, "llama3", mc.Model)
	assert.Empty(t, mc.APIKey)
}
