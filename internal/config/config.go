package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Supported providers: three cloud protocols plus one local runtime
var supportedProviders = map[string]bool{
	"gemini":   true,
	"openai":   true,
	"deepseek": true,
	"ollama":   true,
}

// Default model per provider, used when a model is built from environment
// variables without a config file.
var defaultModels = map[string]string{
	"gemini":   "gemini-2.0-flash",
	"openai":   "gpt-4o-mini",
	"deepseek": "deepseek-chat",
	"ollama":   "qwen2.5:14b",
}

// Environment variable holding the credential for each cloud provider
var providerKeyEnv = map[string]string{
	"gemini":   "GEMINI_API_KEY",
	"openai":   "OPENAI_API_KEY",
	"deepseek": "DEEPSEEK_API_KEY",
}

// SupportedProviders returns a list of supported providers
func SupportedProviders() []string {
	providers := make([]string, 0, len(supportedProviders))
	for p := range supportedProviders {
		providers = append(providers, p)
	}
	return providers
}

// IsSupportedProvider reports whether the provider name is known
func IsSupportedProvider(name string) bool {
	return supportedProviders[name]
}

// KeyEnvName returns the environment variable expected to hold the API key
// for a cloud provider, or "" for providers that need none.
func KeyEnvName(provider string) string {
	return providerKeyEnv[provider]
}

// Config represents the application configuration
type Config struct {
	DefaultModel string                 `yaml:"default_model" mapstructure:"default_model"`
	Models       map[string]ModelConfig `yaml:"models" mapstructure:"models"`
	Language     string                 `yaml:"language" mapstructure:"language"`
	Agent        *AgentConfig           `yaml:"agent" mapstructure:"agent"`
}

// ModelConfig represents a single model configuration
type ModelConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"`
	APIKey   string `yaml:"api_key" mapstructure:"api_key"`
	Model    string `yaml:"model" mapstructure:"model"`
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
}

// AgentConfig holds the policy knobs for the tool-calling loop.
// The ceilings bound token cost per round-trip, not correctness: the model
// can always issue a follow-up call with a narrower range.
type AgentConfig struct {
	MaxSteps        int `yaml:"max_steps" mapstructure:"max_steps"`
	MaxLinesPerRead int `yaml:"max_lines_per_read" mapstructure:"max_lines_per_read"`
	MaxFileSizeKB   int `yaml:"max_file_size_kb" mapstructure:"max_file_size_kb"`
	OutlineMaxLines int `yaml:"outline_max_lines" mapstructure:"outline_max_lines"`
	TreeMaxDepth    int `yaml:"tree_max_depth" mapstructure:"tree_max_depth"`
	TreeMaxFiles    int `yaml:"tree_max_files" mapstructure:"tree_max_files"`
}

// DefaultAgentConfig returns the default agent configuration
func DefaultAgentConfig() *AgentConfig {
	return &AgentConfig{
		MaxSteps:        8,
		MaxLinesPerRead: 200,
		MaxFileSizeKB:   256,
		OutlineMaxLines: 200,
		TreeMaxDepth:    4,
		TreeMaxFiles:    200,
	}
}

// Validate validates the model configuration
func (m *ModelConfig) Validate() error {
	if m.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if !supportedProviders[m.Provider] {
		return fmt.Errorf("unsupported provider: %s (supported: %s)",
			m.Provider, strings.Join(SupportedProviders(), ", "))
	}
	if m.Model == "" {
		return fmt.Errorf("model is required")
	}
	return nil
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if len(c.Models) == 0 {
		return fmt.Errorf("no models configured")
	}

	if c.DefaultModel != "" {
		if _, ok := c.Models[c.DefaultModel]; !ok {
			return fmt.Errorf("default model '%s' not found in models configuration", c.DefaultModel)
		}
	}

	for name, model := range c.Models {
		if err := model.Validate(); err != nil {
			return fmt.Errorf("invalid model '%s': %w", name, err)
		}
	}

	if c.Agent != nil {
		if c.Agent.MaxSteps < 0 {
			return fmt.Errorf("agent.max_steps must be non-negative")
		}
		if c.Agent.MaxLinesPerRead < 0 {
			return fmt.Errorf("agent.max_lines_per_read must be non-negative")
		}
	}

	return nil
}

// GetModel returns the model configuration by name
// Priority: parameter > env variable (AUTOCOMMIT_MODEL) > default_model
func (c *Config) GetModel(modelName string) (*ModelConfig, error) {
	if modelName == "" {
		modelName = os.Getenv("AUTOCOMMIT_MODEL")
	}

	if modelName == "" {
		modelName = c.DefaultModel
	}

	if modelName == "" {
		return nil, fmt.Errorf("no model specified and no default model configured")
	}

	model, ok := c.Models[modelName]
	if !ok {
		return nil, fmt.Errorf("model '%s' not found in configuration", modelName)
	}

	// Expand environment variables in API key
	model.APIKey = expandEnv(model.APIKey)

	return &model, nil
}

// GetLanguage returns the language to use
// Priority: parameter > env variable (AUTOCOMMIT_LANG) > config file > default (en)
func (c *Config) GetLanguage(langParam string) string {
	if langParam != "" {
		return langParam
	}

	if envLang := os.Getenv("AUTOCOMMIT_LANG"); envLang != "" {
		return envLang
	}

	if c.Language != "" {
		return c.Language
	}

	return "en"
}

// GetAgentConfig returns the agent configuration with defaults applied
func (c *Config) GetAgentConfig() *AgentConfig {
	if c.Agent == nil {
		return DefaultAgentConfig()
	}
	defaults := DefaultAgentConfig()
	if c.Agent.MaxSteps <= 0 {
		c.Agent.MaxSteps = defaults.MaxSteps
	}
	if c.Agent.MaxLinesPerRead <= 0 {
		c.Agent.MaxLinesPerRead = defaults.MaxLinesPerRead
	}
	if c.Agent.MaxFileSizeKB <= 0 {
		c.Agent.MaxFileSizeKB = defaults.MaxFileSizeKB
	}
	if c.Agent.OutlineMaxLines <= 0 {
		c.Agent.OutlineMaxLines = defaults.OutlineMaxLines
	}
	if c.Agent.TreeMaxDepth <= 0 {
		c.Agent.TreeMaxDepth = defaults.TreeMaxDepth
	}
	if c.Agent.TreeMaxFiles <= 0 {
		c.Agent.TreeMaxFiles = defaults.TreeMaxFiles
	}
	return c.Agent
}

// expandEnv expands environment variables in the format ${VAR} or $VAR
func expandEnv(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}
	if strings.HasPrefix(s, "$") {
		return os.Getenv(s[1:])
	}
	return s
}

// LoadFromFile loads configuration from a file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// FromEnvironment builds a single-model configuration without a config
// file, using the provider's conventional environment variables. This keeps
// the tool usable with nothing but an exported API key.
func FromEnvironment(provider, model string) (*Config, error) {
	if provider == "" {
		provider = "gemini"
	}
	if !supportedProviders[provider] {
		return nil, fmt.Errorf("unsupported provider: %s (supported: %s)",
			provider, strings.Join(SupportedProviders(), ", "))
	}
	if model == "" {
		model = defaultModels[provider]
	}

	mc := ModelConfig{
		Provider: provider,
		Model:    model,
	}
	if env := providerKeyEnv[provider]; env != "" {
		mc.APIKey = os.Getenv(env)
	}
	if provider == "ollama" {
		mc.BaseURL = os.Getenv("OLLAMA_HOST")
	}

	return &Config{
		DefaultModel: provider,
		Models:       map[string]ModelConfig{provider: mc},
	}, nil
}

// Load loads configuration with the following priority:
// 1. Custom path if provided
// 2. Current directory .autocommit.yaml
// 3. Home directory ~/.autocommit.yaml
func Load(customPath string) (*Config, error) {
	if customPath != "" {
		return LoadFromFile(customPath)
	}

	if cfg, err := LoadFromFile(".autocommit.yaml"); err == nil {
		return cfg, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	homeCfgPath := fmt.Sprintf("%s/.autocommit.yaml", homeDir)
	if cfg, err := LoadFromFile(homeCfgPath); err == nil {
		return cfg, nil
	}

	return nil, fmt.Errorf("no configuration file found")
}
