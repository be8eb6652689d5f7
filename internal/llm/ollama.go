package llm

import (
	"context"

	"github.com/autocommit/autocommit-go/internal/config"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

const (
	// OllamaDefaultBaseURL is the default API base URL for a local Ollama
	OllamaDefaultBaseURL = "http://localhost:11434/v1"
)

// OllamaProvider implements Provider for a local Ollama runtime.
// Ollama exposes an OpenAI-compatible API and needs no credential.
type OllamaProvider struct {
	cfg config.ModelConfig
}

// NewOllamaProvider creates a new Ollama provider
func NewOllamaProvider(cfg config.ModelConfig) *OllamaProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = OllamaDefaultBaseURL
	}

	// The OpenAI-compatible endpoint requires some key value
	if cfg.APIKey == "" {
		cfg.APIKey = "ollama"
	}
	return &OllamaProvider{cfg: cfg}
}

// Name returns the provider name
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// GetConfig returns the model configuration
func (p *OllamaProvider) GetConfig() config.ModelConfig {
	return p.cfg
}

// RequiresAPIKey reports that Ollama runs without a credential
func (p *OllamaProvider) RequiresAPIKey() bool {
	return false
}

// CreateChatModel creates an Eino ChatModel for Ollama
func (p *OllamaProvider) CreateChatModel(ctx context.Context) (model.ChatModel, error) {
	cfg := &openai.ChatModelConfig{
		APIKey:  p.cfg.APIKey,
		Model:   p.cfg.Model,
		BaseURL: p.cfg.BaseURL,
	}

	return openai.NewChatModel(ctx, cfg)
}
