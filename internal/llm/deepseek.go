package llm

import (
	"context"

	"github.com/autocommit/autocommit-go/internal/config"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

const (
	// DeepseekDefaultBaseURL is the default API base URL for DeepSeek
	DeepseekDefaultBaseURL = "https://api.deepseek.com/v1"
)

// DeepseekProvider implements Provider for the DeepSeek API,
// which speaks the OpenAI-compatible protocol.
type DeepseekProvider struct {
	cfg config.ModelConfig
}

// NewDeepseekProvider creates a new DeepSeek provider
func NewDeepseekProvider(cfg config.ModelConfig) *DeepseekProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DeepseekDefaultBaseURL
	}
	return &DeepseekProvider{cfg: cfg}
}

// Name returns the provider name
func (p *DeepseekProvider) Name() string {
	return "deepseek"
}

// GetConfig returns the model configuration
func (p *DeepseekProvider) GetConfig() config.ModelConfig {
	return p.cfg
}

// RequiresAPIKey reports that DeepSeek needs a credential
func (p *DeepseekProvider) RequiresAPIKey() bool {
	return true
}

// CreateChatModel creates an Eino ChatModel for DeepSeek
func (p *DeepseekProvider) CreateChatModel(ctx context.Context) (model.ChatModel, error) {
	cfg := &openai.ChatModelConfig{
		APIKey:  p.cfg.APIKey,
		Model:   p.cfg.Model,
		BaseURL: p.cfg.BaseURL,
	}

	return openai.NewChatModel(ctx, cfg)
}
