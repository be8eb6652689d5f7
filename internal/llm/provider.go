package llm

import (
	"context"

	"github.com/autocommit/autocommit-go/internal/config"
	"github.com/cloudwego/eino/components/model"
)

// Provider defines the interface for LLM providers. Each implementation
// owns its own wire marshaling privately; the agent loop only ever sees
// eino messages and tool calls.
type Provider interface {
	// Name returns the provider name
	Name() string

	// GetConfig returns the model configuration
	GetConfig() config.ModelConfig

	// RequiresAPIKey reports whether the provider needs a credential.
	// Local providers (ollama) return false.
	RequiresAPIKey() bool

	// CreateChatModel creates an Eino ChatModel instance
	CreateChatModel(ctx context.Context) (model.ChatModel, error)
}
