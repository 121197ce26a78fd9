package llm

import (
	"context"

	"github.com/ppiankov/trustlens/internal/model"
)

// Request is a single text-completion call.
// Every pipeline stage expresses its LLM work through this shape.
type Request struct {
	// System is the system-role instruction (may be empty)
	System string

	// Prompt is the user-role content
	Prompt string

	// Model overrides the provider's configured model when set
	Model string

	// Temperature controls sampling. All stages use 0 for determinism
	// except query planning (0.3, for lexical diversity).
	Temperature float32

	// MaxTokens limits the response length
	MaxTokens int
}

// Completer defines the interface for text-completion providers
type Completer interface {
	// Name returns the provider name
	Name() string

	// Complete executes one completion call and returns the raw text
	Complete(ctx context.Context, req Request) (string, error)

	// IsAvailable checks if the provider is properly configured and reachable
	IsAvailable(ctx context.Context) bool
}

// Config holds completion provider configuration
type Config struct {
	// Provider name: "groq", "openai", "ollama"
	Provider string

	// Model is the default model for reasoning-heavy stages
	Model string

	// FastModel is a cheaper model for classification and relevance scoring
	FastModel string

	// APIKey for hosted providers
	APIKey string

	// BaseURL for custom endpoints (Groq, Ollama)
	BaseURL string

	// Timeout per request, in seconds
	Timeout int

	// MaxTokens default response cap
	MaxTokens int
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:  mc.Provider,
		Model:     mc.Model,
		FastModel: mc.FastModel,
		APIKey:    mc.APIKey,
		BaseURL:   mc.BaseURL,
		Timeout:   mc.Timeout,
		MaxTokens: mc.MaxTokens,
	}
}
