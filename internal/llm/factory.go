package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// NewCompleter creates a completion provider based on configuration.
// The provider is the only hard precondition of a verification run:
// a missing key fails here, before the pipeline is constructed.
func NewCompleter(config Config) (Completer, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "groq":
		if config.APIKey == "" {
			config.APIKey = os.Getenv("GROQ_API_KEY")
		}
		if config.BaseURL == "" {
			config.BaseURL = groqBaseURL
		}
		return NewOpenAIProvider(config, "groq")

	case "openai":
		if config.APIKey == "" {
			config.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		return NewOpenAIProvider(config, "openai")

	case "ollama":
		return NewOllamaProvider(config)

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: groq, openai, ollama)", config.Provider)
	}
}

// Unavailable returns a completer whose every call fails with the
// given error. It lets the server start without a configured provider
// and still answer non-verification endpoints.
func Unavailable(err error) Completer {
	return unavailableCompleter{err: err}
}

type unavailableCompleter struct {
	err error
}

func (u unavailableCompleter) Name() string { return "unavailable" }

func (u unavailableCompleter) Complete(context.Context, Request) (string, error) {
	return "", u.err
}

func (u unavailableCompleter) IsAvailable(context.Context) bool { return false }
