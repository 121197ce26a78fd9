// Package search retrieves web evidence for claims through pluggable
// providers. The free DuckDuckGo HTML provider is the default; SerpAPI
// and Google CSE are used when keys are configured, and a deterministic
// mock backstops everything so the pipeline always has evidence to rank.
package search

import (
	"context"
	"os"
	"strings"

	"github.com/ppiankov/trustlens/internal/model"
)

// Provider defines the interface for search providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Search executes one query and returns evidence items with
	// domain reputation already attached
	Search(ctx context.Context, query string) ([]model.EvidenceItem, error)
}

// Chain wraps a primary provider with the mock fallback: when the
// primary fails or returns nothing, the mock supplies results so a
// transient search outage degrades rather than empties a run.
type Chain struct {
	primary  Provider
	fallback Provider
}

// NewChain builds the provider chain from configuration. Keys missing
// from the config fall back to the usual environment variables.
func NewChain(cfg model.SearchConfig, rep *Reputation) *Chain {
	if cfg.SerpAPIKey == "" {
		cfg.SerpAPIKey = os.Getenv("SERPAPI_API_KEY")
	}
	if cfg.GoogleAPIKey == "" {
		cfg.GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
	}
	if cfg.GoogleCSEID == "" {
		cfg.GoogleCSEID = os.Getenv("GOOGLE_CSE_ID")
	}

	mock := NewMockProvider(rep)

	var primary Provider
	switch strings.ToLower(cfg.Provider) {
	case "serpapi":
		primary = NewSerpAPIProvider(cfg, rep)
	case "google":
		primary = NewGoogleCSEProvider(cfg, rep)
	case "mock":
		primary = mock
	case "duckduckgo":
		primary = NewDuckDuckGoProvider(cfg, rep)
	default:
		// Auto-select: paid providers only when configured
		switch {
		case cfg.SerpAPIKey != "":
			primary = NewSerpAPIProvider(cfg, rep)
		case cfg.GoogleAPIKey != "" && cfg.GoogleCSEID != "":
			primary = NewGoogleCSEProvider(cfg, rep)
		default:
			primary = NewDuckDuckGoProvider(cfg, rep)
		}
	}

	return &Chain{primary: primary, fallback: mock}
}

// Name returns the primary provider name
func (c *Chain) Name() string {
	return c.primary.Name()
}

// Search queries the primary provider, falling back to mock results
// on error or empty output.
func (c *Chain) Search(ctx context.Context, query string) ([]model.EvidenceItem, error) {
	items, err := c.primary.Search(ctx, query)
	if err == nil && len(items) > 0 {
		return items, nil
	}
	if c.primary == c.fallback {
		return items, err
	}
	return c.fallback.Search(ctx, query)
}
