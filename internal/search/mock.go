package search

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/ppiankov/trustlens/internal/model"
)

// MockProvider returns deterministic results derived from the query.
// It is the last link of every provider chain, so development without
// API keys and offline tests still exercise the full pipeline.
type MockProvider struct {
	rep *Reputation
}

// NewMockProvider creates a new mock provider
func NewMockProvider(rep *Reputation) *MockProvider {
	return &MockProvider{rep: rep}
}

// Name returns the provider name
func (p *MockProvider) Name() string {
	return "mock"
}

// Search returns two simulated results keyed on the query hash
func (p *MockProvider) Search(_ context.Context, query string) ([]model.EvidenceItem, error) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(query))
	seed := h.Sum32()

	short := query
	if len(short) > 50 {
		short = short[:50]
	}

	return []model.EvidenceItem{
		{
			URL:              fmt.Sprintf("https://example.com/article/%d", seed%1000),
			Title:            "Article about: " + short,
			Snippet:          "This is relevant information about the topic. Multiple sources confirm this data.",
			Domain:           "example.com",
			PublishedAt:      "2024-01-15",
			RelevanceScore:   0.7,
			DomainReputation: 0.6,
		},
		{
			URL:              fmt.Sprintf("https://trusted-source.org/data/%d", seed%500),
			Title:            "Data and statistics: " + short,
			Snippet:          "According to verified sources, our research shows consistent figures.",
			Domain:           "trusted-source.org",
			PublishedAt:      "2024-03-20",
			RelevanceScore:   0.8,
			DomainReputation: 0.85,
		},
	}, nil
}
