package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ppiankov/trustlens/internal/model"
)

const serpAPIEndpoint = "https://serpapi.com/search"

// SerpAPIProvider queries Google results through SerpAPI
type SerpAPIProvider struct {
	httpClient *http.Client
	apiKey     string
	rep        *Reputation
	maxResults int
}

// NewSerpAPIProvider creates a new SerpAPI provider
func NewSerpAPIProvider(cfg model.SearchConfig, rep *Reputation) *SerpAPIProvider {
	maxResults := cfg.MaxResultsPerQuery
	if maxResults <= 0 {
		maxResults = 5
	}
	return &SerpAPIProvider{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiKey:     cfg.SerpAPIKey,
		rep:        rep,
		maxResults: maxResults,
	}
}

// Name returns the provider name
func (p *SerpAPIProvider) Name() string {
	return "serpapi"
}

type serpAPIResponse struct {
	OrganicResults []struct {
		Link    string `json:"link"`
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Date    string `json:"date"`
	} `json:"organic_results"`
}

// Search executes one query against SerpAPI
func (p *SerpAPIProvider) Search(ctx context.Context, query string) ([]model.EvidenceItem, error) {
	params := url.Values{}
	params.Set("api_key", p.apiKey)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(p.maxResults))
	params.Set("engine", "google")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serpAPIEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var data serpAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	var items []model.EvidenceItem
	for _, r := range data.OrganicResults {
		if len(items) >= p.maxResults {
			break
		}
		domain := hostOf(r.Link)
		items = append(items, model.EvidenceItem{
			URL:              r.Link,
			Title:            r.Title,
			Snippet:          r.Snippet,
			Domain:           domain,
			PublishedAt:      r.Date,
			RelevanceScore:   0.5,
			DomainReputation: p.rep.Score(domain),
		})
	}
	return items, nil
}
