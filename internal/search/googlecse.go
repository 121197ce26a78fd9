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

const googleCSEEndpoint = "https://www.googleapis.com/customsearch/v1"

// GoogleCSEProvider queries the Google Custom Search API
type GoogleCSEProvider struct {
	httpClient *http.Client
	apiKey     string
	cseID      string
	rep        *Reputation
	maxResults int
}

// NewGoogleCSEProvider creates a new Google CSE provider
func NewGoogleCSEProvider(cfg model.SearchConfig, rep *Reputation) *GoogleCSEProvider {
	maxResults := cfg.MaxResultsPerQuery
	if maxResults <= 0 {
		maxResults = 5
	}
	if maxResults > 10 {
		maxResults = 10 // CSE API limit
	}
	return &GoogleCSEProvider{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiKey:     cfg.GoogleAPIKey,
		cseID:      cfg.GoogleCSEID,
		rep:        rep,
		maxResults: maxResults,
	}
}

// Name returns the provider name
func (p *GoogleCSEProvider) Name() string {
	return "google"
}

type googleCSEResponse struct {
	Items []struct {
		Link    string `json:"link"`
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

// Search executes one query against the Custom Search API
func (p *GoogleCSEProvider) Search(ctx context.Context, query string) ([]model.EvidenceItem, error) {
	params := url.Values{}
	params.Set("key", p.apiKey)
	params.Set("cx", p.cseID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(p.maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleCSEEndpoint+"?"+params.Encode(), nil)
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

	var data googleCSEResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	var items []model.EvidenceItem
	for _, r := range data.Items {
		if len(items) >= p.maxResults {
			break
		}
		domain := hostOf(r.Link)
		items = append(items, model.EvidenceItem{
			URL:              r.Link,
			Title:            r.Title,
			Snippet:          r.Snippet,
			Domain:           domain,
			RelevanceScore:   0.5,
			DomainReputation: p.rep.Score(domain),
		})
	}
	return items, nil
}
