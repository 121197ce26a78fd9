package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/ppiankov/trustlens/internal/model"
	"github.com/ppiankov/trustlens/internal/worker"
)

const ddgEndpoint = "https://html.duckduckgo.com/html/"

// DuckDuckGoProvider scrapes the DuckDuckGo HTML endpoint. Free, no
// API key, so it is the default provider.
type DuckDuckGoProvider struct {
	httpClient *http.Client
	limiter    *worker.Limiter
	rep        *Reputation
	maxResults int
}

// NewDuckDuckGoProvider creates a new DuckDuckGo provider
func NewDuckDuckGoProvider(cfg model.SearchConfig, rep *Reputation) *DuckDuckGoProvider {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1.0
	}
	maxResults := cfg.MaxResultsPerQuery
	if maxResults <= 0 {
		maxResults = 5
	}

	return &DuckDuckGoProvider{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    worker.NewLimiter(rps, 2),
		rep:        rep,
		maxResults: maxResults,
	}
}

// Name returns the provider name
func (p *DuckDuckGoProvider) Name() string {
	return "duckduckgo"
}

// Search scrapes one results page for the query
func (p *DuckDuckGoProvider) Search(ctx context.Context, query string) ([]model.EvidenceItem, error) {
	if err := p.limiter.Wait(ctx, ddgEndpoint); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	reqURL := ddgEndpoint + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2_000_000))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return p.parseResults(string(body))
}

// parseResults walks the result page DOM and extracts up to maxResults
// evidence items. Exposed internally for fixture-driven tests.
func (p *DuckDuckGoProvider) parseResults(page string) ([]model.EvidenceItem, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	var items []model.EvidenceItem
	var walk func(*html.Node)

	walk = func(n *html.Node) {
		if len(items) >= p.maxResults {
			return
		}

		if n.Type == html.ElementNode && hasClass(n, "result") {
			link := findByClass(n, "a", "result__a")
			snippet := findByClass(n, "a", "result__snippet")
			if snippet == nil {
				snippet = findByClass(n, "div", "result__snippet")
			}

			if link != nil {
				href := attrValue(link, "href")
				resultURL := unwrapRedirect(href)
				if resultURL != "" {
					domain := hostOf(resultURL)
					items = append(items, model.EvidenceItem{
						URL:              resultURL,
						Title:            textContent(link),
						Snippet:          textContent(snippet),
						Domain:           domain,
						RelevanceScore:   0.5,
						DomainReputation: p.rep.Score(domain),
					})
				}
			}
			return // Don't descend into a matched result block
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return items, nil
}

// unwrapRedirect resolves DuckDuckGo's uddg redirect wrapper to the
// target URL.
func unwrapRedirect(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	if strings.HasPrefix(href, "//duckduckgo.com/l/") || strings.HasPrefix(href, "https://duckduckgo.com/l/") {
		if idx := strings.Index(href, "uddg="); idx >= 0 {
			target := href[idx+len("uddg="):]
			if amp := strings.Index(target, "&"); amp >= 0 {
				target = target[:amp]
			}
			if decoded, err := url.QueryUnescape(target); err == nil {
				return decoded
			}
		}
		return ""
	}

	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return ""
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Host
}

// DOM helpers

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key == "class" {
			for _, c := range strings.Fields(attr.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func findByClass(n *html.Node, tag, class string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag && hasClass(n, class) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByClass(c, tag, class); found != nil {
			return found
		}
	}
	return nil
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
