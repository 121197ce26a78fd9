// Package fetch retrieves page content for URL verification requests.
// It honors robots.txt, applies per-domain rate limiting, retries
// transient failures, and extracts readable article text from HTML.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
	"go.uber.org/zap"

	"github.com/ppiankov/trustlens/internal/model"
	"github.com/ppiankov/trustlens/internal/util"
	"github.com/ppiankov/trustlens/internal/worker"
)

const (
	maxRedirects  = 3
	maxAttempts   = 3
	retryBackoff  = 500 * time.Millisecond
	backoffFactor = 2
)

// Overridable for tests
var fetchSleepFunc = time.Sleep

// Fetcher downloads one page and extracts its readable text
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	logger     *zap.Logger
}

// NewFetcher creates a fetcher from the HTTP configuration
func NewFetcher(cfg model.HTTPConfig, requestsPerSecond float64, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		robots:    util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout),
		limiter:   worker.NewLimiter(requestsPerSecond, 0),
		logger:    logger,
	}
}

// Result is the fetched page reduced to verification input
type Result struct {
	Text     string // Readable article text
	Title    string
	HTML     string
	FinalURL string
}

// Fetch downloads rawURL and extracts the article text. Disallowed by
// robots.txt is a hard error, not a retry candidate.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	allowed, delay, err := f.robots.CanFetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("disallowed by robots.txt: %s", rawURL)
	}
	if delay > 0 {
		fetchSleepFunc(delay)
	}

	if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return nil, err
	}

	return f.fetchWithRetry(ctx, rawURL)
}

// fetchWithRetry retries transient failures with exponential backoff
func (f *Fetcher) fetchWithRetry(ctx context.Context, rawURL string) (*Result, error) {
	backoff := retryBackoff
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := f.fetchOnce(ctx, rawURL)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !isRetryableFetchError(err) {
			return nil, err
		}
		if attempt < maxAttempts {
			f.logger.Debug("fetch retry",
				zap.String("url", rawURL),
				zap.Int("attempt", attempt),
				zap.Error(err))
			fetchSleepFunc(backoff)
			backoff *= backoffFactor
		}
	}
	return nil, lastErr
}

func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	finalURL := resp.Request.URL.String()
	html := string(body)
	text, title := extractArticle(html, finalURL)

	return &Result{
		Text:     text,
		Title:    title,
		HTML:     html,
		FinalURL: finalURL,
	}, nil
}

// extractArticle pulls the readable text out of raw HTML. When
// readability cannot find an article, the raw HTML goes through as-is
// and the ingestion stage strips the tags.
func extractArticle(html, pageURL string) (text, title string) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return html, ""
	}
	article, err := readability.FromReader(strings.NewReader(html), parsed)
	if err != nil || strings.TrimSpace(article.TextContent) == "" {
		return html, ""
	}
	return article.TextContent, article.Title
}

// isRetryableFetchError reports whether the fetch failure is worth
// another attempt: 5xx, 429, and connection-level errors are; client
// errors and anything before the wire are not.
func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()

	if strings.Contains(msg, "unexpected status: ") {
		return strings.Contains(msg, "unexpected status: 5") ||
			strings.Contains(msg, "unexpected status: 429")
	}
	if strings.HasPrefix(msg, "fetch: ") {
		return true
	}
	return false
}
