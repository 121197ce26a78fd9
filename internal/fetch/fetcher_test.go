package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/trustlens/internal/model"
)

func testFetcher() *Fetcher {
	cfg := model.HTTPConfig{
		Timeout:      5 * time.Second,
		UserAgent:    "test-agent",
		MaxBodyBytes: 1 << 20,
	}
	return NewFetcher(cfg, 100, zap.NewNop())
}

func quietSleep(t *testing.T) {
	t.Helper()
	orig := fetchSleepFunc
	fetchSleepFunc = func(time.Duration) {}
	t.Cleanup(func() { fetchSleepFunc = orig })
}

func pageServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetchSuccess(t *testing.T) {
	server := pageServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, "<html><body><p>Plain page body.</p></body></html>")
	})

	result, err := testFetcher().Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !strings.Contains(result.Text, "Plain page body.") {
		t.Errorf("text = %q, want the page body", result.Text)
	}
	if result.FinalURL == "" {
		t.Error("final URL should be recorded")
	}
}

func TestFetchTransientThenSuccess(t *testing.T) {
	quietSleep(t)
	var attempts atomic.Int32
	server := pageServer(t, func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = fmt.Fprint(w, "<html><body>recovered</body></html>")
	})

	result, err := testFetcher().Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() after transient errors = %v", err)
	}
	if !strings.Contains(result.Text, "recovered") {
		t.Errorf("text = %q", result.Text)
	}
	if attempts.Load() != 3 {
		t.Errorf("attempts = %d, want 3", attempts.Load())
	}
}

func TestFetchPermanentFailureNotRetried(t *testing.T) {
	quietSleep(t)
	var attempts atomic.Int32
	server := pageServer(t, func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})

	if _, err := testFetcher().Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("Fetch() should fail on 404")
	}
	if attempts.Load() != 1 {
		t.Errorf("attempts = %d, 404 must not be retried", attempts.Load())
	}
}

func TestFetchAllRetriesExhausted(t *testing.T) {
	quietSleep(t)
	var attempts atomic.Int32
	server := pageServer(t, func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	if _, err := testFetcher().Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("Fetch() should fail when every attempt 503s")
	}
	if attempts.Load() != int32(maxAttempts) {
		t.Errorf("attempts = %d, want %d", attempts.Load(), maxAttempts)
	}
}

func TestFetchRobotsDisallowed(t *testing.T) {
	var pageHits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /private\n")
			return
		}
		pageHits.Add(1)
		_, _ = fmt.Fprint(w, "<html>secret</html>")
	}))
	defer server.Close()

	_, err := testFetcher().Fetch(context.Background(), server.URL+"/private/page")
	if err == nil || !strings.Contains(err.Error(), "robots.txt") {
		t.Fatalf("Fetch() error = %v, want robots.txt refusal", err)
	}
	if pageHits.Load() != 0 {
		t.Error("disallowed page must never be requested")
	}
}

func TestFetchExtractsReadableArticle(t *testing.T) {
	server := pageServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, `<html><head><title>Quarterly Report</title></head><body>
			<nav>Home | About | Contact</nav>
			<article>
				<h1>Quarterly Report</h1>
				<p>Revenue grew forty percent year over year, driven by strong demand.</p>
				<p>The company added five hundred employees across three offices.</p>
				<p>Operating margin improved for the sixth consecutive quarter overall.</p>
			</article>
		</body></html>`)
	})

	result, err := testFetcher().Fetch(context.Background(), server.URL+"/report")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !strings.Contains(result.Text, "Revenue grew forty percent") {
		t.Errorf("article text missing, got %q", result.Text)
	}
}

func TestIsRetryableFetchError(t *testing.T) {
	tests := []struct {
		err       string
		retryable bool
	}{
		{"unexpected status: 503 Service Unavailable", true},
		{"unexpected status: 500 Internal Server Error", true},
		{"unexpected status: 429 Too Many Requests", true},
		{"unexpected status: 404 Not Found", false},
		{"unexpected status: 403 Forbidden", false},
		{"fetch: connection refused", true},
		{"create request: invalid URL", false},
		{"read body: unexpected EOF", false},
	}

	for _, tt := range tests {
		t.Run(tt.err, func(t *testing.T) {
			if got := isRetryableFetchError(fmt.Errorf("%s", tt.err)); got != tt.retryable {
				t.Errorf("isRetryableFetchError(%q) = %v, want %v", tt.err, got, tt.retryable)
			}
		})
	}

	if isRetryableFetchError(nil) {
		t.Error("nil error must not be retryable")
	}
}
