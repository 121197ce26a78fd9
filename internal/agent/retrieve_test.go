package agent

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ppiankov/trustlens/internal/model"
)

func TestRetrieverFetch(t *testing.T) {
	searcher := &fakeSearcher{
		results: map[string][]model.EvidenceItem{
			"query a": {
				{URL: "https://a.example/1", Domain: "a.example"},
				{URL: "https://a.example/2", Domain: "a.example"},
			},
			"query b": {
				{URL: "https://a.example/2", Domain: "a.example"},
				{URL: "https://b.example/1", Domain: "b.example"},
			},
		},
	}

	r := NewRetriever(searcher, 3, testLogger())
	evidence := r.Fetch(context.Background(), map[string][]string{
		"clm_1": {"query a", "query b"},
	})

	items := evidence["clm_1"]
	if len(items) != 3 {
		t.Fatalf("Fetch() = %d items, want 3 after URL dedup", len(items))
	}
	seen := make(map[string]bool)
	for _, item := range items {
		if seen[item.URL] {
			t.Errorf("duplicate URL %s survived dedup", item.URL)
		}
		seen[item.URL] = true
	}
}

func TestRetrieverFetchPartialFailure(t *testing.T) {
	searcher := &fakeSearcher{
		results: map[string][]model.EvidenceItem{
			"good query": {{URL: "https://a.example/1", Domain: "a.example"}},
		},
		errs: map[string]error{
			"bad query": errors.New("search unavailable"),
		},
	}

	r := NewRetriever(searcher, 2, testLogger())
	evidence := r.Fetch(context.Background(), map[string][]string{
		"clm_1": {"good query"},
		"clm_2": {"bad query"},
	})

	if len(evidence["clm_1"]) != 1 {
		t.Errorf("clm_1 should keep its evidence despite clm_2 failing")
	}
	items, ok := evidence["clm_2"]
	if !ok {
		t.Fatal("failed claim must still be present in the evidence map")
	}
	if len(items) != 0 {
		t.Errorf("failed claim evidence = %d items, want 0", len(items))
	}
}

// A realistic run fans out far more (claim, query) jobs than the pool
// has workers; the whole batch must complete.
func TestRetrieverFetchLargeFanOut(t *testing.T) {
	results := make(map[string][]model.EvidenceItem)
	queries := make(map[string][]string)
	for i := 0; i < 10; i++ {
		claimID := fmt.Sprintf("clm_%08d", i)
		for j := 0; j < 3; j++ {
			q := fmt.Sprintf("query %d-%d", i, j)
			queries[claimID] = append(queries[claimID], q)
			results[q] = []model.EvidenceItem{{
				URL:    fmt.Sprintf("https://e.example/%d/%d", i, j),
				Domain: "e.example",
			}}
		}
	}

	r := NewRetriever(&fakeSearcher{results: results}, 3, testLogger())

	done := make(chan map[string][]model.EvidenceItem, 1)
	go func() { done <- r.Fetch(context.Background(), queries) }()

	var evidence map[string][]model.EvidenceItem
	select {
	case evidence = <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Fetch stalled on a 30-query fan-out")
	}

	if len(evidence) != 10 {
		t.Fatalf("Fetch() covered %d claims, want 10", len(evidence))
	}
	for claimID, items := range evidence {
		if len(items) != 3 {
			t.Errorf("%s: got %d items, want 3", claimID, len(items))
		}
	}
}

func TestRetrieverFetchEmpty(t *testing.T) {
	r := NewRetriever(&fakeSearcher{}, 2, testLogger())
	evidence := r.Fetch(context.Background(), nil)
	if len(evidence) != 0 {
		t.Errorf("Fetch() on no queries = %v, want empty map", evidence)
	}
}

func TestRetrieverFetchSkipsEmptyURLs(t *testing.T) {
	searcher := &fakeSearcher{
		results: map[string][]model.EvidenceItem{
			"q": {{URL: "", Domain: "x"}, {URL: "https://a.example/1", Domain: "a.example"}},
		},
	}

	r := NewRetriever(searcher, 1, testLogger())
	evidence := r.Fetch(context.Background(), map[string][]string{"clm_1": {"q"}})
	if len(evidence["clm_1"]) != 1 {
		t.Errorf("items without a URL should be dropped, got %d", len(evidence["clm_1"]))
	}
}
