package pipeline

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/ppiankov/trustlens/internal/llm"
	"github.com/ppiankov/trustlens/internal/model"
)

var claimIDRe = regexp.MustCompile(`clm_[0-9a-f]{8}`)

// scriptedCompleter replays canned responses in call order. Claim IDs
// are generated at extraction time, so the CLAIM_ID placeholder in a
// response is substituted with the first ID found in the prompt.
type scriptedCompleter struct {
	mu        sync.Mutex
	responses []string
	calls     int
	failWith  error
}

func (s *scriptedCompleter) Name() string { return "scripted" }

func (s *scriptedCompleter) Complete(_ context.Context, req llm.Request) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return "", s.failWith
	}
	if s.calls >= len(s.responses) {
		return "", errors.New("scriptedCompleter: out of responses")
	}
	resp := s.responses[s.calls]
	s.calls++
	if strings.Contains(resp, "CLAIM_ID") {
		if id := claimIDRe.FindString(req.Prompt); id != "" {
			resp = strings.ReplaceAll(resp, "CLAIM_ID", id)
		}
	}
	return resp, nil
}

func (s *scriptedCompleter) IsAvailable(_ context.Context) bool { return true }

type staticSearcher struct {
	items []model.EvidenceItem
	err   error
}

func (s *staticSearcher) Name() string { return "static" }

func (s *staticSearcher) Search(_ context.Context, _ string) ([]model.EvidenceItem, error) {
	return s.items, s.err
}

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.LLM.Model = "main-model"
	cfg.LLM.FastModel = "fast-model"
	cfg.Search.Workers = 1
	return cfg
}

func TestPipelineRunFullFlow(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{
		// extraction
		`{"claims": [{"text": "Acme has 500 employees", "span_start": 0, "span_end": 22, "claim_type": "numeric", "topic": "general", "time_sensitivity": "medium"}]}`,
		// classification
		`[{"claim_id": "CLAIM_ID", "is_verifiable": true}]`,
		// query planning
		`["acme employee count"]`,
		// relevance for both evidence items
		`0.9`,
		`0.6`,
		// verification
		`{"verdict": "supported", "confidence": 0.8, "reasoning": "Confirmed.", "supporting_sources": ["https://a.example/1"], "contradicting_sources": []}`,
	}}
	searcher := &staticSearcher{items: []model.EvidenceItem{
		{URL: "https://a.example/1", Domain: "a.example", Snippet: "500 staff", DomainReputation: 0.9},
		{URL: "https://b.example/1", Domain: "b.example", Snippet: "hiring", DomainReputation: 0.5},
	}}

	p := New(testConfig(), completer, searcher, zap.NewNop())
	result := p.Run(context.Background(), "Acme has 500 employees.", "", model.VerticalGeneral, "en")

	if len(result.Claims) != 1 {
		t.Fatalf("Run() = %d claims, want 1; errors: %v", len(result.Claims), result.Errors)
	}
	claim := result.Claims[0]
	if claim.Text != "Acme has 500 employees" {
		t.Errorf("claim text = %q", claim.Text)
	}
	if claim.Verdict != model.VerdictSupported || claim.Confidence != 0.8 {
		t.Errorf("verdict = %q confidence = %v", claim.Verdict, claim.Confidence)
	}
	if len(claim.Sources.Supporting) != 1 {
		t.Errorf("supporting sources = %+v", claim.Sources.Supporting)
	}
	if result.SourcesChecked != 2 {
		t.Errorf("sources checked = %d, want 2", result.SourcesChecked)
	}
	if len(result.ModelsUsed) == 0 {
		t.Error("models used should be recorded")
	}
}

func TestPipelineRunSurvivesProviderOutage(t *testing.T) {
	completer := &scriptedCompleter{failWith: errors.New("llm unreachable")}
	searcher := &staticSearcher{err: errors.New("search unreachable")}

	p := New(testConfig(), completer, searcher, zap.NewNop())
	result := p.Run(context.Background(), "Some text with claims.", "", model.VerticalGeneral, "en")

	if result.Claims == nil {
		t.Fatal("claims must be an empty slice, not nil")
	}
	if len(result.Claims) != 0 {
		t.Errorf("claims = %d, want 0 when extraction fails", len(result.Claims))
	}
	if len(result.Errors) == 0 {
		t.Fatal("a run with a dead provider must report errors")
	}
	found := false
	for _, e := range result.Errors {
		if strings.Contains(e, "claim extraction error") {
			found = true
		}
	}
	if !found {
		t.Errorf("errors = %v, want a claim extraction error", result.Errors)
	}
}

func TestPipelineRunClassificationFailureKeepsClaims(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{
		`{"claims": [{"text": "Water boils at 100C", "claim_type": "numeric"}]}`,
		// classification returns junk, so the filter is skipped
		`not json at all`,
		`["water boiling point"]`,
		`{"verdict": "strongly_supported", "confidence": 0.95, "reasoning": "Basic physics.", "supporting_sources": [], "contradicting_sources": []}`,
	}}
	searcher := &staticSearcher{} // no evidence found

	p := New(testConfig(), completer, searcher, zap.NewNop())
	result := p.Run(context.Background(), "Water boils at 100C.", "", model.VerticalGeneral, "en")

	if len(result.Claims) != 1 {
		t.Fatalf("Run() = %d claims, want the unfiltered claim; errors: %v", len(result.Claims), result.Errors)
	}
	if result.Claims[0].Verdict != model.VerdictStronglySupported {
		t.Errorf("verdict = %q", result.Claims[0].Verdict)
	}
	found := false
	for _, e := range result.Errors {
		if strings.Contains(e, "classification error") {
			found = true
		}
	}
	if !found {
		t.Errorf("errors = %v, want a classification error", result.Errors)
	}
}

type panickingIngestor struct{}

func (panickingIngestor) Process(string) (string, int) {
	panic("cleaner exploded")
}

func TestPipelineRunIngestionFailureKeepsRawText(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{
		`{"claims": [{"text": "Acme has 500 employees", "claim_type": "numeric"}]}`,
		`[{"claim_id": "CLAIM_ID", "is_verifiable": true}]`,
		`["acme employee count"]`,
		`{"verdict": "supported", "confidence": 0.8, "reasoning": "Confirmed.", "supporting_sources": [], "contradicting_sources": []}`,
	}}

	p := New(testConfig(), completer, &staticSearcher{}, zap.NewNop())
	p.ingestor = panickingIngestor{}

	result := p.Run(context.Background(), "Acme has 500 employees.", "", model.VerticalGeneral, "en")

	if len(result.Claims) != 1 {
		t.Fatalf("Run() = %d claims, want extraction over the raw text; errors: %v",
			len(result.Claims), result.Errors)
	}
	found := false
	for _, e := range result.Errors {
		if strings.Contains(e, "ingestion panic") {
			found = true
		}
	}
	if !found {
		t.Errorf("errors = %v, want an ingestion panic", result.Errors)
	}
}

func TestStateAddErrorConcurrent(t *testing.T) {
	state := &State{}
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			state.AddError("error %d", n)
		}(i)
	}
	wg.Wait()
	if len(state.Errors) != 20 {
		t.Errorf("errors = %d, want 20", len(state.Errors))
	}
}
