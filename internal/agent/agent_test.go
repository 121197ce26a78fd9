package agent

import (
	"context"
	"errors"
	"sync"

	"github.com/ppiankov/trustlens/internal/llm"
	"github.com/ppiankov/trustlens/internal/model"
	"go.uber.org/zap"
)

// fakeCompleter returns canned responses in call order, or a fixed
// error when failWith is set.
type fakeCompleter struct {
	mu        sync.Mutex
	responses []string
	calls     int
	failWith  error
}

func (f *fakeCompleter) Name() string { return "fake" }

func (f *fakeCompleter) Complete(_ context.Context, _ llm.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return "", f.failWith
	}
	if f.calls >= len(f.responses) {
		return "", errors.New("fakeCompleter: no more responses")
	}
	resp := f.responses[f.calls]
	f.calls++
	return resp, nil
}

func (f *fakeCompleter) IsAvailable(_ context.Context) bool { return true }

// fakeSearcher returns canned evidence keyed by query
type fakeSearcher struct {
	mu      sync.Mutex
	results map[string][]model.EvidenceItem
	errs    map[string]error
	queries []string
}

func (f *fakeSearcher) Name() string { return "fake" }

func (f *fakeSearcher) Search(_ context.Context, query string) ([]model.EvidenceItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if err, ok := f.errs[query]; ok {
		return nil, err
	}
	return f.results[query], nil
}

func testLogger() *zap.Logger { return zap.NewNop() }

func testPipelineConfig() model.PipelineConfig {
	return model.PipelineConfig{
		MaxClaims:           50,
		MaxEvidencePerClaim: 10,
		MaxQueriesPerClaim:  3,
		MaxPromptChars:      12000,
	}
}
