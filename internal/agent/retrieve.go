package agent

import (
	"context"

	"go.uber.org/zap"

	"github.com/ppiankov/trustlens/internal/model"
	"github.com/ppiankov/trustlens/internal/search"
	"github.com/ppiankov/trustlens/internal/worker"
)

// Retriever fans search calls out across all claims' queries under a
// bounded worker pool, respecting the search capability's rate limits.
type Retriever struct {
	provider search.Provider
	workers  int
	logger   *zap.Logger
}

// NewRetriever creates a new evidence retrieval agent
func NewRetriever(provider search.Provider, workers int, logger *zap.Logger) *Retriever {
	if workers <= 0 {
		workers = 3
	}
	return &Retriever{provider: provider, workers: workers, logger: logger}
}

// searchJob is one (claim, query) search call
type searchJob struct {
	ctx      context.Context
	claimID  string
	query    string
	provider search.Provider
}

// searchResult carries one query's evidence back from the pool
type searchResult struct {
	claimID string
	items   []model.EvidenceItem
	err     error
}

func (r *searchResult) GetError() error {
	return r.err
}

// Execute runs the search call under the request context
func (j *searchJob) Execute(_ context.Context) worker.Result {
	items, err := j.provider.Search(j.ctx, j.query)
	return &searchResult{claimID: j.claimID, items: items, err: err}
}

// Fetch retrieves evidence for every claim's queries. Duplicate URLs
// within a claim are dropped (first seen wins), and one query's failure
// never blocks the rest of the batch.
func (r *Retriever) Fetch(ctx context.Context, queries map[string][]string) map[string][]model.EvidenceItem {
	evidence := make(map[string][]model.EvidenceItem, len(queries))
	if len(queries) == 0 {
		return evidence
	}

	pool := worker.NewPool(r.workers)
	pool.Start()

	jobs := 0
	for claimID, claimQueries := range queries {
		evidence[claimID] = []model.EvidenceItem{}
		for _, query := range claimQueries {
			pool.Submit(&searchJob{ctx: ctx, claimID: claimID, query: query, provider: r.provider})
			jobs++
		}
	}

	seen := make(map[string]map[string]bool, len(queries))
	for _, res := range pool.Wait() {
		sr := res.(*searchResult)
		if sr.err != nil {
			r.logger.Warn("search failed",
				zap.String("claim_id", sr.claimID), zap.Error(sr.err))
			continue
		}

		if seen[sr.claimID] == nil {
			seen[sr.claimID] = make(map[string]bool)
		}
		for _, item := range sr.items {
			if item.URL == "" || seen[sr.claimID][item.URL] {
				continue
			}
			seen[sr.claimID][item.URL] = true
			evidence[sr.claimID] = append(evidence[sr.claimID], item)
		}
	}

	total := 0
	for _, items := range evidence {
		total += len(items)
	}
	r.logger.Info("evidence fetched",
		zap.Int("queries", jobs), zap.Int("items", total))

	return evidence
}
