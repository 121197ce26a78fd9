package cli

import (
	"go.uber.org/zap"

	"github.com/ppiankov/trustlens/internal/cache"
	"github.com/ppiankov/trustlens/internal/fetch"
	"github.com/ppiankov/trustlens/internal/llm"
	"github.com/ppiankov/trustlens/internal/model"
	"github.com/ppiankov/trustlens/internal/pipeline"
	"github.com/ppiankov/trustlens/internal/search"
	"github.com/ppiankov/trustlens/internal/service"
	"github.com/ppiankov/trustlens/internal/store"
)

// buildService constructs the full verification stack. A missing LLM
// key does not fail construction: llmReady is false and the caller
// decides whether that is fatal.
func buildService(cfg *model.Config, logger *zap.Logger) (svc *service.Service, llmReady bool, err error) {
	completer, llmErr := llm.NewCompleter(llm.ConfigFromModel(cfg.LLM))
	llmReady = llmErr == nil
	if llmErr != nil {
		logger.Warn("no completion provider", zap.Error(llmErr))
		completer = llm.Unavailable(llmErr)
	}

	rep := search.NewReputation(cfg.Reputation)
	provider := search.NewChain(cfg.Search, rep)
	p := pipeline.New(cfg, completer, provider, logger)

	var st *store.Store
	if cfg.Store.Path != "" {
		st, err = store.Open(cfg.Store.Path)
		if err != nil {
			return nil, false, err
		}
	}

	fetcher := fetch.NewFetcher(cfg.HTTP, cfg.Search.RequestsPerSecond, logger)
	svc = service.New(p, cache.NewLayeredCache(cfg.Cache), st, fetcher, cfg.Cache.TTL, logger)
	return svc, llmReady, nil
}
