package agent

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ppiankov/trustlens/internal/llm"
	"github.com/ppiankov/trustlens/internal/model"
)

const queryPlanningPrompt = `Generate effective search queries to verify this factual claim.

Claim: %s
Topic: %s
Type: %s

Generate 2-3 search queries that would help find:
1. Direct confirmation or contradiction of this claim
2. Official/authoritative sources on this topic
3. Recent information if the claim is time-sensitive

Good queries:
- Include key entities and numbers from the claim
- Use quotes for exact phrases when helpful
- Vary specificity (one broad, one specific)

Return as JSON array of strings: ["query1", "query2", "query3"]`

// The one sampling exception in the pipeline: a little temperature
// buys lexical diversity across the generated queries.
const queryPlanningTemperature = 0.3

// Fallback queries use the claim's own text, truncated.
const fallbackQueryChars = 100

// Planner generates search queries per claim
type Planner struct {
	completer  llm.Completer
	model      string
	maxQueries int
	logger     *zap.Logger
}

// NewPlanner creates a new query planning agent
func NewPlanner(completer llm.Completer, model string, cfg model.PipelineConfig, logger *zap.Logger) *Planner {
	maxQueries := cfg.MaxQueriesPerClaim
	if maxQueries <= 0 {
		maxQueries = 3
	}
	return &Planner{
		completer:  completer,
		model:      model,
		maxQueries: maxQueries,
		logger:     logger,
	}
}

// Plan generates 1-3 search queries per claim. A claim whose planning
// call fails gets its own text as a fallback query, so every claim
// always reaches retrieval with at least one query.
func (p *Planner) Plan(ctx context.Context, claims []model.Claim, vertical model.Vertical) map[string][]string {
	queries := make(map[string][]string, len(claims))

	for _, claim := range claims {
		topic := claim.Topic
		if topic == "" {
			topic = vertical
		}

		raw, err := p.completer.Complete(ctx, llm.Request{
			Prompt:      fmt.Sprintf(queryPlanningPrompt, claim.Text, topic, claim.ClaimType),
			Model:       p.model,
			Temperature: queryPlanningTemperature,
			MaxTokens:   500,
		})
		if err != nil {
			p.logger.Warn("query planning failed for claim",
				zap.String("claim_id", claim.ID), zap.Error(err))
			queries[claim.ID] = []string{fallbackQuery(claim.Text)}
			continue
		}

		var planned []string
		if err := llm.DecodeArray(raw, &planned); err != nil {
			queries[claim.ID] = []string{fallbackQuery(claim.Text)}
			continue
		}

		planned = nonEmpty(planned)
		if len(planned) == 0 {
			queries[claim.ID] = []string{fallbackQuery(claim.Text)}
			continue
		}
		if len(planned) > p.maxQueries {
			planned = planned[:p.maxQueries]
		}
		queries[claim.ID] = planned
	}

	total := 0
	for _, q := range queries {
		total += len(q)
	}
	p.logger.Info("queries planned", zap.Int("total", total))

	return queries
}

func fallbackQuery(claimText string) string {
	if len(claimText) > fallbackQueryChars {
		return claimText[:fallbackQueryChars]
	}
	return claimText
}

func nonEmpty(queries []string) []string {
	out := queries[:0]
	for _, q := range queries {
		if q != "" {
			out = append(out, q)
		}
	}
	return out
}
