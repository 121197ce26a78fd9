package agent

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/trustlens/internal/llm"
	"github.com/ppiankov/trustlens/internal/model"
)

const relevancePrompt = `Rate how relevant this evidence is to verifying the claim.

Claim: %s

Evidence:
Title: %s
Snippet: %s
Domain: %s

Rate relevance from 0.0 to 1.0 where:
- 1.0 = Directly addresses the claim with specific information
- 0.7 = Related and provides useful context
- 0.4 = Tangentially related
- 0.0 = Not relevant

Respond with just the number (e.g., 0.8)`

// Combined-score weights. Relevance dominates, then source trust, then
// freshness. These values are load-bearing for score parity: changing
// them changes every page score.
const (
	relevanceWeight  = 0.5
	reputationWeight = 0.3
	recencyWeight    = 0.2
)

// Half-life of evidence usefulness in days, per claim time sensitivity.
const (
	decayDaysHigh   = 90
	decayDaysMedium = 365
	decayDaysLow    = 1000
)

// Bounds and fallbacks for the recency component.
const (
	recencyFloor   = 0.1
	neutralRecency = 0.5
)

// A transient relevance-scoring failure gets a neutral score rather
// than zero, so provider hiccups don't bury otherwise good evidence.
const neutralRelevance = 0.5

// Date formats providers report. Tried in order; first match wins.
var publishedAtFormats = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"January 2, 2006",
	"Jan 2, 2006",
}

// Ranker scores and ranks each claim's evidence, keeping the top K
type Ranker struct {
	completer   llm.Completer
	model       string
	maxPerClaim int
	now         func() time.Time
	logger      *zap.Logger
}

// NewRanker creates a new evidence ranking agent
func NewRanker(completer llm.Completer, model string, cfg model.PipelineConfig, logger *zap.Logger) *Ranker {
	maxPerClaim := cfg.MaxEvidencePerClaim
	if maxPerClaim <= 0 {
		maxPerClaim = 10
	}
	return &Ranker{
		completer:   completer,
		model:       model,
		maxPerClaim: maxPerClaim,
		now:         time.Now,
		logger:      logger,
	}
}

// Rank computes a combined score for every evidence item and returns
// the top-K per claim, sorted descending by combined score. Evidence
// for unknown claim IDs is dropped.
func (r *Ranker) Rank(ctx context.Context, claims []model.Claim, evidence map[string][]model.EvidenceItem) map[string][]model.EvidenceItem {
	ranked := make(map[string][]model.EvidenceItem)
	if len(claims) == 0 || len(evidence) == 0 {
		return ranked
	}

	claimsByID := make(map[string]model.Claim, len(claims))
	for _, c := range claims {
		claimsByID[c.ID] = c
	}

	for claimID, items := range evidence {
		claim, ok := claimsByID[claimID]
		if !ok {
			continue
		}

		scored := make([]model.EvidenceItem, len(items))
		copy(scored, items)
		for i := range scored {
			r.scoreEvidence(ctx, claim, &scored[i])
		}

		sort.SliceStable(scored, func(a, b int) bool {
			return scored[a].CombinedScore > scored[b].CombinedScore
		})
		if len(scored) > r.maxPerClaim {
			scored = scored[:r.maxPerClaim]
		}
		ranked[claimID] = scored
	}

	total := 0
	for _, items := range ranked {
		total += len(items)
	}
	r.logger.Info("evidence ranked", zap.Int("kept", total))

	return ranked
}

// scoreEvidence computes the weighted combination of LLM relevance,
// domain reputation, and recency, writing both the relevance and the
// combined score back onto the item.
func (r *Ranker) scoreEvidence(ctx context.Context, claim model.Claim, item *model.EvidenceItem) {
	relevance := r.relevanceScore(ctx, claim, item)
	recency := recencyScore(item.PublishedAt, claim.TimeSensitivity, r.now())

	item.RelevanceScore = relevance
	item.CombinedScore = relevance*relevanceWeight +
		item.DomainReputation*reputationWeight +
		recency*recencyWeight
}

// relevanceScore asks the fast model for a 0.0-1.0 relevance number
func (r *Ranker) relevanceScore(ctx context.Context, claim model.Claim, item *model.EvidenceItem) float64 {
	raw, err := r.completer.Complete(ctx, llm.Request{
		Prompt:      fmt.Sprintf(relevancePrompt, claim.Text, item.Title, item.Snippet, item.Domain),
		Model:       r.model,
		Temperature: 0,
		MaxTokens:   10,
	})
	if err != nil {
		r.logger.Warn("relevance scoring failed", zap.Error(err))
		return neutralRelevance
	}

	score, err := llm.ParseScore(raw)
	if err != nil {
		r.logger.Warn("relevance parse failed", zap.Error(err))
		return neutralRelevance
	}
	return score
}

// recencyScore applies exponential decay from the publication date:
// 0.5^(age_days/decay) clamped to [0.1, 1.0]. Missing or unparseable
// dates score a neutral 0.5. Decay is faster for time-sensitive claims.
func recencyScore(publishedAt string, sensitivity model.TimeSensitivity, now time.Time) float64 {
	pub, ok := parsePublishedAt(publishedAt)
	if !ok {
		return neutralRecency
	}

	ageDays := now.Sub(pub).Hours() / 24

	var decay float64
	switch sensitivity {
	case model.SensitivityHigh:
		decay = decayDaysHigh
	case model.SensitivityMedium:
		decay = decayDaysMedium
	default:
		decay = decayDaysLow
	}

	score := math.Pow(0.5, ageDays/decay)
	return math.Max(recencyFloor, math.Min(1.0, score))
}

func parsePublishedAt(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, format := range publishedAtFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return t, true
		}
	}
	// Many providers append a time component to a plain date
	if len(raw) >= 10 {
		if t, err := time.Parse("2006-01-02", raw[:10]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
