package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ppiankov/trustlens/internal/llm"
	"github.com/ppiankov/trustlens/internal/model"
)

const extractionPrompt = `You are an expert at identifying factual claims in text.

Your task is to extract all factual claims from the given text. Focus on:
1. **Numeric claims** - Statistics, percentages, counts, measurements
2. **Entity claims** - Facts about companies, products, people
3. **Temporal claims** - Dates, timeframes, sequences
4. **Comparative claims** - Comparisons between things
5. **Causal claims** - Cause-effect statements

DO NOT extract:
- Pure opinions or subjective statements
- Questions
- Hypotheticals or speculations
- Generic marketing fluff without specific claims

For each claim, provide:
- The exact text of the claim
- Character positions (span_start, span_end)
- Claim type
- Topic category
- Time sensitivity (how quickly might this become outdated)

Content vertical hint: %s

TEXT TO ANALYZE:
%s

Return your analysis as a JSON object with a "claims" array. Example format:
{
    "claims": [
        {
            "text": "claim text here",
            "span_start": 0,
            "span_end": 20,
            "claim_type": "numeric",
            "topic": "saas",
            "time_sensitivity": "high"
        }
    ]
}

Limit to the %d most significant claims.
Return ONLY valid JSON, no other text.`

// Extractor pulls factual claims out of clean text via one LLM call
type Extractor struct {
	completer      llm.Completer
	model          string
	maxClaims      int
	maxPromptChars int
	logger         *zap.Logger
}

// NewExtractor creates a new claim extraction agent
func NewExtractor(completer llm.Completer, model string, cfg model.PipelineConfig, logger *zap.Logger) *Extractor {
	maxClaims := cfg.MaxClaims
	if maxClaims <= 0 {
		maxClaims = 50
	}
	maxPromptChars := cfg.MaxPromptChars
	if maxPromptChars <= 0 {
		maxPromptChars = 12000
	}
	return &Extractor{
		completer:      completer,
		model:          model,
		maxClaims:      maxClaims,
		maxPromptChars: maxPromptChars,
		logger:         logger,
	}
}

type extractedClaim struct {
	Text            string `json:"text"`
	SpanStart       int    `json:"span_start"`
	SpanEnd         int    `json:"span_end"`
	ClaimType       string `json:"claim_type"`
	Topic           string `json:"topic"`
	TimeSensitivity string `json:"time_sensitivity"`
}

type extractionResult struct {
	Claims []extractedClaim `json:"claims"`
}

// Extract returns candidate claims with IDs assigned. The text is
// truncated to the configured prompt budget before prompting.
func (e *Extractor) Extract(ctx context.Context, text string, vertical model.Vertical) ([]model.Claim, error) {
	if len(text) > e.maxPromptChars {
		text = text[:e.maxPromptChars]
	}

	raw, err := e.completer.Complete(ctx, llm.Request{
		System:      "You are a claim extraction expert. Always respond with valid JSON only.",
		Prompt:      fmt.Sprintf(extractionPrompt, vertical, text, e.maxClaims),
		Model:       e.model,
		Temperature: 0,
		MaxTokens:   4000,
	})
	if err != nil {
		return nil, fmt.Errorf("extraction completion: %w", err)
	}

	var result extractionResult
	if err := llm.DecodeObject(raw, &result); err != nil {
		return nil, fmt.Errorf("extraction parse: %w", err)
	}

	claims := make([]model.Claim, 0, len(result.Claims))
	for _, ec := range result.Claims {
		if len(claims) >= e.maxClaims {
			break
		}
		if strings.TrimSpace(ec.Text) == "" {
			continue
		}
		claims = append(claims, model.Claim{
			ID:              newClaimID(),
			Text:            ec.Text,
			SpanStart:       ec.SpanStart,
			SpanEnd:         ec.SpanEnd,
			ClaimType:       model.ParseClaimType(ec.ClaimType),
			Topic:           model.ParseVertical(ec.Topic),
			TimeSensitivity: model.ParseTimeSensitivity(ec.TimeSensitivity),
			IsVerifiable:    true,
		})
	}

	e.logger.Info("claims extracted", zap.Int("count", len(claims)))
	return claims, nil
}

func newClaimID() string {
	return "clm_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
