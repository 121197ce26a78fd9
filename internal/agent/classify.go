package agent

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ppiankov/trustlens/internal/llm"
	"github.com/ppiankov/trustlens/internal/model"
)

const classificationPrompt = `Analyze these claims and determine if each is objectively verifiable.

A claim is VERIFIABLE if:
- It makes a factual assertion that can be checked against external sources
- It contains specific, measurable details (numbers, names, dates)
- It could theoretically be proven true or false

A claim is NOT VERIFIABLE if:
- It's a pure opinion or subjective preference
- It's too vague to check
- It's about personal experiences
- It's a prediction about the future
- It's rhetorical or promotional fluff

Claims to analyze:
%s

For each claim, respond with JSON array:
[
    {"claim_id": "clm_xxx", "is_verifiable": true, "reason": "contains specific numbers"}
]

Return ONLY the JSON array, no other text.`

// Classifier filters claims to keep only verifiable ones, using the
// fast model for quick classification.
type Classifier struct {
	completer llm.Completer
	model     string
	logger    *zap.Logger
}

// NewClassifier creates a new claim classification agent
func NewClassifier(completer llm.Completer, model string, logger *zap.Logger) *Classifier {
	return &Classifier{completer: completer, model: model, logger: logger}
}

type classification struct {
	ClaimID      string `json:"claim_id"`
	IsVerifiable bool   `json:"is_verifiable"`
	Reason       string `json:"reason"`
}

// Filter marks each claim's verifiability and returns the verifiable
// subset. On provider or parse failure the caller keeps all claims:
// losing the filter is safer than losing the claims.
func (c *Classifier) Filter(ctx context.Context, claims []model.Claim) ([]model.Claim, error) {
	if len(claims) == 0 {
		return []model.Claim{}, nil
	}

	var sb strings.Builder
	for _, cl := range claims {
		fmt.Fprintf(&sb, "- ID: %s, Text: %s\n", cl.ID, cl.Text)
	}

	raw, err := c.completer.Complete(ctx, llm.Request{
		System:      "You are a claim classifier. Return only valid JSON.",
		Prompt:      fmt.Sprintf(classificationPrompt, sb.String()),
		Model:       c.model,
		Temperature: 0,
		MaxTokens:   2000,
	})
	if err != nil {
		return nil, fmt.Errorf("classification completion: %w", err)
	}

	var classifications []classification
	if err := llm.DecodeArray(raw, &classifications); err != nil {
		return nil, fmt.Errorf("classification parse: %w", err)
	}

	verifiable := make(map[string]bool, len(classifications))
	for _, cl := range classifications {
		if cl.IsVerifiable {
			verifiable[cl.ClaimID] = true
		}
	}

	filtered := make([]model.Claim, 0, len(claims))
	for i := range claims {
		claims[i].IsVerifiable = verifiable[claims[i].ID]
		if claims[i].IsVerifiable {
			filtered = append(filtered, claims[i])
		}
	}

	c.logger.Info("claims classified",
		zap.Int("total", len(claims)),
		zap.Int("verifiable", len(filtered)))

	return filtered, nil
}
