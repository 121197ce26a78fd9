package agent

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ppiankov/trustlens/internal/llm"
	"github.com/ppiankov/trustlens/internal/model"
)

const verificationPrompt = `You are an expert fact-checker. Analyze this claim against the provided evidence.

CLAIM TO VERIFY:
%s

EVIDENCE:
%s

Based on the evidence, provide your verdict:

1. **Verdict** (choose one):
   - strongly_supported: Multiple authoritative sources confirm this claim
   - supported: Evidence generally supports this claim
   - mixed: Evidence is conflicting or partial
   - weak: Limited or unreliable evidence
   - contradicted: Evidence contradicts this claim
   - outdated: Evidence suggests information is no longer current
   - not_verifiable: Cannot find sufficient evidence to verify

2. **Confidence** (0.0 to 1.0): How confident are you in this verdict?

3. **Reasoning**: Brief explanation (2-3 sentences) of why you reached this verdict.

4. **Supporting Sources**: List URLs that support the claim (if any)

5. **Contradicting Sources**: List URLs that contradict the claim (if any)

Respond in JSON format:
{
    "verdict": "...",
    "confidence": 0.X,
    "reasoning": "...",
    "supporting_sources": ["url1", "url2"],
    "contradicting_sources": ["url1"]
}

IMPORTANT:
- Base your verdict ONLY on the provided evidence
- If evidence is insufficient, say so honestly
- Don't assume facts not in the evidence
- Be conservative - use "mixed" or "weak" if uncertain
- Return ONLY valid JSON, no other text`

// At most this many evidence items are shown to the model per claim
const maxEvidenceInPrompt = 5

const noEvidenceMarker = "No evidence found for this claim."

// Verifier produces one verdict per claim from its ranked evidence
type Verifier struct {
	completer llm.Completer
	model     string
	logger    *zap.Logger
}

// NewVerifier creates a new verification agent
func NewVerifier(completer llm.Completer, model string, logger *zap.Logger) *Verifier {
	return &Verifier{completer: completer, model: model, logger: logger}
}

type verdictResponse struct {
	Verdict              string   `json:"verdict"`
	Confidence           float64  `json:"confidence"`
	Reasoning            string   `json:"reasoning"`
	SupportingSources    []string `json:"supporting_sources"`
	ContradictingSources []string `json:"contradicting_sources"`
}

// Verify generates verdicts for all claims, in claim order. A claim
// whose verification call fails gets the conservative fallback verdict;
// verification never raises past this stage.
func (v *Verifier) Verify(ctx context.Context, claims []model.Claim, evidence map[string][]model.EvidenceItem) []model.Verdict {
	verdicts := make([]model.Verdict, 0, len(claims))

	for _, claim := range claims {
		verdict, err := v.verifyClaim(ctx, claim, evidence[claim.ID])
		if err != nil {
			v.logger.Error("verification failed for claim",
				zap.String("claim_id", claim.ID), zap.Error(err))
			verdict = v.fallbackVerdict(claim.ID)
		}
		verdicts = append(verdicts, verdict)
	}

	v.logger.Info("claims verified", zap.Int("count", len(verdicts)))
	return verdicts
}

func (v *Verifier) verifyClaim(ctx context.Context, claim model.Claim, evidence []model.EvidenceItem) (model.Verdict, error) {
	raw, err := v.completer.Complete(ctx, llm.Request{
		System:      "You are a fact-checking expert. Always respond with valid JSON only.",
		Prompt:      fmt.Sprintf(verificationPrompt, claim.Text, formatEvidenceBlock(evidence)),
		Model:       v.model,
		Temperature: 0,
		MaxTokens:   1000,
	})
	if err != nil {
		return model.Verdict{}, fmt.Errorf("verification completion: %w", err)
	}

	var resp verdictResponse
	if err := llm.DecodeObject(raw, &resp); err != nil {
		return model.Verdict{}, fmt.Errorf("verdict parse: %w", err)
	}

	verdict := model.Verdict{
		ClaimID:              claim.ID,
		Category:             model.ParseVerdictCategory(strings.ToLower(resp.Verdict)),
		Confidence:           llm.Clamp01(resp.Confidence),
		Reasoning:            resp.Reasoning,
		SupportingSources:    resp.SupportingSources,
		ContradictingSources: resp.ContradictingSources,
		ModelUsed:            v.model,
	}
	if verdict.SupportingSources == nil {
		verdict.SupportingSources = []string{}
	}
	if verdict.ContradictingSources == nil {
		verdict.ContradictingSources = []string{}
	}
	return verdict, nil
}

func (v *Verifier) fallbackVerdict(claimID string) model.Verdict {
	return model.Verdict{
		ClaimID:              claimID,
		Category:             model.VerdictNotVerifiable,
		Confidence:           0.0,
		Reasoning:            "Verification failed due to an error.",
		SupportingSources:    []string{},
		ContradictingSources: []string{},
		ModelUsed:            v.model,
	}
}

// formatEvidenceBlock renders up to maxEvidenceInPrompt items for the
// prompt, or the no-evidence marker when the claim has none.
func formatEvidenceBlock(evidence []model.EvidenceItem) string {
	if len(evidence) == 0 {
		return noEvidenceMarker
	}

	var parts []string
	for i, e := range evidence {
		if i >= maxEvidenceInPrompt {
			break
		}
		published := e.PublishedAt
		if published == "" {
			published = "Unknown"
		}
		parts = append(parts, fmt.Sprintf(
			"Source %d:\n  URL: %s\n  Domain: %s (reputation: %.2f)\n  Published: %s\n  Content: %s",
			i+1, e.URL, e.Domain, e.DomainReputation, published, e.Snippet))
	}
	return strings.Join(parts, "\n\n")
}
