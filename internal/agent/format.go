package agent

import (
	"time"

	"github.com/ppiankov/trustlens/internal/model"
)

// Source attribution caps in the output shape.
const (
	maxSupportingSources    = 5
	maxContradictingSources = 3
	maxNeutralSources       = 3
)

var sourceDateFormats = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// Formatter maps internal pipeline state to the external claim-result
// shape. Pure data transformation, no external calls.
type Formatter struct{}

// NewFormatter creates a new result formatting agent
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format joins each claim with its verdict and attributed evidence.
// A claim with no verdict defaults to not_verifiable at confidence 0.
func (f *Formatter) Format(claims []model.Claim, verdicts []model.Verdict, evidence map[string][]model.EvidenceItem) []model.ClaimResult {
	if len(claims) == 0 {
		return []model.ClaimResult{}
	}

	verdictsByClaim := make(map[string]model.Verdict, len(verdicts))
	for _, v := range verdicts {
		verdictsByClaim[v.ClaimID] = v
	}

	results := make([]model.ClaimResult, 0, len(claims))
	for _, claim := range claims {
		verdict, hasVerdict := verdictsByClaim[claim.ID]
		if !hasVerdict {
			verdict = model.Verdict{
				ClaimID:    claim.ID,
				Category:   model.VerdictNotVerifiable,
				Confidence: 0.0,
				Reasoning:  "Unable to verify this claim.",
			}
		}

		results = append(results, model.ClaimResult{
			ID:              claim.ID,
			Span:            [2]int{claim.SpanStart, claim.SpanEnd},
			Text:            claim.Text,
			ClaimType:       claim.ClaimType,
			Topic:           claim.Topic,
			TimeSensitivity: claim.TimeSensitivity,
			Verdict:         verdict.Category,
			Confidence:      verdict.Confidence,
			Reasoning:       verdict.Reasoning,
			Sources:         buildSources(evidence[claim.ID], verdict.SupportingSources, verdict.ContradictingSources),
		})
	}

	return results
}

// buildSources partitions a claim's evidence by the verdict's declared
// URLs. When no declared URL matches the evidence pool, the top ranked
// items are presented as neutral context instead.
func buildSources(evidence []model.EvidenceItem, supportingURLs, contradictingURLs []string) model.ClaimSources {
	byURL := make(map[string]model.EvidenceItem, len(evidence))
	for _, e := range evidence {
		byURL[e.URL] = e
	}

	sources := model.ClaimSources{
		Supporting:    []model.SourceInfo{},
		Contradicting: []model.SourceInfo{},
	}

	for _, url := range capURLs(supportingURLs, maxSupportingSources) {
		if e, ok := byURL[url]; ok {
			sources.Supporting = append(sources.Supporting, sourceInfo(e, model.RoleSupporting))
		}
	}
	for _, url := range capURLs(contradictingURLs, maxContradictingSources) {
		if e, ok := byURL[url]; ok {
			sources.Contradicting = append(sources.Contradicting, sourceInfo(e, model.RoleContradicting))
		}
	}

	if len(sources.Supporting) == 0 && len(sources.Contradicting) == 0 && len(evidence) > 0 {
		for i, e := range evidence {
			if i >= maxNeutralSources {
				break
			}
			sources.Supporting = append(sources.Supporting, sourceInfo(e, model.RoleNeutral))
		}
	}

	return sources
}

func capURLs(urls []string, cap int) []string {
	if len(urls) > cap {
		return urls[:cap]
	}
	return urls
}

func sourceInfo(e model.EvidenceItem, role model.SourceRole) model.SourceInfo {
	return model.SourceInfo{
		URL:         e.URL,
		Domain:      e.Domain,
		Snippet:     e.Snippet,
		DomainScore: e.DomainReputation,
		PublishedAt: parseSourceDate(e.PublishedAt),
		Role:        role,
	}
}

func parseSourceDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, format := range sourceDateFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return &t
		}
	}
	return nil
}
