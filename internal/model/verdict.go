package model

import (
	"encoding/json"
	"time"
)

// VerdictCategory is the categorical outcome of verifying a claim
type VerdictCategory string

const (
	VerdictStronglySupported VerdictCategory = "strongly_supported" // Multiple authoritative sources confirm
	VerdictSupported         VerdictCategory = "supported"          // Evidence generally supports
	VerdictMixed             VerdictCategory = "mixed"              // Conflicting or partial evidence
	VerdictWeak              VerdictCategory = "weak"               // Limited or unreliable evidence
	VerdictContradicted      VerdictCategory = "contradicted"       // Evidence contradicts the claim
	VerdictOutdated          VerdictCategory = "outdated"           // Information no longer current
	VerdictNotVerifiable     VerdictCategory = "not_verifiable"     // Insufficient evidence
)

// ParseVerdictCategory maps a raw string to a VerdictCategory, defaulting
// to not_verifiable for anything unrecognized.
func ParseVerdictCategory(s string) VerdictCategory {
	switch VerdictCategory(s) {
	case VerdictStronglySupported, VerdictSupported, VerdictMixed, VerdictWeak,
		VerdictContradicted, VerdictOutdated, VerdictNotVerifiable:
		return VerdictCategory(s)
	default:
		return VerdictNotVerifiable
	}
}

// Verdict is the verifier's decision for one claim. Exactly one per claim
// in a given run, immutable after creation.
type Verdict struct {
	ClaimID              string          `json:"claim_id"`
	Category             VerdictCategory `json:"verdict"`
	Confidence           float64         `json:"confidence"` // 0..1
	Reasoning            string          `json:"reasoning"`
	SupportingSources    []string        `json:"supporting_sources"`    // URLs
	ContradictingSources []string        `json:"contradicting_sources"` // URLs
	ModelUsed            string          `json:"model_used"`
}

// SourceRole indicates how a source relates to a claim
type SourceRole string

const (
	RoleSupporting    SourceRole = "supporting"
	RoleContradicting SourceRole = "contradicting"
	RoleNeutral       SourceRole = "neutral"
)

// ParseSourceRole maps a raw string to a SourceRole. An unrecognized
// value becomes neutral, not supporting: a source whose role we cannot
// identify must not count toward the claim.
func ParseSourceRole(s string) SourceRole {
	switch SourceRole(s) {
	case RoleSupporting, RoleContradicting, RoleNeutral:
		return SourceRole(s)
	default:
		return RoleNeutral
	}
}

// UnmarshalJSON normalizes roles decoded from cached or stored results
func (r *SourceRole) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = ParseSourceRole(s)
	return nil
}

// SourceInfo is an attributed evidence source in the output shape
type SourceInfo struct {
	URL         string     `json:"url"`
	Domain      string     `json:"domain"`
	Snippet     string     `json:"snippet"`
	DomainScore float64    `json:"domain_score"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Role        SourceRole `json:"role"`
}

// ClaimSources partitions a claim's attributed sources by role.
// Neutral sources (the top-evidence fallback) live under Supporting
// with RoleNeutral, matching the external response shape.
type ClaimSources struct {
	Supporting    []SourceInfo `json:"supporting"`
	Contradicting []SourceInfo `json:"contradicting"`
}

// ClaimResult is the output-facing composition of claim + verdict + sources
type ClaimResult struct {
	ID              string          `json:"id"`
	Span            [2]int          `json:"span"`
	Text            string          `json:"text"`
	ClaimType       ClaimType       `json:"claim_type"`
	Topic           Vertical        `json:"topic"`
	TimeSensitivity TimeSensitivity `json:"time_sensitivity"`
	Verdict         VerdictCategory `json:"verdict"`
	Confidence      float64         `json:"confidence"`
	Reasoning       string          `json:"reasoning"`
	Sources         ClaimSources    `json:"sources"`
}
