package search

import (
	"strings"

	"github.com/ppiankov/trustlens/internal/model"
)

// Default reputation tiers. Substring membership keeps "gov"/"edu"
// matching any government or university host.
var (
	defaultTrustedDomains = []string{
		"wikipedia.org", "github.com", "reuters.com", "bbc.com",
		"nytimes.com", "nature.com", "science.org", "gov",
		"edu", "who.int", "cdc.gov",
	}

	defaultMediumDomains = []string{
		"medium.com", "linkedin.com", "forbes.com", "techcrunch.com",
	}
)

// Reputation scores per-claim source hostnames. These are heuristics,
// not a verdict on any individual page.
const (
	trustedScore = 0.9
	mediumScore  = 0.7
	neutralScore = 0.5
)

// Reputation is a static domain trust lookup attached to evidence at
// creation time.
type Reputation struct {
	trusted []string
	medium  []string
}

// NewReputation creates a reputation lookup, using the built-in lists
// for any tier the config leaves empty.
func NewReputation(cfg model.ReputationConfig) *Reputation {
	trusted := cfg.Trusted
	if len(trusted) == 0 {
		trusted = defaultTrustedDomains
	}
	medium := cfg.Medium
	if len(medium) == 0 {
		medium = defaultMediumDomains
	}
	return &Reputation{trusted: trusted, medium: medium}
}

// Score returns the trust score for a hostname
func (r *Reputation) Score(domain string) float64 {
	for _, t := range r.trusted {
		if t != "" && strings.Contains(domain, t) {
			return trustedScore
		}
	}
	for _, m := range r.medium {
		if m != "" && strings.Contains(domain, m) {
			return mediumScore
		}
	}
	return neutralScore
}
