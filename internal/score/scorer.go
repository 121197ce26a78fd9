// Package score aggregates per-claim verdicts into the page-level
// trust score and the verdict-distribution summary.
package score

import (
	"math"

	"github.com/ppiankov/trustlens/internal/model"
)

// Scorer computes the 0-100 page score from formatted claim results
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// PageScore computes the aggregate trust score for one run.
//
// Per claim: verdict weight times confidence, plus source bonuses,
// capped at 1.0, position-weighted so earlier claims count more. The
// weighted average scales to 0-100 and a global bonus of up to +10
// applies when the page's sources lean strongly supporting. Always an
// integer in [0,100]; no claims yields the neutral 50.
func (s *Scorer) PageScore(claims []model.ClaimResult) int {
	if len(claims) == 0 {
		return neutralPageScore
	}

	totalSupporting := 0
	totalContradicting := 0
	weightedSum := 0.0
	totalWeight := 0.0

	for i, claim := range claims {
		supporting := len(claim.Sources.Supporting)
		contradicting := len(claim.Sources.Contradicting)
		totalSupporting += supporting
		totalContradicting += contradicting

		positionWeight := 1.0 + positionBoost/float64(i+1)

		weightedSum += claimScore(claim, supporting, contradicting) * positionWeight
		totalWeight += positionWeight
	}

	if totalWeight == 0 {
		return neutralPageScore
	}

	pageScore := int((weightedSum / totalWeight) * 100)
	pageScore += globalBonus(totalSupporting, totalContradicting)

	if pageScore > 100 {
		return 100
	}
	if pageScore < 0 {
		return 0
	}
	return pageScore
}

// Summarize counts claims per verdict category
func (s *Scorer) Summarize(claims []model.ClaimResult) model.Summary {
	var summary model.Summary
	for _, claim := range claims {
		switch claim.Verdict {
		case model.VerdictStronglySupported:
			summary.StronglySupported++
		case model.VerdictSupported:
			summary.Supported++
		case model.VerdictMixed:
			summary.Mixed++
		case model.VerdictWeak:
			summary.Weak++
		case model.VerdictContradicted:
			summary.Contradicted++
		case model.VerdictOutdated:
			summary.Outdated++
		default:
			summary.NotVerifiable++
		}
	}
	return summary
}

func claimScore(claim model.ClaimResult, supporting, contradicting int) float64 {
	weight, ok := verdictWeights[claim.Verdict]
	if !ok {
		weight = neutralVerdictWeight
	}
	base := weight * claim.Confidence

	totalSources := supporting + contradicting
	if totalSources == 0 {
		return base
	}

	supportRatio := float64(supporting) / float64(totalSources)
	supportBonus := math.Pow(supportRatio, supportRatioExponent) * supportRatioBonusMax
	sourceBonus := math.Min(sourceCountBonusMax, sourceCountLogScale*math.Log(float64(supporting)+1))

	return math.Min(claimScoreCap, base+supportBonus+sourceBonus)
}

// globalBonus rewards pages whose sources lean heavily supporting.
// Two tiers: many supporting sources at a 70% split, or a few at 80%.
func globalBonus(supporting, contradicting int) int {
	if supporting == 0 {
		return 0
	}

	ratio := float64(supporting) / float64(supporting+contradicting)
	switch {
	case ratio >= globalBonusRatioHigh && supporting >= globalBonusMinSupportHi:
		return int(math.Min(globalBonusCapHigh, globalBonusScaleHigh*math.Log(float64(supporting))))
	case ratio >= globalBonusRatioLow && supporting >= globalBonusMinSupportLo:
		return int(math.Min(globalBonusCapLow, globalBonusScaleLow*math.Log(float64(supporting))))
	default:
		return 0
	}
}
