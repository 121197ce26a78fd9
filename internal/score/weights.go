package score

import "github.com/ppiankov/trustlens/internal/model"

// All scoring constants live here. The values are hand-tuned
// heuristics; change them only as a deliberate recalibration, since
// every page score shifts with them.

// Base weight per verdict category, multiplied by the claim's
// confidence. not_verifiable sits at neutral: insufficient evidence
// is not the claim's fault.
var verdictWeights = map[model.VerdictCategory]float64{
	model.VerdictStronglySupported: 1.0,
	model.VerdictSupported:         0.85,
	model.VerdictMixed:             0.50,
	model.VerdictWeak:              0.35,
	model.VerdictContradicted:      0.10,
	model.VerdictOutdated:          0.40,
	model.VerdictNotVerifiable:     0.50,
}

const neutralVerdictWeight = 0.5

// Position weight 1.0 + positionBoost/(index+1): earlier claims count
// more, asymptotically approaching equal weight.
const positionBoost = 0.3

// Per-claim source bonuses, applied only when the claim has at least
// one attributed source. Each contributes up to 0.15 on top of the
// base score before the 1.0 cap.
const (
	supportRatioExponent = 0.7
	supportRatioBonusMax = 0.15
	sourceCountBonusMax  = 0.15
	sourceCountLogScale  = 0.08
	claimScoreCap        = 1.0
)

// Global bonus tiers on the final page score, keyed on the overall
// supporting/contradicting split across all claims.
const (
	globalBonusRatioHigh    = 0.7
	globalBonusMinSupportHi = 5
	globalBonusCapHigh      = 10.0
	globalBonusScaleHigh    = 2.0

	globalBonusRatioLow     = 0.8
	globalBonusMinSupportLo = 3
	globalBonusCapLow       = 8.0
	globalBonusScaleLow     = 1.5
)

// An empty claim list scores dead neutral.
const neutralPageScore = 50
