package model

// Claim represents a factual assertion extracted from the source text
type Claim struct {
	ID              string          `json:"id"`                // Unique within a run (clm_xxxxxxxx)
	Text            string          `json:"text"`              // The claim text itself
	SpanStart       int             `json:"span_start"`        // Character offset where claim starts
	SpanEnd         int             `json:"span_end"`          // Character offset where claim ends
	ClaimType       ClaimType       `json:"claim_type"`        // Nature of the claim
	Topic           Vertical        `json:"topic"`             // Content category
	TimeSensitivity TimeSensitivity `json:"time_sensitivity"`  // How quickly the claim goes stale
	IsVerifiable    bool            `json:"is_verifiable"`     // Set by the classifier stage
}

// ClaimType categorizes the nature of the claim
type ClaimType string

const (
	ClaimTypeNumeric     ClaimType = "numeric"     // Statistics, percentages, counts
	ClaimTypeEntity      ClaimType = "entity"      // Facts about companies, products, people
	ClaimTypeTemporal    ClaimType = "temporal"    // Dates, timeframes, sequences
	ClaimTypeComparative ClaimType = "comparative" // Comparisons between things
	ClaimTypeCausal      ClaimType = "causal"      // Cause-effect statements
	ClaimTypeGeneral     ClaimType = "general"
)

// ParseClaimType maps a raw string to a ClaimType, defaulting to general
// for anything unrecognized.
func ParseClaimType(s string) ClaimType {
	switch ClaimType(s) {
	case ClaimTypeNumeric, ClaimTypeEntity, ClaimTypeTemporal, ClaimTypeComparative, ClaimTypeCausal, ClaimTypeGeneral:
		return ClaimType(s)
	default:
		return ClaimTypeGeneral
	}
}

// TimeSensitivity indicates how quickly a claim may become outdated
type TimeSensitivity string

const (
	SensitivityHigh   TimeSensitivity = "high"   // Numbers, stats that change frequently
	SensitivityMedium TimeSensitivity = "medium" // Facts that may become outdated
	SensitivityLow    TimeSensitivity = "low"    // Timeless facts
)

// ParseTimeSensitivity maps a raw string to a TimeSensitivity, defaulting
// to low (the slowest evidence decay) for anything unrecognized.
func ParseTimeSensitivity(s string) TimeSensitivity {
	switch TimeSensitivity(s) {
	case SensitivityHigh, SensitivityMedium, SensitivityLow:
		return TimeSensitivity(s)
	default:
		return SensitivityLow
	}
}

// Vertical is a content-category hint influencing prompts
type Vertical string

const (
	VerticalEcommerce    Vertical = "ecommerce"
	VerticalSaaS         Vertical = "saas"
	VerticalTech         Vertical = "tech"
	VerticalFinance      Vertical = "finance"
	VerticalHealth       Vertical = "health"
	VerticalEducation    Vertical = "education"
	VerticalProfessional Vertical = "professional"
	VerticalGeneral      Vertical = "general"
)

// ParseVertical maps a raw string to a Vertical, defaulting to general.
func ParseVertical(s string) Vertical {
	switch Vertical(s) {
	case VerticalEcommerce, VerticalSaaS, VerticalTech, VerticalFinance,
		VerticalHealth, VerticalEducation, VerticalProfessional, VerticalGeneral:
		return Vertical(s)
	default:
		return VerticalGeneral
	}
}
