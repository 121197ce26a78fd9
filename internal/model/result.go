package model

// Summary counts claims by verdict category
type Summary struct {
	StronglySupported int `json:"strongly_supported"`
	Supported         int `json:"supported"`
	Mixed             int `json:"mixed"`
	Weak              int `json:"weak"`
	Contradicted      int `json:"contradicted"`
	Outdated          int `json:"outdated"`
	NotVerifiable     int `json:"not_verifiable"`
}

// RunResult is the raw pipeline output before scoring
type RunResult struct {
	Claims         []ClaimResult `json:"claims"`
	ModelsUsed     []string      `json:"models_used"`
	SourcesChecked int           `json:"sources_checked"`
	Errors         []string      `json:"errors,omitempty"` // Diagnostic, never fatal
}

// Metadata describes how a verification was produced
type Metadata struct {
	ProcessingTimeMS int64    `json:"processing_time_ms"`
	ModelsUsed       []string `json:"models_used"`
	SourcesChecked   int      `json:"sources_checked"`
	Cached           bool     `json:"cached"`
}

// Verification is the complete result for one piece of content
type Verification struct {
	ID          string        `json:"verification_id"`
	Status      string        `json:"status"`
	URL         string        `json:"url,omitempty"`
	PageScore   int           `json:"page_score"` // 0..100 aggregate trust metric
	Summary     Summary       `json:"summary"`
	Claims      []ClaimResult `json:"claims"`
	Metadata    Metadata      `json:"metadata"`
	ContentHash string        `json:"content_hash,omitempty"`
	Errors      []string      `json:"errors,omitempty"`
}
