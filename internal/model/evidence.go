package model

// EvidenceItem represents one retrieved web result considered for a claim.
// Created by retrieval, scored in place by the ranker, read-only afterwards.
type EvidenceItem struct {
	URL              string  `json:"url"`                    // Unique within a claim's evidence set
	Title            string  `json:"title"`
	Snippet          string  `json:"snippet"`
	Domain           string  `json:"domain"`                 // Hostname
	PublishedAt      string  `json:"published_at,omitempty"` // Raw date string as reported by the provider
	RelevanceScore   float64 `json:"relevance_score"`        // LLM relevance, 0..1
	DomainReputation float64 `json:"domain_reputation"`      // Heuristic trust for the hostname, 0..1
	CombinedScore    float64 `json:"combined_score"`         // Ranker output, 0..1
}
