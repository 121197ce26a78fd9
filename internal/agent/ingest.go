// Package agent implements the stages of the verification pipeline.
// Each agent is a pure transformation over pipeline state; failures are
// reported to the caller, which substitutes stage-specific defaults so
// that no single stage aborts a run.
package agent

import (
	"regexp"
	"strings"
)

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	controlRe    = regexp.MustCompile("[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]")
)

// Ingestor cleans and prepares raw text for claim extraction
type Ingestor struct{}

// NewIngestor creates a new ingestion agent
func NewIngestor() *Ingestor {
	return &Ingestor{}
}

// Process normalizes the raw text and returns the clean text with its
// word count. Strips leftover HTML tags, control characters, and
// collapses whitespace.
func (i *Ingestor) Process(text string) (string, int) {
	text = htmlTagRe.ReplaceAllString(text, "")
	text = controlRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	wordCount := 0
	if text != "" {
		wordCount = len(strings.Fields(text))
	}
	return text, wordCount
}
