package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ppiankov/trustlens/internal/model"
)

func TestExtractorExtract(t *testing.T) {
	completer := &fakeCompleter{responses: []string{`{
		"claims": [
			{
				"text": "Revenue grew 40% in 2023",
				"span_start": 0,
				"span_end": 24,
				"claim_type": "numeric",
				"topic": "finance",
				"time_sensitivity": "medium"
			},
			{
				"text": "The company was founded in 2010",
				"span_start": 26,
				"span_end": 57,
				"claim_type": "temporal",
				"topic": "general",
				"time_sensitivity": "low"
			}
		]
	}`}}

	ext := NewExtractor(completer, "test-model", testPipelineConfig(), testLogger())
	claims, err := ext.Extract(context.Background(), "Revenue grew 40% in 2023. The company was founded in 2010.", model.VerticalGeneral)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(claims) != 2 {
		t.Fatalf("Extract() returned %d claims, want 2", len(claims))
	}

	first := claims[0]
	if first.Text != "Revenue grew 40% in 2023" {
		t.Errorf("claim text = %q", first.Text)
	}
	if first.ClaimType != model.ClaimTypeNumeric {
		t.Errorf("claim type = %q, want numeric", first.ClaimType)
	}
	if first.TimeSensitivity != model.SensitivityMedium {
		t.Errorf("time sensitivity = %q, want medium", first.TimeSensitivity)
	}
	if !first.IsVerifiable {
		t.Error("extracted claim should start verifiable")
	}
	if !strings.HasPrefix(first.ID, "clm_") || len(first.ID) != 12 {
		t.Errorf("claim ID = %q, want clm_ prefix with 8 hex chars", first.ID)
	}
	if claims[1].ID == first.ID {
		t.Error("claim IDs must be unique")
	}
}

func TestExtractorExtractUnknownEnumsDefault(t *testing.T) {
	completer := &fakeCompleter{responses: []string{`{
		"claims": [
			{"text": "Something happened", "claim_type": "mystery", "topic": "weird", "time_sensitivity": "urgent"}
		]
	}`}}

	ext := NewExtractor(completer, "test-model", testPipelineConfig(), testLogger())
	claims, err := ext.Extract(context.Background(), "Something happened.", model.VerticalGeneral)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if claims[0].ClaimType != model.ClaimTypeGeneral {
		t.Errorf("unknown claim type = %q, want general", claims[0].ClaimType)
	}
	if claims[0].TimeSensitivity != model.SensitivityLow {
		t.Errorf("unknown sensitivity = %q, want low", claims[0].TimeSensitivity)
	}
}

func TestExtractorExtractMalformedJSON(t *testing.T) {
	completer := &fakeCompleter{responses: []string{"I could not find any claims, sorry!"}}

	ext := NewExtractor(completer, "test-model", testPipelineConfig(), testLogger())
	if _, err := ext.Extract(context.Background(), "some text", model.VerticalGeneral); err == nil {
		t.Fatal("Extract() should fail on non-JSON response")
	}
}

func TestExtractorExtractProviderError(t *testing.T) {
	completer := &fakeCompleter{failWith: errors.New("rate limited")}

	ext := NewExtractor(completer, "test-model", testPipelineConfig(), testLogger())
	if _, err := ext.Extract(context.Background(), "some text", model.VerticalGeneral); err == nil {
		t.Fatal("Extract() should surface provider errors")
	}
}

func TestExtractorExtractCapsClaims(t *testing.T) {
	completer := &fakeCompleter{responses: []string{`{
		"claims": [
			{"text": "one"}, {"text": "two"}, {"text": "three"}, {"text": "  "}
		]
	}`}}

	cfg := testPipelineConfig()
	cfg.MaxClaims = 2
	ext := NewExtractor(completer, "test-model", cfg, testLogger())
	claims, err := ext.Extract(context.Background(), "text", model.VerticalGeneral)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(claims) != 2 {
		t.Errorf("Extract() returned %d claims, want 2 (capped)", len(claims))
	}
}
