package llm

import (
	"testing"
)

func TestDecodeObject_PlainJSON(t *testing.T) {
	var out struct {
		Verdict    string  `json:"verdict"`
		Confidence float64 `json:"confidence"`
	}

	raw := `{"verdict": "supported", "confidence": 0.8}`
	if err := DecodeObject(raw, &out); err != nil {
		t.Fatalf("DecodeObject failed: %v", err)
	}
	if out.Verdict != "supported" || out.Confidence != 0.8 {
		t.Errorf("unexpected decode: %+v", out)
	}
}

func TestDecodeObject_SurroundingProse(t *testing.T) {
	var out struct {
		Verdict string `json:"verdict"`
	}

	raw := "Here is my analysis:\n{\"verdict\": \"mixed\"}\nLet me know if you need more."
	if err := DecodeObject(raw, &out); err != nil {
		t.Fatalf("DecodeObject failed: %v", err)
	}
	if out.Verdict != "mixed" {
		t.Errorf("expected mixed, got %q", out.Verdict)
	}
}

func TestDecodeObject_MarkdownFence(t *testing.T) {
	var out struct {
		Claims []struct {
			Text string `json:"text"`
		} `json:"claims"`
	}

	raw := "```json\n{\"claims\": [{\"text\": \"the sky is blue\"}]}\n```"
	if err := DecodeObject(raw, &out); err != nil {
		t.Fatalf("DecodeObject failed: %v", err)
	}
	if len(out.Claims) != 1 || out.Claims[0].Text != "the sky is blue" {
		t.Errorf("unexpected decode: %+v", out)
	}
}

func TestDecodeObject_NoJSON(t *testing.T) {
	var out map[string]any
	if err := DecodeObject("I cannot answer that.", &out); err == nil {
		t.Error("expected error for output with no JSON object")
	}
}

func TestDecodeArray(t *testing.T) {
	var queries []string
	raw := `Sure! ["query one", "query two"] — those should work.`
	if err := DecodeArray(raw, &queries); err != nil {
		t.Fatalf("DecodeArray failed: %v", err)
	}
	if len(queries) != 2 || queries[0] != "query one" {
		t.Errorf("unexpected decode: %v", queries)
	}
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		{"bare number", "0.8", 0.8, false},
		{"with prose", "I would rate this 0.7 out of 1.0", 0.7, false},
		{"trailing period", "0.4.", 0.4, false},
		{"above one clamps", "1.5", 1.0, false},
		{"negative clamps", "-0.2", 0.0, false},
		{"no number", "not relevant at all", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseScore(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseScore(%q) failed: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParseScore(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
