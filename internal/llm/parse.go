package llm

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Models asked for "JSON only" still wrap output in prose or markdown
// fences often enough that every structured stage parses through these
// helpers instead of trusting the raw text.

// DecodeObject locates the outermost {...} in raw model output and
// decodes it into v.
func DecodeObject(raw string, v any) error {
	return decodeBetween(raw, '{', '}', v)
}

// DecodeArray locates the outermost [...] in raw model output and
// decodes it into v.
func DecodeArray(raw string, v any) error {
	return decodeBetween(raw, '[', ']', v)
}

func decodeBetween(raw string, open, close byte, v any) error {
	text := stripFences(raw)

	start := strings.IndexByte(text, open)
	end := strings.LastIndexByte(text, close)
	if start < 0 || end <= start {
		return fmt.Errorf("no %c...%c found in completion output", open, close)
	}

	if err := json.Unmarshal([]byte(text[start:end+1]), v); err != nil {
		return fmt.Errorf("decode completion output: %w", err)
	}
	return nil
}

// ParseScore parses a bare 0.0-1.0 number from model output and clamps
// it into [0,1]. Tolerates surrounding prose by taking the first token
// that parses as a float.
func ParseScore(raw string) (float64, error) {
	text := strings.TrimSpace(stripFences(raw))

	for _, field := range strings.Fields(text) {
		field = strings.Trim(field, ".,;:()")
		score, err := strconv.ParseFloat(field, 64)
		if err != nil {
			continue
		}
		return Clamp01(score), nil
	}
	return 0, fmt.Errorf("no number found in completion output: %q", text)
}

// Clamp01 clamps v into [0,1]
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// stripFences removes a surrounding markdown code fence if present
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	lines := strings.Split(text, "\n")
	endIdx := len(lines) - 1
	for i := len(lines) - 1; i > 0; i-- {
		if strings.TrimSpace(lines[i]) == "```" {
			endIdx = i
			break
		}
	}
	return strings.Join(lines[1:endIdx], "\n")
}
