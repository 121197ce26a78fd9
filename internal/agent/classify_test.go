package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/ppiankov/trustlens/internal/model"
)

func TestClassifierFilter(t *testing.T) {
	completer := &fakeCompleter{responses: []string{`[
		{"claim_id": "clm_1", "is_verifiable": true, "reason": "specific number"},
		{"claim_id": "clm_2", "is_verifiable": false, "reason": "pure opinion"}
	]`}}

	claims := []model.Claim{
		{ID: "clm_1", Text: "Revenue grew 40%", IsVerifiable: true},
		{ID: "clm_2", Text: "Our product is the best", IsVerifiable: true},
	}

	c := NewClassifier(completer, "test-model", testLogger())
	filtered, err := c.Filter(context.Background(), claims)
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != "clm_1" {
		t.Fatalf("Filter() = %+v, want only clm_1", filtered)
	}
	if claims[1].IsVerifiable {
		t.Error("clm_2 should be marked not verifiable in place")
	}
}

func TestClassifierFilterEmpty(t *testing.T) {
	c := NewClassifier(&fakeCompleter{}, "test-model", testLogger())
	filtered, err := c.Filter(context.Background(), nil)
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if len(filtered) != 0 {
		t.Errorf("Filter() on no claims = %+v, want empty", filtered)
	}
}

func TestClassifierFilterProviderError(t *testing.T) {
	c := NewClassifier(&fakeCompleter{failWith: errors.New("timeout")}, "test-model", testLogger())
	_, err := c.Filter(context.Background(), []model.Claim{{ID: "clm_1", Text: "x"}})
	if err == nil {
		t.Fatal("Filter() should surface provider errors so the caller keeps all claims")
	}
}

func TestClassifierFilterUnlistedClaimDropped(t *testing.T) {
	completer := &fakeCompleter{responses: []string{`[
		{"claim_id": "clm_1", "is_verifiable": true}
	]`}}

	claims := []model.Claim{
		{ID: "clm_1", Text: "a", IsVerifiable: true},
		{ID: "clm_2", Text: "b", IsVerifiable: true},
	}

	c := NewClassifier(completer, "test-model", testLogger())
	filtered, err := c.Filter(context.Background(), claims)
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if len(filtered) != 1 {
		t.Errorf("claims missing from the classification should be dropped, got %d", len(filtered))
	}
}
