package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "http://example.com/foo"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	// Different domain gets its own bucket
	if err := limiter.Wait(ctx, "http://other.com"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_RateLimit(t *testing.T) {
	limiter := NewLimiter(20, 1) // 20 rps, burst 1
	ctx := context.Background()
	url := "http://example.com"

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := limiter.Wait(ctx, url); err != nil {
			t.Fatalf("wait %d failed: %v", i, err)
		}
	}
	// Two of the three calls must have waited ~50ms each
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Errorf("expected rate limiting to delay calls, elapsed %v", elapsed)
	}
}

func TestLimiter_ContextCancel(t *testing.T) {
	limiter := NewLimiter(0.1, 1) // One request per 10s
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	url := "http://example.com"
	_ = limiter.Wait(ctx, url) // Consumes the burst

	if err := limiter.Wait(ctx, url); err == nil {
		t.Error("expected context deadline error on second wait")
	}
}
