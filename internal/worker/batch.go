package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/trustlens/internal/model"
)

// URLVerifier defines the interface for verifying a single URL
type URLVerifier interface {
	VerifyURL(ctx context.Context, url string, vertical model.Vertical, language string) (*model.Verification, error)
}

// VerifyJob represents one URL verification job. It carries the batch
// context so the caller's timeout governs each verification.
type VerifyJob struct {
	ctx      context.Context
	URL      string
	Vertical model.Vertical
	Language string
	Verifier URLVerifier
}

// Execute runs the verification for the job's URL
func (j *VerifyJob) Execute(_ context.Context) Result {
	v, err := j.Verifier.VerifyURL(j.ctx, j.URL, j.Vertical, j.Language)
	return &VerifyResult{URL: j.URL, Verification: v, Error: err}
}

// VerifyResult represents the outcome of one URL verification
type VerifyResult struct {
	URL          string
	Verification *model.Verification
	Error        error
}

// GetError returns the error from the verification result
func (r *VerifyResult) GetError() error {
	return r.Error
}

// BatchProcessor verifies multiple URLs concurrently
type BatchProcessor struct {
	verifier    URLVerifier
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(verifier URLVerifier, concurrency int) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = 3
	}
	return &BatchProcessor{verifier: verifier, concurrency: concurrency}
}

// ProcessURLs verifies the given URLs concurrently
func (b *BatchProcessor) ProcessURLs(ctx context.Context, urls []string, vertical model.Vertical, language string) []*VerifyResult {
	if len(urls) == 0 {
		return []*VerifyResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, url := range urls {
		pool.Submit(&VerifyJob{
			ctx:      ctx,
			URL:      url,
			Vertical: vertical,
			Language: language,
			Verifier: b.verifier,
		})
	}

	results := pool.Wait()

	verifyResults := make([]*VerifyResult, len(results))
	for i, result := range results {
		verifyResults[i] = result.(*VerifyResult)
	}
	return verifyResults
}

// ProcessFile reads URLs from a file and verifies them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string, vertical model.Vertical, language string) ([]*VerifyResult, error) {
	urls, err := ReadURLsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read URLs: %w", err)
	}
	return b.ProcessURLs(ctx, urls, vertical, language), nil
}

// ReadURLsFromFile reads URLs from a file (one per line). Blank lines
// and #-comments are skipped; duplicates keep their first position.
func ReadURLsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return urls, nil
}
