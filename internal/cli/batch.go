package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/trustlens/internal/model"
	"github.com/ppiankov/trustlens/internal/worker"
)

var (
	batchConcurrency int
	batchOutputDir   string
	batchTimeout     time.Duration
	batchNoCache     bool
	batchVertical    string
	batchLanguage    string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Verify multiple URLs from a file in parallel",
	Long: `Batch reads URLs from a file (one per line, # comments allowed),
verifies them concurrently, and writes one result JSON per URL to the
output directory.

Example:
  trustlens batch urls.txt
  trustlens batch urls.txt --concurrency 5 --output-dir ./results
  trustlens batch urls.txt --timeout 30m --no-cache`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 3, "number of concurrent verifications")
	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", "./trustlens-results", "output directory for result JSON files")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 15*time.Minute, "total timeout for the whole batch")
	batchCmd.Flags().BoolVar(&batchNoCache, "no-cache", false, "disable the result cache (force fresh runs)")
	batchCmd.Flags().StringVar(&batchVertical, "vertical", "general", "content category hint applied to every URL")
	batchCmd.Flags().StringVar(&batchLanguage, "language", "en", "content language")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if batchNoCache {
		cfg.Cache.Enabled = false
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	svc, llmReady, err := buildService(cfg, logger)
	if err != nil {
		return err
	}
	if !llmReady {
		return fmt.Errorf("no LLM provider configured: set %s_API_KEY or configure llm in %s",
			providerKeyHint(cfg.LLM.Provider), cfgPathHint())
	}

	if err := os.MkdirAll(batchOutputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	processor := worker.NewBatchProcessor(svc, batchConcurrency)

	fmt.Fprintf(os.Stderr, "Verifying URLs from %s with %d workers\n", file, batchConcurrency)
	results, err := processor.ProcessFile(ctx, file, model.ParseVertical(batchVertical), batchLanguage)
	if err != nil {
		return err
	}

	failed := 0
	for i, res := range results {
		if res.Error != nil {
			failed++
			fmt.Printf("FAIL  %s: %v\n", res.URL, res.Error)
			continue
		}

		outPath := filepath.Join(batchOutputDir, resultFileName(i, res.URL))
		data, err := json.MarshalIndent(res.Verification, "", "  ")
		if err != nil {
			failed++
			fmt.Printf("FAIL  %s: encode result: %v\n", res.URL, err)
			continue
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			failed++
			fmt.Printf("FAIL  %s: write %s: %v\n", res.URL, outPath, err)
			continue
		}

		fmt.Printf("%3d   %s (%d claims) -> %s\n",
			res.Verification.PageScore, res.URL, len(res.Verification.Claims), outPath)
	}

	fmt.Printf("\n%d verified, %d failed\n", len(results)-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d URLs failed", failed, len(results))
	}
	return nil
}

// resultFileName derives a stable per-URL output name; the index keeps
// names unique when two URLs share a host.
func resultFileName(i int, rawURL string) string {
	host := "result"
	if parsed, err := url.Parse(rawURL); err == nil && parsed.Host != "" {
		host = parsed.Host
	}
	return fmt.Sprintf("%03d_%s.json", i, host)
}
