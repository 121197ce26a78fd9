package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/trustlens/internal/model"
)

var (
	scanOutJSON  string
	scanTimeout  time.Duration
	scanNoCache  bool
	scanVertical string
	scanLanguage string
	llmProvider  string
	llmModel     string
	searchProv   string
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <url|file|->",
	Short: "Verify a web page or text and print its trust score",
	Long: `Scan extracts factual claims from the input, retrieves evidence for
each claim, and prints a per-claim verdict breakdown plus an aggregate
0-100 page trust score.

The argument is a URL, a text file path, or "-" for stdin.

Example:
  trustlens scan https://example.com/article
  trustlens scan article.txt --json result.json
  cat article.txt | trustlens scan - --vertical health`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&scanOutJSON, "json", "", "write the full result JSON to this path")
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 3*time.Minute, "overall verification timeout")
	scanCmd.Flags().BoolVar(&scanNoCache, "no-cache", false, "disable the result cache (force a fresh run)")
	scanCmd.Flags().StringVar(&scanVertical, "vertical", "general", "content category hint (tech, finance, health, ...)")
	scanCmd.Flags().StringVar(&scanLanguage, "language", "en", "content language")
	scanCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "override the LLM provider (groq, openai, ollama)")
	scanCmd.Flags().StringVar(&llmModel, "llm-model", "", "override the main LLM model")
	scanCmd.Flags().StringVar(&searchProv, "search-provider", "", "override the search provider (duckduckgo, serpapi, google)")
}

func runScan(cmd *cobra.Command, args []string) error {
	target := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if scanNoCache {
		cfg.Cache.Enabled = false
	}
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if searchProv != "" {
		cfg.Search.Provider = searchProv
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

	if verbose {
		fmt.Fprintf(os.Stderr, "Verifying: %s\n", target)
		fmt.Fprintf(os.Stderr, "Timeout:   %v\n", scanTimeout)
		fmt.Fprintf(os.Stderr, "Cache:     %v\n\n", cfg.Cache.Enabled)
	}

	vertical := model.ParseVertical(scanVertical)

	var v *model.Verification
	switch {
	case strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://"):
		v, err = svc.VerifyURL(ctx, target, vertical, scanLanguage)
	default:
		text, readErr := readText(target)
		if readErr != nil {
			return readErr
		}
		v, err = svc.VerifyText(ctx, text, "", vertical, scanLanguage)
	}
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	if scanOutJSON != "" {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		if err := os.WriteFile(scanOutJSON, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", scanOutJSON, err)
		}
	}

	printSummary(v)
	return nil
}

// readText loads the scan input from a file, or stdin when target is "-"
func readText(target string) (string, error) {
	if target == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(target)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", target, err)
	}
	return string(data), nil
}

func printSummary(v *model.Verification) {
	fmt.Printf("Page trust score: %d/100\n", v.PageScore)
	fmt.Printf("Claims verified:  %d (from %d sources)\n", len(v.Claims), v.Metadata.SourcesChecked)
	fmt.Println()
	fmt.Printf("  strongly supported  %d\n", v.Summary.StronglySupported)
	fmt.Printf("  supported           %d\n", v.Summary.Supported)
	fmt.Printf("  mixed               %d\n", v.Summary.Mixed)
	fmt.Printf("  weak                %d\n", v.Summary.Weak)
	fmt.Printf("  contradicted        %d\n", v.Summary.Contradicted)
	fmt.Printf("  outdated            %d\n", v.Summary.Outdated)
	fmt.Printf("  not verifiable      %d\n", v.Summary.NotVerifiable)
	if v.Metadata.Cached {
		fmt.Println("\n(served from cache)")
	}
	if len(v.Errors) > 0 {
		fmt.Println("\nDiagnostics:")
		for _, e := range v.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}
}

func providerKeyHint(provider string) string {
	switch provider {
	case "openai":
		return "OPENAI"
	default:
		return "GROQ"
	}
}

func cfgPathHint() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.trustlens/config.yaml"
	}
	return home + "/.trustlens/config.yaml"
}
