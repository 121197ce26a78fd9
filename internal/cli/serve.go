package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/trustlens/internal/server"
)

var (
	serveHost string
	servePort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the verification HTTP API",
	Long: `Serve starts the TrustLens HTTP API.

The server starts even without a configured LLM provider; verification
endpoints then answer 503 until a key is supplied. Health and lookup
endpoints always work.

Example:
  trustlens serve
  trustlens serve --port 9090`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "bind address (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
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
		fmt.Println("Warning: no LLM provider configured, verification endpoints will answer 503")
	}

	srv := server.New(svc, llmReady, logger)
	return srv.Run(cfg.Server)
}
