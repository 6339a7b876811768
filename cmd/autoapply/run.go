package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mwijayanto/autoapply/internal/browser"
	"github.com/mwijayanto/autoapply/internal/classify"
	"github.com/mwijayanto/autoapply/internal/config"
	"github.com/mwijayanto/autoapply/internal/cv"
	"github.com/mwijayanto/autoapply/internal/glints"
	"github.com/mwijayanto/autoapply/internal/llm"
	"github.com/mwijayanto/autoapply/internal/observability"
	"github.com/mwijayanto/autoapply/internal/pipeline"
	"github.com/mwijayanto/autoapply/internal/store"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run one application batch end-to-end",
	Long: `Opens the Glints listing for the configured keyword and takes every job card through extraction -> dedup check -> classification -> CV generation -> submission -> recording.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runBatchCmd,
}

var (
	runConfigPath  string
	runKeyword     string
	runMaxPostings int
	runDatabaseURL string
	runAPIKey      string
	runOutputDir   string
	runPageSize    string
	runHeadless    bool
	runUserDataDir string
	runVerbose     bool
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runKeyword, "keyword", "k", "", "Search keyword for the job listing")
	runCommand.Flags().IntVar(&runMaxPostings, "max-postings", 0, "Maximum job cards to process per run (0 = all)")
	runCommand.Flags().StringVarP(&runOutputDir, "output-dir", "o", "", "Directory for generated CV PDFs")
	runCommand.Flags().StringVar(&runPageSize, "page-size", "", "PDF page size: A4 or Letter")
	runCommand.Flags().BoolVar(&runHeadless, "headless", true, "Run the browser without a window")
	runCommand.Flags().StringVar(&runUserDataDir, "user-data-dir", "", "Chrome profile directory, keeps the Glints login session")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed posting information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for the application record store
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

// mergedConfig loads the config file and applies flag overrides and env
// fallbacks. Only flags explicitly set on the command line override.
func mergedConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(runConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("keyword") {
		cfg.Keyword = runKeyword
	}
	if cmd.Flags().Changed("max-postings") {
		cfg.MaxPostings = runMaxPostings
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir = runOutputDir
	}
	if cmd.Flags().Changed("page-size") {
		cfg.PageSize = runPageSize
	}
	if cmd.Flags().Changed("headless") {
		cfg.Headless = runHeadless
	}
	if cmd.Flags().Changed("user-data-dir") {
		cfg.UserDataDir = runUserDataDir
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runBatchCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := mergedConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Keyword == "" {
		return fmt.Errorf("a search keyword is required (--keyword or config file)")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("a database URL is required (--db-url, config file, or DATABASE_URL)")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("a Gemini API key is required (--api-key, config file, or GEMINI_API_KEY)")
	}

	// The record store is the dedup authority. Without it no submission
	// may happen, so a connection failure is fatal up front.
	st, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer st.Close()
	if err := st.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	generator, err := cv.NewGenerator(client, cfg.OutputDir, cfg.PageSize)
	if err != nil {
		return fmt.Errorf("failed to set up CV generator: %w", err)
	}

	session, err := browser.NewSession(ctx, browser.Options{
		Headless:    cfg.Headless,
		UserDataDir: cfg.UserDataDir,
	})
	if err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer session.Close()

	runner := pipeline.New(pipeline.Config{
		Store:       st,
		Classifier:  classify.New(client),
		Generator:   generator,
		Browser:     pipeline.NewSessionBrowser(session),
		Provider:    glints.NewProvider(cfg.Keyword),
		Printer:     observability.NewPrinter(os.Stdout),
		MaxPostings: cfg.MaxPostings,
		Verbose:     cfg.Verbose,
	})

	summary, err := runner.Run(ctx)
	if err != nil {
		if summary != nil && summary.Total > 0 {
			fmt.Printf("Batch aborted after %d postings (%d submitted)\n", summary.Total, summary.Submitted)
		}
		return err
	}
	return nil
}
