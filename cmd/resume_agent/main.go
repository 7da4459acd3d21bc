// Package main provides the resume_agent CLI for extracting structured records from resumes.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-extractor/internal/config"
	"github.com/jonathan/resume-extractor/internal/db"
	"github.com/jonathan/resume-extractor/internal/logger"
	"github.com/jonathan/resume-extractor/internal/parsing"
)

var (
	configPath string
	logLevel   string
	logFormat  string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "resume_agent",
	Short: "Resume extraction engine",
	Long: `resume_agent turns plain-text, Markdown and HTML resumes into structured records
with per-field confidence and warnings, lets you correct fields by path, and serves
the same operations over HTTP.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (json or pretty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print parsed records and reports")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadAppConfig reads the optional config file, applies environment
// overrides, fills defaults and finally applies the persistent flags.
// The process logger is initialized from the result.
func loadAppConfig() (config.Config, error) {
	fileCfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		fileCfg = loaded
	}
	if err := fileCfg.ApplyEnv(); err != nil {
		return config.Config{}, err
	}
	if err := fileCfg.Validate(); err != nil {
		return config.Config{}, err
	}

	cfg := fileCfg.MergeWithDefaults(config.Config{})
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}
	if verbose {
		cfg.Verbose = true
	}

	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	return cfg, nil
}

// newParser builds a parser from the extraction settings in cfg
func newParser(cfg config.Config) *parsing.Parser {
	return parsing.New(
		parsing.WithMaxHeaderLength(cfg.MaxHeaderLength),
		parsing.WithPhoneRegion(cfg.PhoneRegion),
		parsing.WithLogger(logger.Logger),
	)
}

// openStore connects to PostgreSQL and makes sure the schema exists
func openStore(ctx context.Context, databaseURL string) (*db.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required (set DATABASE_URL or database_url in the config file)")
	}
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// commandContext returns the command's context, or Background when the
// command was invoked without one
func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}
