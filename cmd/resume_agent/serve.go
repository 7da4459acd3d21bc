package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-extractor/internal/logger"
	"github.com/jonathan/resume-extractor/internal/server"
)

var (
	servePort       int
	serveNoDB       bool
	serveSessionTTL time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes parsing, stored resumes and correction sessions.
Stored resumes need DATABASE_URL; without it the server runs parse and session
endpoints only. Set RESUME_API_KEY to require an X-API-Key header.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 8080)")
	serveCmd.Flags().BoolVar(&serveNoDB, "no-db", false, "Run without a database even when DATABASE_URL is set")
	serveCmd.Flags().DurationVar(&serveSessionTTL, "session-ttl", server.DefaultSessionTTL, "Idle time before a correction session expires")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Port = servePort
	}

	ctx := commandContext(cmd)

	var store server.Store
	if cfg.DatabaseURL != "" && !serveNoDB {
		database, err := openStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		store = database
	} else {
		logger.Warn().Msg("no database configured; stored resume endpoints are disabled")
	}

	srv := server.New(server.Config{
		Port:       cfg.Port,
		APIKey:     os.Getenv("RESUME_API_KEY"),
		SessionTTL: serveSessionTTL,
	}, newParser(cfg), store, logger.Logger)

	return srv.Start(ctx)
}
