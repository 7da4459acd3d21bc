// Package logger configures the process-wide zerolog logger.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// Logger is the process-wide logger; replaced by Init
	Logger = log.Logger
)

// Config controls log level, output format and caller reporting
type Config struct {
	Level        string `json:"level" yaml:"level"`                 // debug, info, warn, error
	Format       string `json:"format" yaml:"format"`               // json or pretty
	TimeFormat   string `json:"time_format" yaml:"time_format"`     // defaults to RFC3339
	ReportCaller bool   `json:"report_caller" yaml:"report_caller"` // add file:line to each event
}

// Init builds a logger from config writing to stderr and installs it as
// both Logger and the zerolog global logger. Stdout is left to command output.
func Init(config Config) {
	Logger = New(config, os.Stderr)
	log.Logger = Logger
}

// New builds a logger from config writing to out. An unknown level falls back to info.
func New(config Config, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(config.Level)
	if err != nil || config.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.TimeFormat == "" {
		zerolog.TimeFieldFormat = time.RFC3339
	} else {
		zerolog.TimeFieldFormat = config.TimeFormat
	}

	if config.Format == "pretty" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: config.TimeFormat,
		}
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if config.ReportCaller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// Debug starts a debug-level event on Logger
func Debug() *zerolog.Event {
	return Logger.Debug()
}

// Info starts an info-level event on Logger
func Info() *zerolog.Event {
	return Logger.Info()
}

// Warn starts a warn-level event on Logger
func Warn() *zerolog.Event {
	return Logger.Warn()
}

// Error starts an error-level event on Logger
func Error() *zerolog.Event {
	return Logger.Error()
}

// Ctx returns the logger stored in ctx, or a disabled logger
func Ctx(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext returns a copy of ctx carrying Logger
func WithContext(ctx context.Context) context.Context {
	return Logger.WithContext(ctx)
}
