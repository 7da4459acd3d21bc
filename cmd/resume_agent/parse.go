package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-extractor/internal/db"
	"github.com/jonathan/resume-extractor/internal/ingestion"
	"github.com/jonathan/resume-extractor/internal/logger"
	"github.com/jonathan/resume-extractor/internal/observability"
	"github.com/jonathan/resume-extractor/internal/parsing"
	"github.com/jonathan/resume-extractor/internal/schemas"
	"github.com/jonathan/resume-extractor/internal/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse [files...]",
	Short: "Parse resumes into structured records",
	Long: `Parse one or more resume files (.txt, .md, .html) or URLs into ParsedResume JSON.
Inputs are parsed concurrently. Each record is written to <out>/<name>.json, or to
stdout when --out is not set.`,
	RunE: runParse,
}

var (
	parseURLs        []string
	parseOutDir      string
	parseConcurrency int
	parseStore       bool
	parseValidate    bool
	parseReport      bool
	parseUserAgent   string
	parseBrowser     bool
)

func init() {
	parseCmd.Flags().StringArrayVar(&parseURLs, "url", nil, "URL of an HTML or text resume (repeatable)")
	parseCmd.Flags().StringVarP(&parseOutDir, "out", "o", "", "Output directory for ParsedResume JSON files")
	parseCmd.Flags().IntVarP(&parseConcurrency, "concurrency", "c", 0, "Inputs parsed in parallel (default from config)")
	parseCmd.Flags().BoolVar(&parseStore, "store", false, "Save parsed records to the database")
	parseCmd.Flags().BoolVar(&parseValidate, "validate", false, "Validate each record against the ParsedResume schema")
	parseCmd.Flags().BoolVar(&parseReport, "report", false, "Print a parsing report for each record")
	parseCmd.Flags().StringVar(&parseUserAgent, "user-agent", ingestion.DefaultUserAgent, "User-Agent header for --url fetches")
	parseCmd.Flags().BoolVar(&parseBrowser, "browser", false, "Render --url pages with little text in headless Chrome")

	rootCmd.AddCommand(parseCmd)
}

// parseInput is one file path or URL to parse
type parseInput struct {
	Path string
	URL  string
}

func (in parseInput) source() string {
	if in.URL != "" {
		return in.URL
	}
	return in.Path
}

// parseResult holds the loaded document and the record parsed from it
type parseResult struct {
	Input    parseInput
	Document *ingestion.Document
	Record   types.ParsedResume
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	inputs := make([]parseInput, 0, len(args)+len(parseURLs))
	for _, path := range args {
		inputs = append(inputs, parseInput{Path: path})
	}
	for _, u := range parseURLs {
		inputs = append(inputs, parseInput{URL: u})
	}
	if len(inputs) == 0 {
		return fmt.Errorf("at least one file or --url must be provided")
	}

	concurrency := cfg.Concurrency
	if parseConcurrency > 0 {
		concurrency = parseConcurrency
	}

	ctx := logger.WithContext(commandContext(cmd))
	fetchOpts := ingestion.DefaultFetchOptions()
	fetchOpts.UserAgent = parseUserAgent
	fetchOpts.UseBrowser = parseBrowser

	results, err := parseInputs(ctx, newParser(cfg), inputs, concurrency, fetchOpts)
	if err != nil {
		return err
	}

	if parseValidate {
		for _, res := range results {
			if err := schemas.ValidateResume(&res.Record); err != nil {
				return fmt.Errorf("%s: %w", res.Input.source(), err)
			}
		}
	}

	if parseOutDir != "" {
		if err := writeResults(parseOutDir, results); err != nil {
			return err
		}
	} else if !cfg.Verbose && !parseReport {
		for _, res := range results {
			if err := writeRecord(os.Stdout, &res.Record); err != nil {
				return err
			}
		}
	}

	if parseStore {
		if err := storeResults(ctx, cfg.DatabaseURL, results); err != nil {
			return err
		}
	}

	if cfg.Verbose || parseReport {
		printResults(os.Stdout, results, cfg.Verbose, parseReport)
	}
	return nil
}

// parseInputs loads and parses every input with at most concurrency in flight.
// Results keep the order of inputs. The first failure cancels the rest.
func parseInputs(ctx context.Context, parser *parsing.Parser, inputs []parseInput, concurrency int, fetchOpts *ingestion.FetchOptions) ([]parseResult, error) {
	results := make([]parseResult, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, in := range inputs {
		g.Go(func() error {
			doc, err := loadInput(ctx, in, fetchOpts)
			if err != nil {
				return err
			}
			raw, err := doc.RawDocument()
			if err != nil {
				return fmt.Errorf("%s: %w", in.source(), err)
			}
			rec, err := parser.Parse(raw)
			if err != nil {
				return fmt.Errorf("%s: %w", in.source(), err)
			}
			logger.Debug().
				Str("source", in.source()).
				Int("warnings", len(rec.Warnings)).
				Float64("score", rec.Metadata.Score).
				Msg("parsed resume")
			results[i] = parseResult{Input: in, Document: doc, Record: rec}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func loadInput(ctx context.Context, in parseInput, fetchOpts *ingestion.FetchOptions) (*ingestion.Document, error) {
	if in.URL != "" {
		return ingestion.FetchURL(ctx, in.URL, fetchOpts)
	}
	return ingestion.LoadFile(in.Path)
}

// outputName derives the JSON file name for an input. File inputs keep their
// base name; URLs use their host and last path segment.
func outputName(in parseInput) string {
	if in.URL == "" {
		base := filepath.Base(in.Path)
		return strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
	}

	name := in.URL
	if u, err := url.Parse(in.URL); err == nil && u.Host != "" {
		name = u.Hostname()
		if seg := strings.Trim(u.Path, "/"); seg != "" {
			seg = seg[strings.LastIndex(seg, "/")+1:]
			name += "-" + strings.TrimSuffix(seg, filepath.Ext(seg))
		}
	}
	return sanitizeName(name) + ".json"
}

func sanitizeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, s)
}

// writeResults writes one JSON file per result into dir. Name clashes get a
// numeric suffix so no result overwrites another.
func writeResults(dir string, results []parseResult) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	used := make(map[string]int, len(results))
	for _, res := range results {
		name := outputName(res.Input)
		used[name]++
		if n := used[name]; n > 1 {
			name = fmt.Sprintf("%s-%d.json", strings.TrimSuffix(name, ".json"), n)
		}

		data, err := types.MarshalResume(&res.Record)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", res.Input.source(), err)
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stderr, "Wrote %s (%d warnings)\n", path, len(res.Record.Warnings))
	}
	return nil
}

func writeRecord(w io.Writer, rec *types.ParsedResume) error {
	data, err := types.MarshalResume(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// resumeStore is the part of the database parse writes to
type resumeStore interface {
	FindByContentHash(ctx context.Context, hash string) (*db.StoredResume, error)
	SaveParsedResume(ctx context.Context, input *db.SaveResumeInput) (*db.StoredResume, error)
}

var _ resumeStore = (*db.DB)(nil)

func storeResults(ctx context.Context, databaseURL string, results []parseResult) error {
	database, err := openStore(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()
	return saveResults(ctx, database, os.Stderr, results)
}

// saveResults stores each result unless a record parsed from the same
// cleaned text is already stored
func saveResults(ctx context.Context, store resumeStore, w io.Writer, results []parseResult) error {
	for _, res := range results {
		existing, err := store.FindByContentHash(ctx, db.HashSource(res.Document.Text))
		if err != nil {
			return fmt.Errorf("%s: %w", res.Input.source(), err)
		}
		if existing != nil {
			_, _ = fmt.Fprintf(w, "Skipped %s: already stored as %s\n", res.Input.source(), existing.ID)
			continue
		}

		stored, err := store.SaveParsedResume(ctx, &db.SaveResumeInput{
			SourceName: res.Input.source(),
			SourceText: res.Document.Text,
			Record:     res.Record,
		})
		if err != nil {
			return fmt.Errorf("%s: %w", res.Input.source(), err)
		}
		_, _ = fmt.Fprintf(w, "Stored %s as %s\n", res.Input.source(), stored.ID)
	}
	return nil
}

func printResults(w io.Writer, results []parseResult, details, report bool) {
	printer := observability.NewPrinter(w)
	for _, res := range results {
		if details {
			printer.PrintParsedResume(&res.Record)
			printer.PrintWarnings(res.Record.Warnings)
		}
		if report {
			printer.PrintReport(observability.BuildReport(&res.Record))
		}
	}
}
