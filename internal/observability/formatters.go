// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-extractor/internal/extraction"
	"github.com/jonathan/resume-extractor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// PrintParsedResume outputs a human-readable summary of a parsed resume.
func (p *Printer) PrintParsedResume(rec *types.ParsedResume) {
	if rec == nil {
		return
	}

	var sb strings.Builder
	c := rec.Contact
	sb.WriteString(fmt.Sprintf("Name:     %s\n", orDash(c.Name)))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", orDash(c.Email)))
	sb.WriteString(fmt.Sprintf("Phone:    %s\n", orDash(c.Phone)))
	if c.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", c.Location))
	}
	for _, link := range c.Links {
		sb.WriteString(fmt.Sprintf("Link:     %s\n", link))
	}
	sb.WriteString(fmt.Sprintf("Score:    %.1f\n", rec.Metadata.Score))
	sb.WriteString("\n")

	if len(rec.Experience) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(rec.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := rec.Experience[i]
			line := e.Title
			if e.Organization != "" {
				line += " @ " + e.Organization
			}
			if e.Dates != nil {
				line += " (" + e.Dates.Raw + ")"
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", line))
		}
		writeMore(&sb, len(rec.Experience))
		sb.WriteString("\n")
	}

	if len(rec.Education) > 0 {
		sb.WriteString("Education:\n")
		count := min(len(rec.Education), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := rec.Education[i]
			line := e.Degree
			if e.Institution != "" {
				line += ", " + e.Institution
			}
			if e.GPA != nil {
				line += " GPA " + e.GPA.Raw
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", line))
		}
		writeMore(&sb, len(rec.Education))
		sb.WriteString("\n")
	}

	if len(rec.Skills) > 0 {
		sb.WriteString("Skills:\n")
		for _, g := range rec.Skills {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", g.Category, strings.Join(g.Skills, ", ")))
		}
		sb.WriteString("\n")
	}

	if len(rec.Projects) > 0 {
		sb.WriteString(fmt.Sprintf("Projects: %d\n", len(rec.Projects)))
	}
	if len(rec.Certifications) > 0 {
		sb.WriteString(fmt.Sprintf("Certifications: %d\n", len(rec.Certifications)))
	}
	if len(rec.Languages) > 0 {
		names := make([]string, len(rec.Languages))
		for i, l := range rec.Languages {
			names[i] = extraction.FormatLanguage(l)
		}
		sb.WriteString(fmt.Sprintf("Languages: %s\n", strings.Join(names, ", ")))
	}

	p.printBox("PARSED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintWarnings outputs the warnings attached to a record.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintWarnings(warnings []types.Warning) {
	if len(warnings) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO WARNINGS")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d warnings:\n\n", len(warnings)))

	for i, w := range warnings {
		label := string(w.Code)
		if w.Field != "" {
			label += " [" + w.Field + "]"
		}
		sb.WriteString(fmt.Sprintf("⚠ %s\n", label))
		sb.WriteString(fmt.Sprintf("  %s\n", w.Message))
		if i < len(warnings)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("WARNINGS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReport outputs a parsing report.
func (p *Printer) PrintReport(report *Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Completeness: %.1f / 100\n\n", report.Score))
	sb.WriteString(fmt.Sprintf("Found:   %s\n", joinOrDash(report.SectionsFound)))
	sb.WriteString(fmt.Sprintf("Missing: %s\n\n", joinOrDash(report.MissingSections)))

	sb.WriteString("Data quality:\n")
	for _, q := range report.DataQuality {
		sb.WriteString(fmt.Sprintf("  %-11s %s\n", q.Field, q.Status))
	}

	if len(report.LowConfidence) > 0 {
		sb.WriteString("\nLow confidence:\n")
		count := min(len(report.LowConfidence), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", report.LowConfidence[i]))
		}
		writeMore(&sb, len(report.LowConfidence))
	}

	if len(report.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		for _, r := range report.Recommendations {
			sb.WriteString(fmt.Sprintf("  → %s\n", r))
		}
	}

	p.printBox("PARSING REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

func writeMore(sb *strings.Builder, total int) {
	if total > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", total-maxItemsToShow))
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
