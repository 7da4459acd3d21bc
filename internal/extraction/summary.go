package extraction

import (
	"strings"

	"github.com/jonathan/resume-extractor/internal/segment"
	"github.com/jonathan/resume-extractor/internal/types"
)

// ExtractSummary joins the section's lines into one paragraph. A second
// SUMMARY section is appended to the first.
func ExtractSummary(sec types.Section, rec types.ParsedResume) types.ParsedResume {
	var parts []string
	if rec.Summary != "" {
		parts = append(parts, rec.Summary)
	}
	for _, line := range sec.Lines {
		text, _ := segment.StripBullet(line)
		if text != "" {
			parts = append(parts, text)
		}
	}
	rec.Summary = collapse(strings.Join(parts, " "))
	if rec.Summary != "" {
		rec.Confidence.Set(types.SummaryField{}, types.ConfidenceHigh)
	} else {
		rec.Confidence.Set(types.SummaryField{}, types.ConfidenceLow)
	}
	return rec
}
