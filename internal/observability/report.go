package observability

import (
	"fmt"

	"github.com/jonathan/resume-extractor/internal/types"
)

// lowScoreThreshold is the completeness score below which the report
// suggests checking the document layout
const lowScoreThreshold = 50

// Report summarizes what a parse found and what a reviewer should check
type Report struct {
	Score           float64        `json:"score"`
	SectionsFound   []string       `json:"sections_found"`
	MissingSections []string       `json:"missing_sections"`
	DataQuality     []QualityCheck `json:"data_quality"`
	LowConfidence   []string       `json:"low_confidence"`
	Recommendations []string       `json:"recommendations"`
}

// QualityCheck is the status of one key field
type QualityCheck struct {
	Field  string `json:"field"`
	Status string `json:"status"`
}

// reportSections lists the content sections checked for presence, in report order
var reportSections = []struct {
	name    string
	present func(r *types.ParsedResume) bool
}{
	{"summary", func(r *types.ParsedResume) bool { return r.Summary != "" }},
	{"experience", func(r *types.ParsedResume) bool { return len(r.Experience) > 0 }},
	{"education", func(r *types.ParsedResume) bool { return len(r.Education) > 0 }},
	{"skills", func(r *types.ParsedResume) bool { return len(r.Skills) > 0 }},
	{"projects", func(r *types.ParsedResume) bool { return len(r.Projects) > 0 }},
	{"certifications", func(r *types.ParsedResume) bool { return len(r.Certifications) > 0 }},
	{"languages", func(r *types.ParsedResume) bool { return len(r.Languages) > 0 }},
}

// BuildReport derives a parsing report from a record
func BuildReport(rec *types.ParsedResume) *Report {
	report := &Report{
		Score:           rec.Metadata.Score,
		SectionsFound:   []string{},
		MissingSections: []string{},
		LowConfidence:   []string{},
		Recommendations: []string{},
	}

	for _, s := range reportSections {
		if s.present(rec) {
			report.SectionsFound = append(report.SectionsFound, s.name)
		} else {
			report.MissingSections = append(report.MissingSections, s.name)
		}
	}

	report.DataQuality = []QualityCheck{
		{Field: "name", Status: found(rec.Contact.Name != "")},
		{Field: "email", Status: found(rec.Contact.Email != "")},
		{Field: "phone", Status: found(rec.Contact.Phone != "")},
		{Field: "experience", Status: counted(len(rec.Experience), "entry", "entries")},
		{Field: "education", Status: counted(len(rec.Education), "entry", "entries")},
		{Field: "skills", Status: counted(len(rec.AllSkills()), "skill", "skills")},
	}

	for _, key := range rec.Confidence.Keys() {
		if rec.Confidence[key] == types.ConfidenceLow {
			report.LowConfidence = append(report.LowConfidence, key)
		}
	}

	for _, w := range rec.Warnings {
		report.Recommendations = append(report.Recommendations, recommendation(w))
	}
	if rec.Metadata.Score < lowScoreThreshold {
		report.Recommendations = append(report.Recommendations,
			"Completeness is low: check that section headers sit on their own lines")
	}
	return report
}

func recommendation(w types.Warning) string {
	switch w.Code {
	case types.WarningMissingName:
		return "Name not found: put the full name on the first line"
	case types.WarningMissingEmail:
		return "Email not found: add an email address near the top"
	case types.WarningMissingContactInfo:
		return "No contact details found: add an email or phone number"
	case types.WarningNoExperienceFound:
		return "Work experience not found: add an Experience section"
	case types.WarningNoEducationFound:
		return "Education not found: add an Education section"
	case types.WarningUnparsedSection:
		return fmt.Sprintf("Unparsed content (%s): use a standard header or correct it by hand", w.Message)
	default:
		return fmt.Sprintf("Review %s: %s", w.Field, w.Message)
	}
}

func found(ok bool) string {
	if ok {
		return "found"
	}
	return "missing"
}

func counted(n int, singular, plural string) string {
	switch n {
	case 0:
		return "missing"
	case 1:
		return "1 " + singular
	default:
		return fmt.Sprintf("%d %s", n, plural)
	}
}
