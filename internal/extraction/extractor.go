// Package extraction converts labeled resume sections into typed sub-records.
//
// Each section label maps to one pure Extractor in a fixed dispatch table.
// Extractors thread the record under construction through as a value and
// record a confidence level for every field they populate.
package extraction

import (
	"github.com/jonathan/resume-extractor/internal/types"
)

// Extractor converts one section into typed data and returns rec with that
// data appended. The returned record shares its confidence map with rec;
// callers must continue with the returned value.
type Extractor func(sec types.Section, rec types.ParsedResume) types.ParsedResume

var dispatch = map[types.SectionLabel]Extractor{
	types.SectionHeader:         ExtractContact,
	types.SectionSummary:        ExtractSummary,
	types.SectionEducation:      ExtractEducation,
	types.SectionExperience:     ExtractExperience,
	types.SectionSkills:         ExtractSkills,
	types.SectionProjects:       ExtractProjects,
	types.SectionCertifications: ExtractCertifications,
	types.SectionLanguages:      ExtractLanguages,
}

// For returns the extractor registered for a label. UNKNOWN has none.
func For(label types.SectionLabel) (Extractor, bool) {
	fn, ok := dispatch[label]
	return fn, ok
}

// NewRecord returns an empty record ready to be threaded through extractors
func NewRecord() types.ParsedResume {
	rec := types.ParsedResume{}
	rec.EnsureCollections()
	return rec
}

// Run applies the dispatch table to every section in order. When the
// document has no HEADER section, contact details are searched for in the
// UNKNOWN sections instead, at reduced confidence. Without a SKILLS section,
// known skill names are collected from the remaining text at LOW.
func Run(sections []types.Section) types.ParsedResume {
	rec := NewRecord()
	hasHeader, hasSkills := false, false
	for _, sec := range sections {
		switch sec.Label {
		case types.SectionHeader:
			hasHeader = true
		case types.SectionSkills:
			hasSkills = true
		}
		if fn, ok := For(sec.Label); ok {
			rec = fn(sec, rec)
		}
	}
	if !hasHeader {
		for _, sec := range sections {
			if sec.Label == types.SectionUnknown {
				rec = ExtractContactFallback(sec, rec)
			}
		}
	}
	if !hasSkills {
		rec = ExtractSkillKeywords(sections, rec)
	}
	return rec
}
