package types

import (
	"fmt"
	"strings"
)

// SectionLabel is the closed set of semantic section kinds
type SectionLabel string

const (
	SectionHeader         SectionLabel = "HEADER"
	SectionSummary        SectionLabel = "SUMMARY"
	SectionEducation      SectionLabel = "EDUCATION"
	SectionExperience     SectionLabel = "EXPERIENCE"
	SectionSkills         SectionLabel = "SKILLS"
	SectionProjects       SectionLabel = "PROJECTS"
	SectionCertifications SectionLabel = "CERTIFICATIONS"
	SectionLanguages      SectionLabel = "LANGUAGES"
	SectionUnknown        SectionLabel = "UNKNOWN"
)

// SectionPriority is the tie-break order used when a header line matches more than one label
var SectionPriority = []SectionLabel{
	SectionEducation,
	SectionExperience,
	SectionSkills,
	SectionProjects,
	SectionCertifications,
	SectionLanguages,
	SectionSummary,
	SectionHeader,
}

// AllSectionLabels lists every label in declaration order
var AllSectionLabels = []SectionLabel{
	SectionHeader,
	SectionSummary,
	SectionEducation,
	SectionExperience,
	SectionSkills,
	SectionProjects,
	SectionCertifications,
	SectionLanguages,
	SectionUnknown,
}

// IsValid reports whether l belongs to the closed label set
func (l SectionLabel) IsValid() bool {
	for _, known := range AllSectionLabels {
		if l == known {
			return true
		}
	}
	return false
}

// Section is a contiguous labeled block of source lines.
// Lines may contain empty strings; they separate entries in multi-entry sections.
type Section struct {
	Label     SectionLabel `json:"label"`
	Title     string       `json:"title,omitempty"`
	Lines     []string     `json:"lines"`
	StartLine int          `json:"start_line"`
}

// IsEmpty reports whether the section has no non-blank lines
func (s Section) IsEmpty() bool {
	for _, line := range s.Lines {
		if strings.TrimSpace(line) != "" {
			return false
		}
	}
	return true
}

// Text joins the section lines with newlines
func (s Section) Text() string {
	return strings.Join(s.Lines, "\n")
}

func (s Section) String() string {
	if s.Title != "" {
		return fmt.Sprintf("%s %q (%d lines)", s.Label, s.Title, len(s.Lines))
	}
	return fmt.Sprintf("%s (%d lines)", s.Label, len(s.Lines))
}
