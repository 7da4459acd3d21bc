// Package types provides type definitions for structured data used throughout the resume-extractor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"strings"
	"time"
)

// UncategorizedSkills is the category used for skill lines without a "Category:" prefix
const UncategorizedSkills = "Uncategorized"

// ParsedResume is the structured record produced by the extraction pipeline.
// Treat a ParsedResume as immutable once built: corrections go through a
// correction session which emits a new record. Use Clone before handing a
// record to code that may modify it.
type ParsedResume struct {
	Contact        ContactInfo          `json:"contact"`
	Summary        string               `json:"summary,omitempty"`
	Education      []EducationEntry     `json:"education"`
	Experience     []ExperienceEntry    `json:"experience"`
	Skills         []SkillGroup         `json:"skills"`
	Projects       []ProjectEntry       `json:"projects"`
	Certifications []CertificationEntry `json:"certifications"`
	Languages      []Language           `json:"languages"`
	Confidence     ConfidenceMap        `json:"confidence"`
	Warnings       []Warning            `json:"warnings"`
	Metadata       Metadata             `json:"metadata"`
}

// ContactInfo holds the candidate's identifying and contact details.
// Empty strings mean the field could not be located.
type ContactInfo struct {
	Name     string   `json:"name"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Location string   `json:"location,omitempty"`
	Links    []string `json:"links,omitempty"`
}

// DateRange is a date span as written in the source, plus the years that could be parsed from it
type DateRange struct {
	Raw       string `json:"raw"`
	StartYear *int   `json:"start_year,omitempty"`
	EndYear   *int   `json:"end_year,omitempty"`
	Current   bool   `json:"current,omitempty"` // end is "Present", "Current" or "Now"
}

// GPA is a grade point average written as "value/scale".
// Raw is always set; Value and Scale are zero when the GPA was malformed.
type GPA struct {
	Raw   string  `json:"raw"`
	Value float64 `json:"value,omitempty"`
	Scale float64 `json:"scale,omitempty"`
}

// EducationEntry represents one degree or program
type EducationEntry struct {
	Degree      string     `json:"degree"`
	Institution string     `json:"institution,omitempty"`
	Dates       *DateRange `json:"dates,omitempty"`
	GPA         *GPA       `json:"gpa,omitempty"`
}

// ExperienceEntry represents one position held
type ExperienceEntry struct {
	Title        string     `json:"title"`
	Organization string     `json:"organization,omitempty"`
	Location     string     `json:"location,omitempty"`
	Dates        *DateRange `json:"dates,omitempty"`
	Achievements []string   `json:"achievements"`
	Technologies []string   `json:"technologies"`
}

// ProjectEntry represents one project
type ProjectEntry struct {
	Title        string   `json:"title"`
	Date         string   `json:"date,omitempty"`
	Bullets      []string `json:"bullets"`
	Technologies []string `json:"technologies"`
}

// CertificationEntry represents one certification, license or award
type CertificationEntry struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Year   *int   `json:"year,omitempty"`
}

// SkillGroup is one category of skills. Categories are unique within a record.
type SkillGroup struct {
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
}

// Language is a spoken language with an optional proficiency level captured verbatim
type Language struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency,omitempty"`
}

// Metadata describes the parse run that produced a record
type Metadata struct {
	Format        string         `json:"format"`
	SectionsFound []SectionLabel `json:"sections_found"`
	Score         float64        `json:"score"`
	ParsedAt      time.Time      `json:"parsed_at"`
}

// FindSkillGroup returns the group with the given category (case-insensitive) and whether it exists
func (r *ParsedResume) FindSkillGroup(category string) (SkillGroup, bool) {
	for _, g := range r.Skills {
		if strings.EqualFold(g.Category, category) {
			return g, true
		}
	}
	return SkillGroup{}, false
}

// AllSkills returns every skill token across all groups in order, without duplicates
func (r *ParsedResume) AllSkills() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, g := range r.Skills {
		for _, s := range g.Skills {
			key := strings.ToLower(s)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// Clone returns a deep copy of the record
func (r *ParsedResume) Clone() ParsedResume {
	out := *r
	out.Contact.Links = cloneStrings(r.Contact.Links)

	out.Education = make([]EducationEntry, len(r.Education))
	for i, e := range r.Education {
		e.Dates = e.Dates.Clone()
		if e.GPA != nil {
			gpa := *e.GPA
			e.GPA = &gpa
		}
		out.Education[i] = e
	}

	out.Experience = make([]ExperienceEntry, len(r.Experience))
	for i, e := range r.Experience {
		e.Dates = e.Dates.Clone()
		e.Achievements = cloneStrings(e.Achievements)
		e.Technologies = cloneStrings(e.Technologies)
		out.Experience[i] = e
	}

	out.Skills = make([]SkillGroup, len(r.Skills))
	for i, g := range r.Skills {
		out.Skills[i] = SkillGroup{Category: g.Category, Skills: cloneStrings(g.Skills)}
	}

	out.Projects = make([]ProjectEntry, len(r.Projects))
	for i, p := range r.Projects {
		p.Bullets = cloneStrings(p.Bullets)
		p.Technologies = cloneStrings(p.Technologies)
		out.Projects[i] = p
	}

	out.Certifications = make([]CertificationEntry, len(r.Certifications))
	for i, c := range r.Certifications {
		c.Year = cloneInt(c.Year)
		out.Certifications[i] = c
	}

	out.Languages = append([]Language(nil), r.Languages...)
	out.Confidence = r.Confidence.Clone()
	out.Warnings = append([]Warning(nil), r.Warnings...)
	out.Metadata.SectionsFound = append([]SectionLabel(nil), r.Metadata.SectionsFound...)
	out.EnsureCollections()
	return out
}

// Clone returns a deep copy of the date range; nil stays nil
func (d *DateRange) Clone() *DateRange {
	if d == nil {
		return nil
	}
	out := *d
	out.StartYear = cloneInt(d.StartYear)
	out.EndYear = cloneInt(d.EndYear)
	return &out
}

// MarshalResume serializes a record to indented JSON
func MarshalResume(r *ParsedResume) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// UnmarshalResume decodes a record and restores the empty-slice invariants
// so that a round-tripped record compares equal to the original.
func UnmarshalResume(data []byte) (*ParsedResume, error) {
	var r ParsedResume
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	r.EnsureCollections()
	return &r, nil
}

// EnsureCollections replaces nil slices and maps with empty ones
func (r *ParsedResume) EnsureCollections() {
	if r.Education == nil {
		r.Education = []EducationEntry{}
	}
	if r.Experience == nil {
		r.Experience = []ExperienceEntry{}
	}
	for i := range r.Experience {
		if r.Experience[i].Achievements == nil {
			r.Experience[i].Achievements = []string{}
		}
		if r.Experience[i].Technologies == nil {
			r.Experience[i].Technologies = []string{}
		}
	}
	if r.Skills == nil {
		r.Skills = []SkillGroup{}
	}
	for i := range r.Skills {
		if r.Skills[i].Skills == nil {
			r.Skills[i].Skills = []string{}
		}
	}
	if r.Projects == nil {
		r.Projects = []ProjectEntry{}
	}
	for i := range r.Projects {
		if r.Projects[i].Bullets == nil {
			r.Projects[i].Bullets = []string{}
		}
		if r.Projects[i].Technologies == nil {
			r.Projects[i].Technologies = []string{}
		}
	}
	if r.Certifications == nil {
		r.Certifications = []CertificationEntry{}
	}
	if r.Languages == nil {
		r.Languages = []Language{}
	}
	if r.Confidence == nil {
		r.Confidence = ConfidenceMap{}
	}
	if r.Warnings == nil {
		r.Warnings = []Warning{}
	}
	if r.Metadata.SectionsFound == nil {
		r.Metadata.SectionsFound = []SectionLabel{}
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append(make([]string, 0, len(in)), in...)
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int {
	return &v
}
