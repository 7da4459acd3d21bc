// Package normalize cleans extracted resume records, re-validates field
// formats and computes the record-level warning list and completeness score.
package normalize

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-extractor/internal/types"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalizer runs the post-extraction pass. It holds no per-record state and
// is safe for concurrent use.
type Normalizer struct {
	validator *Validator
}

// Option configures a Normalizer
type Option func(*Normalizer)

// WithPhoneRegion sets the region used to interpret national phone numbers
func WithPhoneRegion(region string) Option {
	return func(n *Normalizer) {
		n.validator = NewValidator(region)
	}
}

// New creates a Normalizer
func New(opts ...Option) *Normalizer {
	n := &Normalizer{validator: NewValidator(DefaultPhoneRegion)}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Validator returns the field validator used by the normalizer
func (n *Normalizer) Validator() *Validator {
	return n.validator
}

// Normalize returns a cleaned copy of rec. Whitespace is collapsed in every
// string, lists are de-duplicated, email, phone and dates are re-validated,
// and the record-level warnings for the given unparsed sections are added.
// Failed validation keeps the value, lowers its confidence to LOW and adds a
// MalformedField warning. rec is not modified.
func (n *Normalizer) Normalize(rec types.ParsedResume, unparsed []types.Section) types.ParsedResume {
	out := rec.Clone()
	CollapseWhitespace(&out)
	Dedup(&out)

	warnings := append([]types.Warning(nil), out.Warnings...)
	warnings = append(warnings, n.validateFields(&out)...)
	warnings = append(warnings, RecordWarnings(&out)...)
	warnings = append(warnings, UnparsedWarnings(unparsed)...)
	out.Warnings = Canonical(warnings)

	ensureContactConfidence(&out)
	out.EnsureCollections()
	return out
}

// validateFields re-checks contact and date formats, downgrading confidence on failure
func (n *Normalizer) validateFields(r *types.ParsedResume) []types.Warning {
	var ws []types.Warning
	flag := func(path types.FieldPath, msg string) {
		r.Confidence.Downgrade(path, types.ConfidenceLow)
		ws = append(ws, types.MalformedField(path, msg))
	}

	if r.Contact.Email != "" && !n.validator.Email(r.Contact.Email) {
		flag(types.ContactField{Name: types.ContactEmail}, InvalidEmailMessage(r.Contact.Email))
	}
	if r.Contact.Phone != "" && !n.validator.Phone(r.Contact.Phone) {
		flag(types.ContactField{Name: types.ContactPhone}, InvalidPhoneMessage(r.Contact.Phone, n.validator.Region()))
	}

	for i, e := range r.Education {
		if reversedDates(e.Dates) {
			flag(types.EducationField{Index: i, Name: types.EducationDates}, ReversedDatesMessage(e.Dates.Raw))
		}
	}
	for i, e := range r.Experience {
		if reversedDates(e.Dates) {
			flag(types.ExperienceField{Index: i, Name: types.ExperienceDates}, ReversedDatesMessage(e.Dates.Raw))
		}
	}
	return ws
}

func reversedDates(d *types.DateRange) bool {
	return d != nil && d.StartYear != nil && d.EndYear != nil && *d.EndYear < *d.StartYear
}

// ensureContactConfidence records LOW for contact fields that are absent
func ensureContactConfidence(r *types.ParsedResume) {
	fields := map[types.ContactFieldName]bool{
		types.ContactName:     r.Contact.Name != "",
		types.ContactEmail:    r.Contact.Email != "",
		types.ContactPhone:    r.Contact.Phone != "",
		types.ContactLocation: r.Contact.Location != "",
		types.ContactLinks:    len(r.Contact.Links) > 0,
	}
	for name, present := range fields {
		if !present {
			r.Confidence.Set(types.ContactField{Name: name}, types.ConfidenceLow)
		}
	}
}

// Text trims s and collapses internal whitespace runs to one space
func Text(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// List collapses whitespace in every item and drops items that become empty
func List(items []string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = Text(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// CollapseWhitespace applies Text to every string in the record
func CollapseWhitespace(r *types.ParsedResume) {
	c := &r.Contact
	c.Name, c.Email, c.Phone, c.Location = Text(c.Name), Text(c.Email), Text(c.Phone), Text(c.Location)
	c.Links = List(c.Links)
	r.Summary = Text(r.Summary)

	for i := range r.Education {
		e := &r.Education[i]
		e.Degree, e.Institution = Text(e.Degree), Text(e.Institution)
		if e.Dates != nil {
			e.Dates.Raw = Text(e.Dates.Raw)
		}
		if e.GPA != nil {
			e.GPA.Raw = Text(e.GPA.Raw)
		}
	}
	for i := range r.Experience {
		e := &r.Experience[i]
		e.Title, e.Organization, e.Location = Text(e.Title), Text(e.Organization), Text(e.Location)
		if e.Dates != nil {
			e.Dates.Raw = Text(e.Dates.Raw)
		}
		e.Achievements = List(e.Achievements)
		e.Technologies = List(e.Technologies)
	}
	for i := range r.Skills {
		g := &r.Skills[i]
		g.Category = Text(g.Category)
		g.Skills = List(g.Skills)
	}
	for i := range r.Projects {
		p := &r.Projects[i]
		p.Title, p.Date = Text(p.Title), Text(p.Date)
		p.Bullets = List(p.Bullets)
		p.Technologies = List(p.Technologies)
	}
	for i := range r.Certifications {
		c := &r.Certifications[i]
		c.Name, c.Issuer = Text(c.Name), Text(c.Issuer)
	}
	for i := range r.Languages {
		l := &r.Languages[i]
		l.Name, l.Proficiency = Text(l.Name), Text(l.Proficiency)
	}
}

// Dedup removes duplicate links (exact), skills and technologies
// (case-insensitive) and languages (by name, case-insensitive). Skill
// groups whose categories differ only in case are merged.
func Dedup(r *types.ParsedResume) {
	r.Contact.Links = Exact(r.Contact.Links)

	var groups []types.SkillGroup
	for _, g := range r.Skills {
		merged := false
		for i := range groups {
			if strings.EqualFold(groups[i].Category, g.Category) {
				groups[i].Skills = append(groups[i].Skills, g.Skills...)
				if g.Category != groups[i].Category {
					delete(r.Confidence, types.SkillGroupField{Category: g.Category}.String())
				}
				merged = true
				break
			}
		}
		if !merged {
			groups = append(groups, types.SkillGroup{Category: g.Category, Skills: append([]string(nil), g.Skills...)})
		}
	}
	for i := range groups {
		groups[i].Skills = Fold(groups[i].Skills)
	}
	if groups != nil {
		r.Skills = groups
	}

	for i := range r.Experience {
		r.Experience[i].Technologies = Fold(r.Experience[i].Technologies)
	}
	for i := range r.Projects {
		r.Projects[i].Technologies = Fold(r.Projects[i].Technologies)
	}

	seen := make(map[string]struct{}, len(r.Languages))
	langs := make([]types.Language, 0, len(r.Languages))
	for _, l := range r.Languages {
		key := strings.ToLower(l.Name)
		if _, ok := seen[key]; ok || l.Name == "" {
			continue
		}
		seen[key] = struct{}{}
		langs = append(langs, l)
	}
	r.Languages = langs
}

// Exact removes exact-string duplicates, keeping first occurrences
func Exact(items []string) []string {
	if items == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Fold removes case-insensitive duplicates, keeping the first casing
func Fold(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
