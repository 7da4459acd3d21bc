package correction

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/resume-extractor/internal/extraction"
	"github.com/jonathan/resume-extractor/internal/normalize"
	"github.com/jonathan/resume-extractor/internal/types"
)

// scalar binds one single-valued field of the working record. store writes
// the value and returns its new confidence plus a MalformedField message
// ("" when the value is valid).
type scalar struct {
	load  func() string
	store func(v string) (types.Confidence, string, error)
}

// list binds one list-valued field of the working record. store returns the
// path the confidence is recorded under, which for skills carries the
// group's own casing.
type list struct {
	load  func() []string
	store func(vs []string) types.FieldPath
}

func (s *Session) scalar(path types.FieldPath) (scalar, error) {
	if path == nil {
		return scalar{}, ErrUnknownField
	}
	if path.IsList() {
		return scalar{}, &FieldError{Path: path.String(), Cause: ErrNotScalar}
	}
	r := &s.working

	switch p := path.(type) {
	case types.ContactField:
		switch p.Name {
		case types.ContactName:
			return s.text(&r.Contact.Name), nil
		case types.ContactLocation:
			return s.text(&r.Contact.Location), nil
		case types.ContactEmail:
			return s.checked(&r.Contact.Email, s.validator.Email, normalize.InvalidEmailMessage), nil
		case types.ContactPhone:
			return s.checked(&r.Contact.Phone, s.validator.Phone, func(v string) string {
				return normalize.InvalidPhoneMessage(v, s.validator.Region())
			}), nil
		}

	case types.SummaryField:
		return s.text(&r.Summary), nil

	case types.EducationField:
		if p.Index < 0 || p.Index >= len(r.Education) {
			return scalar{}, &FieldError{Path: path.String(), Cause: ErrIndexOutOfRange}
		}
		e := &r.Education[p.Index]
		switch p.Name {
		case types.EducationDegree:
			return s.text(&e.Degree), nil
		case types.EducationInstitution:
			return s.text(&e.Institution), nil
		case types.EducationDates:
			return s.dates(&e.Dates), nil
		case types.EducationGPA:
			return s.gpa(&e.GPA), nil
		}

	case types.ExperienceField:
		if p.Index < 0 || p.Index >= len(r.Experience) {
			return scalar{}, &FieldError{Path: path.String(), Cause: ErrIndexOutOfRange}
		}
		e := &r.Experience[p.Index]
		switch p.Name {
		case types.ExperienceTitle:
			return s.text(&e.Title), nil
		case types.ExperienceOrganization:
			return s.text(&e.Organization), nil
		case types.ExperienceLocation:
			return s.text(&e.Location), nil
		case types.ExperienceDates:
			return s.dates(&e.Dates), nil
		}

	case types.ProjectField:
		if p.Index < 0 || p.Index >= len(r.Projects) {
			return scalar{}, &FieldError{Path: path.String(), Cause: ErrIndexOutOfRange}
		}
		e := &r.Projects[p.Index]
		switch p.Name {
		case types.ProjectTitle:
			return s.text(&e.Title), nil
		case types.ProjectDate:
			return s.projectDate(&e.Date), nil
		}

	case types.CertificationField:
		if p.Index < 0 || p.Index >= len(r.Certifications) {
			return scalar{}, &FieldError{Path: path.String(), Cause: ErrIndexOutOfRange}
		}
		e := &r.Certifications[p.Index]
		switch p.Name {
		case types.CertificationName:
			return s.text(&e.Name), nil
		case types.CertificationIssuer:
			return s.text(&e.Issuer), nil
		case types.CertificationYear:
			return s.year(&e.Year), nil
		}
	}
	return scalar{}, &FieldError{Path: path.String(), Cause: ErrUnknownField}
}

func (s *Session) list(path types.FieldPath) (list, error) {
	if path == nil {
		return list{}, ErrUnknownField
	}
	if !path.IsList() {
		return list{}, &FieldError{Path: path.String(), Cause: ErrNotList}
	}
	r := &s.working

	switch p := path.(type) {
	case types.ContactField:
		if p.Name == types.ContactLinks {
			return list{
				load: func() []string { return r.Contact.Links },
				store: func(vs []string) types.FieldPath {
					r.Contact.Links = normalize.Exact(vs)
					if len(r.Contact.Links) == 0 {
						r.Contact.Links = nil
					}
					return path
				},
			}, nil
		}

	case types.ExperienceField:
		if p.Index < 0 || p.Index >= len(r.Experience) {
			return list{}, &FieldError{Path: path.String(), Cause: ErrIndexOutOfRange}
		}
		e := &r.Experience[p.Index]
		switch p.Name {
		case types.ExperienceAchievements:
			return stringList(&e.Achievements, path, false), nil
		case types.ExperienceTechnologies:
			return stringList(&e.Technologies, path, true), nil
		}

	case types.ProjectField:
		if p.Index < 0 || p.Index >= len(r.Projects) {
			return list{}, &FieldError{Path: path.String(), Cause: ErrIndexOutOfRange}
		}
		e := &r.Projects[p.Index]
		switch p.Name {
		case types.ProjectBullets:
			return stringList(&e.Bullets, path, false), nil
		case types.ProjectTechnologies:
			return stringList(&e.Technologies, path, true), nil
		}

	case types.SkillGroupField:
		for i := range r.Skills {
			g := &r.Skills[i]
			if strings.EqualFold(g.Category, p.Category) {
				return stringList(&g.Skills, types.SkillGroupField{Category: g.Category}, true), nil
			}
		}
		return list{}, &FieldError{Path: path.String(), Cause: ErrUnknownCategory}

	case types.LanguagesField:
		return list{
			load: func() []string {
				out := make([]string, len(r.Languages))
				for i, l := range r.Languages {
					out[i] = extraction.FormatLanguage(l)
				}
				return out
			},
			store: func(vs []string) types.FieldPath {
				langs := make([]types.Language, 0, len(vs))
				seen := make(map[string]struct{}, len(vs))
				for _, v := range vs {
					l := extraction.ParseLanguage(v)
					key := strings.ToLower(l.Name)
					if _, ok := seen[key]; ok || l.Name == "" {
						continue
					}
					seen[key] = struct{}{}
					langs = append(langs, l)
				}
				r.Languages = langs
				return path
			},
		}, nil
	}
	return list{}, &FieldError{Path: path.String(), Cause: ErrUnknownField}
}

// stringList binds a plain string list. fold removes case-insensitive duplicates.
func stringList(dst *[]string, path types.FieldPath, fold bool) list {
	return list{
		load: func() []string { return *dst },
		store: func(vs []string) types.FieldPath {
			if fold {
				vs = normalize.Fold(vs)
			}
			if vs == nil {
				vs = []string{}
			}
			*dst = vs
			return path
		},
	}
}

// text binds free text: HIGH when set, LOW when cleared
func (s *Session) text(dst *string) scalar {
	return scalar{
		load: func() string { return *dst },
		store: func(v string) (types.Confidence, string, error) {
			*dst = v
			return presence(v != ""), "", nil
		},
	}
}

// checked binds a string validated by ok; an invalid value is kept at LOW
func (s *Session) checked(dst *string, ok func(string) bool, message func(string) string) scalar {
	return scalar{
		load: func() string { return *dst },
		store: func(v string) (types.Confidence, string, error) {
			*dst = v
			switch {
			case v == "":
				return types.ConfidenceLow, "", nil
			case ok(v):
				return types.ConfidenceHigh, "", nil
			default:
				return types.ConfidenceLow, message(v), nil
			}
		},
	}
}

func (s *Session) dates(dst **types.DateRange) scalar {
	return scalar{
		load: func() string {
			if *dst == nil {
				return ""
			}
			return (*dst).Raw
		},
		store: func(v string) (types.Confidence, string, error) {
			if v == "" {
				*dst = nil
				return types.ConfidenceLow, "", nil
			}
			d, conf, problem := s.parseDates(v)
			*dst = &d
			return conf, problem, nil
		},
	}
}

func (s *Session) projectDate(dst *string) scalar {
	return scalar{
		load: func() string { return *dst },
		store: func(v string) (types.Confidence, string, error) {
			*dst = v
			if v == "" {
				return types.ConfidenceLow, "", nil
			}
			_, conf, problem := s.parseDates(v)
			return conf, problem, nil
		},
	}
}

// parseDates reads a date range, keeping v verbatim as Raw
func (s *Session) parseDates(v string) (types.DateRange, types.Confidence, string) {
	d, _, ok := extraction.ParseDateRange(v)
	if !ok {
		return types.DateRange{Raw: v}, types.ConfidenceLow, normalize.UnrecognizedDateMessage(v)
	}
	d.Raw = v
	if !s.validator.DateRange(&d) {
		return d, types.ConfidenceLow, normalize.ReversedDatesMessage(v)
	}
	return d, types.ConfidenceHigh, ""
}

func (s *Session) gpa(dst **types.GPA) scalar {
	return scalar{
		load: func() string {
			if *dst == nil {
				return ""
			}
			return (*dst).Raw
		},
		store: func(v string) (types.Confidence, string, error) {
			gpa, ok := extraction.ParseGPA(v)
			*dst = gpa
			switch {
			case gpa == nil:
				return types.ConfidenceLow, "", nil
			case ok && s.validator.GPA(gpa):
				return types.ConfidenceHigh, "", nil
			default:
				return types.ConfidenceLow, normalize.MalformedGPAMessage(v), nil
			}
		},
	}
}

func (s *Session) year(dst **int) scalar {
	return scalar{
		load: func() string {
			if *dst == nil {
				return ""
			}
			return strconv.Itoa(**dst)
		},
		store: func(v string) (types.Confidence, string, error) {
			if v == "" {
				*dst = nil
				return types.ConfidenceLow, "", nil
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return types.ConfidenceLow, "", fmt.Errorf("%w: year %q is not a number", ErrInvalidValue, v)
			}
			*dst = &n
			if !s.validator.Year(&n) {
				return types.ConfidenceLow, fmt.Sprintf("year %d is out of range", n), nil
			}
			return types.ConfidenceHigh, "", nil
		},
	}
}

func presence(ok bool) types.Confidence {
	if ok {
		return types.ConfidenceHigh
	}
	return types.ConfidenceLow
}
