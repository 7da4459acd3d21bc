package types

import (
	"fmt"
	"regexp"
	"strconv"
)

// FieldPath addresses one editable field of a ParsedResume.
// The set of implementations is closed; use the variant types below.
type FieldPath interface {
	// String returns the canonical key, e.g. "experience[0].title"
	String() string
	// IsList reports whether the addressed field holds a list of strings
	IsList() bool
	fieldPath()
}

// ContactFieldName names a ContactInfo field
type ContactFieldName string

const (
	ContactName     ContactFieldName = "name"
	ContactEmail    ContactFieldName = "email"
	ContactPhone    ContactFieldName = "phone"
	ContactLocation ContactFieldName = "location"
	ContactLinks    ContactFieldName = "links"
)

// EducationFieldName names an EducationEntry field
type EducationFieldName string

const (
	EducationDegree      EducationFieldName = "degree"
	EducationInstitution EducationFieldName = "institution"
	EducationDates       EducationFieldName = "dates"
	EducationGPA         EducationFieldName = "gpa"
)

// ExperienceFieldName names an ExperienceEntry field
type ExperienceFieldName string

const (
	ExperienceTitle        ExperienceFieldName = "title"
	ExperienceOrganization ExperienceFieldName = "organization"
	ExperienceLocation     ExperienceFieldName = "location"
	ExperienceDates        ExperienceFieldName = "dates"
	ExperienceAchievements ExperienceFieldName = "achievements"
	ExperienceTechnologies ExperienceFieldName = "technologies"
)

// ProjectFieldName names a ProjectEntry field
type ProjectFieldName string

const (
	ProjectTitle        ProjectFieldName = "title"
	ProjectDate         ProjectFieldName = "date"
	ProjectBullets      ProjectFieldName = "bullets"
	ProjectTechnologies ProjectFieldName = "technologies"
)

// CertificationFieldName names a CertificationEntry field
type CertificationFieldName string

const (
	CertificationName   CertificationFieldName = "name"
	CertificationIssuer CertificationFieldName = "issuer"
	CertificationYear   CertificationFieldName = "year"
)

// ContactField addresses contact.<name>
type ContactField struct {
	Name ContactFieldName
}

func (f ContactField) String() string { return "contact." + string(f.Name) }
func (f ContactField) IsList() bool   { return f.Name == ContactLinks }
func (ContactField) fieldPath()       {}

// SummaryField addresses the summary text
type SummaryField struct{}

func (SummaryField) String() string { return "summary" }
func (SummaryField) IsList() bool   { return false }
func (SummaryField) fieldPath()     {}

// EducationField addresses education[<index>].<name>
type EducationField struct {
	Index int
	Name  EducationFieldName
}

func (f EducationField) String() string { return fmt.Sprintf("education[%d].%s", f.Index, f.Name) }
func (EducationField) IsList() bool     { return false }
func (EducationField) fieldPath()       {}

// ExperienceField addresses experience[<index>].<name>
type ExperienceField struct {
	Index int
	Name  ExperienceFieldName
}

func (f ExperienceField) String() string { return fmt.Sprintf("experience[%d].%s", f.Index, f.Name) }
func (f ExperienceField) IsList() bool {
	return f.Name == ExperienceAchievements || f.Name == ExperienceTechnologies
}
func (ExperienceField) fieldPath() {}

// ProjectField addresses projects[<index>].<name>
type ProjectField struct {
	Index int
	Name  ProjectFieldName
}

func (f ProjectField) String() string { return fmt.Sprintf("projects[%d].%s", f.Index, f.Name) }
func (f ProjectField) IsList() bool {
	return f.Name == ProjectBullets || f.Name == ProjectTechnologies
}
func (ProjectField) fieldPath() {}

// CertificationField addresses certifications[<index>].<name>
type CertificationField struct {
	Index int
	Name  CertificationFieldName
}

func (f CertificationField) String() string {
	return fmt.Sprintf("certifications[%d].%s", f.Index, f.Name)
}
func (CertificationField) IsList() bool { return false }
func (CertificationField) fieldPath()   {}

// SkillGroupField addresses the skill list of one category
type SkillGroupField struct {
	Category string
}

func (f SkillGroupField) String() string { return "skills[" + f.Category + "]" }
func (SkillGroupField) IsList() bool     { return true }
func (SkillGroupField) fieldPath()       {}

// LanguagesField addresses the languages list. List items use the
// "Name (Proficiency)" form.
type LanguagesField struct{}

func (LanguagesField) String() string { return "languages" }
func (LanguagesField) IsList() bool   { return true }
func (LanguagesField) fieldPath()     {}

var (
	indexedPathPattern = regexp.MustCompile(`^(education|experience|projects|certifications)\[(\d+)\]\.([a-z]+)$`)
	skillsPathPattern  = regexp.MustCompile(`^skills\[(.+)\]$`)
	contactPathPattern = regexp.MustCompile(`^contact\.([a-z]+)$`)
)

var (
	contactNames = map[string]ContactFieldName{
		"name": ContactName, "email": ContactEmail, "phone": ContactPhone,
		"location": ContactLocation, "links": ContactLinks,
	}
	educationNames = map[string]EducationFieldName{
		"degree": EducationDegree, "institution": EducationInstitution,
		"dates": EducationDates, "gpa": EducationGPA,
	}
	experienceNames = map[string]ExperienceFieldName{
		"title": ExperienceTitle, "organization": ExperienceOrganization, "location": ExperienceLocation,
		"dates": ExperienceDates, "achievements": ExperienceAchievements, "technologies": ExperienceTechnologies,
	}
	projectNames = map[string]ProjectFieldName{
		"title": ProjectTitle, "date": ProjectDate, "bullets": ProjectBullets, "technologies": ProjectTechnologies,
	}
	certificationNames = map[string]CertificationFieldName{
		"name": CertificationName, "issuer": CertificationIssuer, "year": CertificationYear,
	}
)

// InvalidPathError is returned by ParseFieldPath for strings that do not name a field
type InvalidPathError struct {
	Path string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid field path: %q", e.Path)
}

// ParseFieldPath parses the canonical string form produced by FieldPath.String
func ParseFieldPath(s string) (FieldPath, error) {
	switch s {
	case "summary":
		return SummaryField{}, nil
	case "languages":
		return LanguagesField{}, nil
	}

	if m := contactPathPattern.FindStringSubmatch(s); m != nil {
		if name, ok := contactNames[m[1]]; ok {
			return ContactField{Name: name}, nil
		}
		return nil, &InvalidPathError{Path: s}
	}

	if m := skillsPathPattern.FindStringSubmatch(s); m != nil {
		return SkillGroupField{Category: m[1]}, nil
	}

	m := indexedPathPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, &InvalidPathError{Path: s}
	}
	index, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, &InvalidPathError{Path: s}
	}

	var (
		path FieldPath
		ok   bool
	)
	switch m[1] {
	case "education":
		var name EducationFieldName
		if name, ok = educationNames[m[3]]; ok {
			path = EducationField{Index: index, Name: name}
		}
	case "experience":
		var name ExperienceFieldName
		if name, ok = experienceNames[m[3]]; ok {
			path = ExperienceField{Index: index, Name: name}
		}
	case "projects":
		var name ProjectFieldName
		if name, ok = projectNames[m[3]]; ok {
			path = ProjectField{Index: index, Name: name}
		}
	case "certifications":
		var name CertificationFieldName
		if name, ok = certificationNames[m[3]]; ok {
			path = CertificationField{Index: index, Name: name}
		}
	}
	if !ok {
		return nil, &InvalidPathError{Path: s}
	}
	return path, nil
}
