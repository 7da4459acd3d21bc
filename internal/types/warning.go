package types

import (
	"fmt"
	"sort"
)

// WarningCode identifies a non-fatal extraction irregularity
type WarningCode string

const (
	WarningMissingName        WarningCode = "missing_name"
	WarningMissingEmail       WarningCode = "missing_email"
	WarningMissingContactInfo WarningCode = "missing_contact_info"
	WarningNoExperienceFound  WarningCode = "no_experience_found"
	WarningNoEducationFound   WarningCode = "no_education_found"
	WarningUnparsedSection    WarningCode = "unparsed_section"
	WarningMalformedField     WarningCode = "malformed_field"
)

// WarningKind groups warning codes by the error taxonomy they report
type WarningKind string

const (
	KindMissingRequiredField WarningKind = "missing_required_field"
	KindMissingSection       WarningKind = "missing_section"
	KindMalformedField       WarningKind = "malformed_field"
	KindUnparsedSection      WarningKind = "unparsed_section"
)

// warningRank fixes the canonical order warnings are reported in
var warningRank = map[WarningCode]int{
	WarningMissingName:        0,
	WarningMissingEmail:       1,
	WarningMissingContactInfo: 2,
	WarningNoExperienceFound:  3,
	WarningNoEducationFound:   4,
	WarningUnparsedSection:    5,
	WarningMalformedField:     6,
}

// Warning is a non-fatal annotation describing an extraction irregularity
type Warning struct {
	Code    WarningCode `json:"code"`
	Field   string      `json:"field,omitempty"`
	Message string      `json:"message"`
}

// Kind returns the taxonomy group of the warning
func (w Warning) Kind() WarningKind {
	switch w.Code {
	case WarningMissingName, WarningMissingEmail, WarningMissingContactInfo:
		return KindMissingRequiredField
	case WarningNoExperienceFound, WarningNoEducationFound:
		return KindMissingSection
	case WarningUnparsedSection:
		return KindUnparsedSection
	default:
		return KindMalformedField
	}
}

func (w Warning) String() string {
	if w.Field != "" {
		return fmt.Sprintf("%s (%s): %s", w.Code, w.Field, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// MalformedField builds a MalformedField warning for a field path
func MalformedField(path FieldPath, message string) Warning {
	return Warning{Code: WarningMalformedField, Field: path.String(), Message: message}
}

// SortWarnings orders warnings canonically (code, then field, then message) in place
func SortWarnings(ws []Warning) {
	sort.SliceStable(ws, func(i, j int) bool {
		ri, rj := warningRank[ws[i].Code], warningRank[ws[j].Code]
		if ri != rj {
			return ri < rj
		}
		if ws[i].Field != ws[j].Field {
			return ws[i].Field < ws[j].Field
		}
		return ws[i].Message < ws[j].Message
	})
}

// HasWarning reports whether ws contains a warning with the given code
func HasWarning(ws []Warning, code WarningCode) bool {
	for _, w := range ws {
		if w.Code == code {
			return true
		}
	}
	return false
}
