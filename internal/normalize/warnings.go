package normalize

import (
	"fmt"

	"github.com/jonathan/resume-extractor/internal/types"
)

// RecordWarnings computes the warnings that depend on the record as a whole:
// missing name or email, no contact channel, and missing experience or education.
func RecordWarnings(r *types.ParsedResume) []types.Warning {
	var ws []types.Warning
	if r.Contact.Name == "" {
		ws = append(ws, types.Warning{
			Code:    types.WarningMissingName,
			Field:   types.ContactField{Name: types.ContactName}.String(),
			Message: "no candidate name found",
		})
	}
	if r.Contact.Email == "" {
		ws = append(ws, types.Warning{
			Code:    types.WarningMissingEmail,
			Field:   types.ContactField{Name: types.ContactEmail}.String(),
			Message: "no email address found",
		})
	}
	if r.Contact.Email == "" && r.Contact.Phone == "" {
		ws = append(ws, types.Warning{
			Code:    types.WarningMissingContactInfo,
			Message: "neither an email address nor a phone number was found",
		})
	}
	if len(r.Experience) == 0 {
		ws = append(ws, types.Warning{
			Code:    types.WarningNoExperienceFound,
			Field:   "experience",
			Message: "no work experience entries found",
		})
	}
	if len(r.Education) == 0 {
		ws = append(ws, types.Warning{
			Code:    types.WarningNoEducationFound,
			Field:   "education",
			Message: "no education entries found",
		})
	}
	return ws
}

// UnparsedWarnings returns one UnparsedSection warning per section that no extractor handled
func UnparsedWarnings(sections []types.Section) []types.Warning {
	ws := make([]types.Warning, 0, len(sections))
	for _, sec := range sections {
		msg := fmt.Sprintf("%d lines without a recognizable section header were not parsed", len(sec.Lines))
		if sec.Title != "" {
			msg = fmt.Sprintf("section %q at line %d was not parsed", sec.Title, sec.StartLine)
		}
		ws = append(ws, types.Warning{Code: types.WarningUnparsedSection, Message: msg})
	}
	return ws
}

// IsRecordLevel reports whether w is recomputed from the whole record by RecordWarnings
func IsRecordLevel(w types.Warning) bool {
	switch w.Code {
	case types.WarningMissingName, types.WarningMissingEmail, types.WarningMissingContactInfo,
		types.WarningNoExperienceFound, types.WarningNoEducationFound:
		return true
	}
	return false
}

// Canonical removes duplicate warnings and sorts the rest into canonical order.
// The result is never nil.
func Canonical(ws []types.Warning) []types.Warning {
	seen := make(map[types.Warning]struct{}, len(ws))
	out := make([]types.Warning, 0, len(ws))
	for _, w := range ws {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	types.SortWarnings(out)
	return out
}

// InvalidEmailMessage describes an email that failed validation
func InvalidEmailMessage(email string) string {
	return fmt.Sprintf("invalid email address %q", email)
}

// InvalidPhoneMessage describes a phone number that failed validation
func InvalidPhoneMessage(phone, region string) string {
	return fmt.Sprintf("invalid phone number %q for region %s", phone, region)
}

// ReversedDatesMessage describes a date range that ends before it starts
func ReversedDatesMessage(raw string) string {
	return fmt.Sprintf("end year precedes start year in %q", raw)
}

// UnrecognizedDateMessage describes a date field with no parseable year
func UnrecognizedDateMessage(raw string) string {
	return fmt.Sprintf("unrecognized date %q", raw)
}

// MalformedGPAMessage describes a GPA that is not a value/scale pair
func MalformedGPAMessage(raw string) string {
	return fmt.Sprintf("GPA %q is not a value/scale pair", raw)
}
