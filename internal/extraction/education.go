package extraction

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/resume-extractor/internal/normalize"
	"github.com/jonathan/resume-extractor/internal/segment"
	"github.com/jonathan/resume-extractor/internal/types"
)

var (
	degreeWordPattern   = regexp.MustCompile(`(?i)\b(?:bachelor|master|associate|doctorate|diploma|mba)\w*|\bdoctor of\b|\bph\.?\s?d\b`)
	degreeAbbrevPattern = regexp.MustCompile(`\b(?:B\.Sc|M\.Sc|B\.S|M\.S|B\.A|M\.A|B\.Eng|M\.Eng|BSc|MSc|BS|MS|BA|MA|BEng|MEng|BTech|MTech)\b`)
	institutionPattern  = regexp.MustCompile(`(?i)\b(?:university|college|institute|school|academy|polytechnic)\b`)
	gpaKeywordPattern   = regexp.MustCompile(`(?i)\bGPA\b`)
	gpaPairPattern      = regexp.MustCompile(`(?i)\bGPA\b\s*[:\-]?\s*(\d+(?:\.\d+)?)\s*/\s*(\d+(?:\.\d+)?)|(\d+(?:\.\d+)?)\s*/\s*(\d+(?:\.\d+)?)\s*GPA\b`)
)

// hasDegree reports whether s names a degree. Abbreviations are case-sensitive
// and ignored on institution lines so "Boston, MA" does not read as a degree.
func hasDegree(s string) bool {
	if degreeWordPattern.MatchString(s) {
		return true
	}
	return degreeAbbrevPattern.MatchString(s) && !institutionPattern.MatchString(s)
}

func hasInstitution(s string) bool {
	return institutionPattern.MatchString(s)
}

// ExtractEducation extracts one EducationEntry per blank-separated block,
// splitting blocks further when a second degree line appears.
func ExtractEducation(sec types.Section, rec types.ParsedResume) types.ParsedResume {
	for _, block := range blocks(sec.Lines) {
		for _, lines := range splitOnRepeatedDegree(block) {
			rec = appendEducation(rec, lines)
		}
	}
	return rec
}

func splitOnRepeatedDegree(block []string) [][]string {
	var out [][]string
	var current []string
	seenDegree := false
	for _, line := range block {
		if lineHasDegree(line) {
			if seenDegree {
				out = append(out, current)
				current = nil
			}
			seenDegree = true
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		out = append(out, current)
	}
	return out
}

func appendEducation(rec types.ParsedResume, lines []string) types.ParsedResume {
	idx := len(rec.Education)
	path := func(name types.EducationFieldName) types.EducationField {
		return types.EducationField{Index: idx, Name: name}
	}

	var (
		entry     types.EducationEntry
		leftovers []string
		degreeC   = types.ConfidenceLow
		instC     = types.ConfidenceLow
		datesC    = types.ConfidenceLow
	)

	for _, line := range lines {
		text, _ := segment.StripBullet(line)

		if entry.GPA == nil {
			var gpa *types.GPA
			var ok bool
			gpa, ok, text = extractGPA(text)
			if gpa != nil {
				entry.GPA = gpa
				if ok {
					rec.Confidence.Set(path(types.EducationGPA), types.ConfidenceHigh)
				} else {
					rec.Confidence.Set(path(types.EducationGPA), types.ConfidenceLow)
					rec.Warnings = append(rec.Warnings, types.MalformedField(path(types.EducationGPA),
						normalize.MalformedGPAMessage(gpa.Raw)))
				}
			}
		}

		for _, piece := range educationPieces(text) {
			if entry.Dates == nil {
				if m, ok := findDate(piece); ok {
					d := m.Range
					entry.Dates = &d
					datesC = m.Confidence
					piece = removeSpan(piece, m.Start, m.End)
				}
			}
			piece = trimSeparators(piece)
			switch {
			case piece == "":
			case entry.Degree == "" && hasDegree(piece):
				entry.Degree = piece
				degreeC = types.ConfidenceHigh
			case entry.Institution == "" && hasInstitution(piece):
				entry.Institution = piece
				instC = types.ConfidenceHigh
			default:
				leftovers = append(leftovers, piece)
			}
		}
	}

	for _, piece := range leftovers {
		switch {
		case entry.Degree == "":
			entry.Degree = piece
			degreeC = types.ConfidenceMedium
		case entry.Institution == "":
			entry.Institution = piece
			instC = types.ConfidenceMedium
		}
	}

	if entry.Degree == "" && entry.Institution == "" && entry.Dates == nil && entry.GPA == nil {
		return rec
	}

	rec.Confidence.Set(path(types.EducationDegree), degreeC)
	rec.Confidence.Set(path(types.EducationInstitution), instC)
	rec.Confidence.Set(path(types.EducationDates), datesC)
	rec.Education = append(rec.Education, entry)
	return rec
}

// lineHasDegree reports whether any piece of line names a degree
func lineHasDegree(line string) bool {
	text, _ := segment.StripBullet(line)
	for _, piece := range educationPieces(text) {
		if hasDegree(piece) {
			return true
		}
	}
	return false
}

// educationPieces splits a line into classifiable pieces. Comma-separated
// lines are split only when they name both a degree and an institution.
func educationPieces(text string) []string {
	if separatorCount(text) > 0 {
		return splitFields(text)
	}
	mentionsDegree := degreeWordPattern.MatchString(text) || degreeAbbrevPattern.MatchString(text)
	if strings.Contains(text, ",") && mentionsDegree && hasInstitution(text) {
		return splitDegreeInstitution(text)
	}
	return []string{text}
}

// splitDegreeInstitution cuts "BS Computer Science, Stanford University, 2018"
// at the comma preceding the institution, keeping "Degree, Major" together.
func splitDegreeInstitution(text string) []string {
	parts := strings.Split(text, ",")
	for i := 1; i < len(parts); i++ {
		if hasInstitution(parts[i]) {
			head := strings.Join(parts[:i], ",")
			tail := strings.Join(parts[i:], ",")
			return nonEmpty([]string{head, tail})
		}
	}
	return []string{text}
}

// extractGPA finds a GPA in text. It returns the GPA (nil when text has no
// GPA keyword), whether it was a well-formed value/scale pair, and text with
// the GPA removed.
func extractGPA(text string) (*types.GPA, bool, string) {
	if m := gpaPairPattern.FindStringSubmatchIndex(text); m != nil {
		raw := text[m[0]:m[1]]
		valueStr, scaleStr := submatch(text, m, 1), submatch(text, m, 2)
		if valueStr == "" {
			valueStr, scaleStr = submatch(text, m, 3), submatch(text, m, 4)
		}
		rest := removeSpan(text, m[0], m[1])
		value, errV := strconv.ParseFloat(valueStr, 64)
		scale, errS := strconv.ParseFloat(scaleStr, 64)
		if errV != nil || errS != nil || scale <= 0 || value > scale {
			return &types.GPA{Raw: raw}, false, rest
		}
		return &types.GPA{Raw: raw, Value: value, Scale: scale}, true, rest
	}

	loc := gpaKeywordPattern.FindStringIndex(text)
	if loc == nil {
		return nil, false, text
	}
	end := len(text)
	if sep := strings.IndexAny(text[loc[1]:], "|,;"); sep >= 0 {
		end = loc[1] + sep
	}
	raw := strings.TrimSpace(text[loc[0]:end])
	return &types.GPA{Raw: raw}, false, removeSpan(text, loc[0], end)
}

func submatch(s string, loc []int, group int) string {
	start, end := loc[2*group], loc[2*group+1]
	if start < 0 {
		return ""
	}
	return s[start:end]
}

// ParseGPA parses a GPA written with or without the "GPA" keyword. The
// returned GPA keeps s as Raw; ok is false when s is not a value/scale pair.
func ParseGPA(s string) (gpa *types.GPA, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	text := s
	if !gpaKeywordPattern.MatchString(text) {
		text = "GPA " + text
	}
	gpa, ok, _ = extractGPA(text)
	if gpa == nil {
		return &types.GPA{Raw: s}, false
	}
	gpa.Raw = s
	return gpa, ok
}
