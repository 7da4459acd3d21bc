package extraction

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/resume-extractor/internal/types"
)

const (
	monthPattern   = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?`
	seasonPattern  = `(?:spring|summer|fall|autumn|winter)`
	yearPattern    = `(?:19|20)\d{2}`
	periodPattern  = `(?:` + monthPattern + `|` + seasonPattern + `)`
	pointPattern   = `(?:` + periodPattern + `\s+|\d{1,2}/)?` + yearPattern
	currentPattern = `(?:present|current|now|today)`
)

var (
	rangePattern     = regexp.MustCompile(`(?i)\b(` + pointPattern + `)\s*(?:-|–|—|to|until)\s*(` + pointPattern + `|` + currentPattern + `)\b`)
	monthYearPattern = regexp.MustCompile(`(?i)\b(?:` + periodPattern + `\s+|\d{1,2}/)` + yearPattern + `\b`)
	bareYearPattern  = regexp.MustCompile(`\b` + yearPattern + `\b`)
	currentWord      = regexp.MustCompile(`(?i)^` + currentPattern + `$`)
)

// dateMatch is a date expression located inside a longer string
type dateMatch struct {
	Range      types.DateRange
	Confidence types.Confidence
	Start, End int // byte offsets of the match
}

// findDate locates the first date range, month-year or bare year in s, in that
// order of preference. A season counts as a month. Ranges and month-year
// dates are HIGH; a bare year is MEDIUM.
func findDate(s string) (dateMatch, bool) {
	if loc := rangePattern.FindStringSubmatchIndex(s); loc != nil {
		d := types.DateRange{Raw: strings.TrimSpace(s[loc[0]:loc[1]])}
		d.StartYear = yearOf(s[loc[2]:loc[3]])
		end := s[loc[4]:loc[5]]
		if currentWord.MatchString(end) {
			d.Current = true
		} else {
			d.EndYear = yearOf(end)
		}
		return dateMatch{Range: d, Confidence: types.ConfidenceHigh, Start: loc[0], End: loc[1]}, true
	}
	if loc := monthYearPattern.FindStringIndex(s); loc != nil {
		raw := s[loc[0]:loc[1]]
		d := types.DateRange{Raw: raw, StartYear: yearOf(raw)}
		return dateMatch{Range: d, Confidence: types.ConfidenceHigh, Start: loc[0], End: loc[1]}, true
	}
	if loc := bareYearPattern.FindStringIndex(s); loc != nil {
		raw := s[loc[0]:loc[1]]
		d := types.DateRange{Raw: raw, StartYear: yearOf(raw)}
		return dateMatch{Range: d, Confidence: types.ConfidenceMedium, Start: loc[0], End: loc[1]}, true
	}
	return dateMatch{}, false
}

// ParseDateRange parses a string that should contain a date or date range.
// ok is false when no date expression is present.
func ParseDateRange(s string) (types.DateRange, types.Confidence, bool) {
	m, ok := findDate(s)
	if !ok {
		return types.DateRange{}, types.ConfidenceLow, false
	}
	return m.Range, m.Confidence, true
}

// isDateOnly reports whether s is nothing but a date expression, optionally parenthesized
func isDateOnly(s string) (dateMatch, bool) {
	trimmed := strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "()[]"))
	if trimmed == "" {
		return dateMatch{}, false
	}
	m, ok := findDate(trimmed)
	if !ok || m.Start != 0 || m.End != len(trimmed) {
		return dateMatch{}, false
	}
	return m, true
}

// removeSpan cuts s[start:end] out of s and tidies the separators left behind
func removeSpan(s string, start, end int) string {
	return trimSeparators(s[:start] + " " + s[end:])
}

func yearOf(s string) *int {
	y := bareYearPattern.FindString(s)
	if y == "" {
		return nil
	}
	n, err := strconv.Atoi(y)
	if err != nil {
		return nil
	}
	return &n
}
