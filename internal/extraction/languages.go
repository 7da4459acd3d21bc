package extraction

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-extractor/internal/segment"
	"github.com/jonathan/resume-extractor/internal/types"
)

var (
	parenProficiency    = regexp.MustCompile(`^(.+?)\s*\((.*)\)$`)
	labelledProficiency = regexp.MustCompile(`^(.+?)\s*(?::|\s[-–—])\s*(.+)$`)
	languagesLabel      = regexp.MustCompile(`(?i)^(?:spoken\s+)?languages?\s*:\s*`)
)

// ExtractLanguages splits each line on commas outside parentheses. A
// parenthetical proficiency is captured verbatim; "Name: Level" and
// "Name - Level" are accepted at MEDIUM confidence.
func ExtractLanguages(sec types.Section, rec types.ParsedResume) types.ParsedResume {
	level := types.ConfidenceHigh
	found := false
	before := len(rec.Languages)
	for _, line := range sec.Lines {
		text, _ := segment.StripBullet(line)
		text = languagesLabel.ReplaceAllString(text, "")
		for _, item := range splitOutsideParens(text, skillSeparators) {
			lang, conf := parseLanguage(item)
			if lang.Name == "" {
				continue
			}
			found = true
			level = level.Min(conf)
			if !hasLanguage(rec.Languages, lang.Name) {
				rec.Languages = append(rec.Languages, lang)
			}
		}
	}

	switch {
	case found:
		if before > 0 {
			level = level.Min(rec.Confidence.Get(types.LanguagesField{}))
		}
		rec.Confidence.Set(types.LanguagesField{}, level)
	case len(rec.Languages) == 0:
		rec.Confidence.Set(types.LanguagesField{}, types.ConfidenceLow)
	}
	return rec
}

func parseLanguage(item string) (types.Language, types.Confidence) {
	if m := parenProficiency.FindStringSubmatch(item); m != nil {
		return types.Language{Name: collapse(m[1]), Proficiency: collapse(m[2])}, types.ConfidenceHigh
	}
	if m := labelledProficiency.FindStringSubmatch(item); m != nil {
		return types.Language{Name: collapse(m[1]), Proficiency: collapse(m[2])}, types.ConfidenceMedium
	}
	return types.Language{Name: collapse(item)}, types.ConfidenceHigh
}

func hasLanguage(list []types.Language, name string) bool {
	for _, l := range list {
		if strings.EqualFold(l.Name, name) {
			return true
		}
	}
	return false
}

// ParseLanguage parses one "Name (Proficiency)" item
func ParseLanguage(item string) types.Language {
	lang, _ := parseLanguage(strings.TrimSpace(item))
	return lang
}

// FormatLanguage renders l in the form ParseLanguage accepts
func FormatLanguage(l types.Language) string {
	if l.Proficiency == "" {
		return l.Name
	}
	return l.Name + " (" + l.Proficiency + ")"
}
