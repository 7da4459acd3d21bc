package extraction

import (
	"strings"

	"github.com/jonathan/resume-extractor/internal/segment"
	"github.com/jonathan/resume-extractor/internal/types"
)

// skillSeparators split skill and language item lists
const skillSeparators = ",;|•·"

// ExtractSkills groups skills by the category named before the first colon
// of each line. Lines without a colon belong to the category opened by a
// preceding "Category:" line, or to Uncategorized.
func ExtractSkills(sec types.Section, rec types.ParsedResume) types.ParsedResume {
	pending := ""
	for _, line := range sec.Lines {
		text, _ := segment.StripBullet(line)
		if text == "" {
			pending = ""
			continue
		}

		category, items, hasColon := splitCategory(text)
		if hasColon && strings.TrimSpace(items) == "" {
			pending = category
			continue
		}

		explicit := hasColon
		if !hasColon {
			if pending != "" {
				category, explicit = pending, true
			} else {
				category = types.UncategorizedSkills
			}
		}
		rec = addSkills(rec, category, explicit, splitOutsideParens(items, skillSeparators))
	}
	return rec
}

// splitCategory splits a line on its first colon
func splitCategory(text string) (category, items string, ok bool) {
	before, after, found := strings.Cut(text, ":")
	if !found {
		return "", text, false
	}
	category = collapse(before)
	if category == "" {
		category = types.UncategorizedSkills
	}
	return category, after, true
}

// addSkills merges items into the group for category (matched
// case-insensitively), de-duplicating case-insensitively.
func addSkills(rec types.ParsedResume, category string, explicit bool, items []string) types.ParsedResume {
	if len(items) == 0 {
		return rec
	}
	if strings.EqualFold(category, types.UncategorizedSkills) {
		explicit = false
	}

	pos := -1
	for i, g := range rec.Skills {
		if strings.EqualFold(g.Category, category) {
			pos = i
			break
		}
	}
	if pos < 0 {
		rec.Skills = append(rec.Skills, types.SkillGroup{Category: category})
		pos = len(rec.Skills) - 1
	}

	group := &rec.Skills[pos]
	group.Skills = dedupFold(append(group.Skills, items...))

	level := types.ConfidenceMedium
	if explicit {
		level = types.ConfidenceHigh
	}
	rec.Confidence.Set(types.SkillGroupField{Category: group.Category}, level)
	return rec
}

// splitOutsideParens splits s on any rune in seps that is not inside
// parentheses, trimming items and dropping empty ones.
func splitOutsideParens(s, seps string) []string {
	var (
		items []string
		buf   strings.Builder
		depth int
	)
	flush := func() {
		item := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(buf.String()), "."))
		if item != "" {
			items = append(items, collapse(item))
		}
		buf.Reset()
	}
	for _, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')' && depth > 0:
			depth--
		case depth == 0 && strings.ContainsRune(seps, r):
			flush()
			continue
		}
		buf.WriteRune(r)
	}
	flush()
	return items
}
