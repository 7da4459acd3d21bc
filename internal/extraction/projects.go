package extraction

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-extractor/internal/segment"
	"github.com/jonathan/resume-extractor/internal/types"
)

var parenthesizedDate = regexp.MustCompile(`\(\s*[^()]*\b(?:19|20)\d{2}\b[^()]*\)\s*$`)

func isProjectTitle(line string) bool {
	return separatorCount(line) > 0 || parenthesizedDate.MatchString(line)
}

// ExtractProjects extracts one ProjectEntry per entry, using the same entry
// splitting and bullet rules as experience.
func ExtractProjects(sec types.Section, rec types.ParsedResume) types.ParsedResume {
	for _, lines := range splitEntries(sec.Lines, isProjectTitle) {
		rec = appendProject(rec, lines)
	}
	return rec
}

func appendProject(rec types.ParsedResume, lines []string) types.ParsedResume {
	idx := len(rec.Projects)
	path := func(name types.ProjectFieldName) types.ProjectField {
		return types.ProjectField{Index: idx, Name: name}
	}

	var (
		entry      types.ProjectEntry
		titleConf  = types.ConfidenceLow
		dateConf   = types.ConfidenceLow
		titleDone  bool
		titleTechs []string
	)

	for _, line := range lines {
		if techs, ok := techList(line); ok {
			entry.Technologies = append(entry.Technologies, techs...)
			continue
		}
		text, bullet := segment.StripBullet(line)
		switch {
		case bullet:
			if text != "" {
				entry.Bullets = append(entry.Bullets, text)
			}
		case !titleDone:
			titleConf, titleTechs = parseProjectTitle(&entry, text)
			if entry.Date != "" {
				dateConf = types.ConfidenceHigh
			}
			titleDone = true
		case len(entry.Bullets) > 0:
			entry.Bullets = appendContinuation(entry.Bullets, text)
		default:
			entry.Bullets = append(entry.Bullets, text)
		}
	}

	if len(entry.Technologies) == 0 {
		entry.Technologies = titleTechs
	}
	entry.Technologies = dedupFold(entry.Technologies)
	if entry.Bullets == nil {
		entry.Bullets = []string{}
	}

	rec.Confidence.Set(path(types.ProjectTitle), titleConf)
	rec.Confidence.Set(path(types.ProjectDate), dateConf)
	rec.Confidence.Set(path(types.ProjectBullets), presence(len(entry.Bullets)))
	rec.Confidence.Set(path(types.ProjectTechnologies), presence(len(entry.Technologies)))
	rec.Projects = append(rec.Projects, entry)
	return rec
}

// parseProjectTitle fills the title and date from a project's first line. For
// pipe-delimited lines the non-date parts are returned as technology candidates.
func parseProjectTitle(entry *types.ProjectEntry, text string) (types.Confidence, []string) {
	if separatorCount(text) > 0 {
		parts := splitFields(text)
		entry.Title = parts[0]
		var techs []string
		for _, p := range parts[1:] {
			if entry.Date == "" {
				if m, ok := isDateOnly(p); ok {
					entry.Date = m.Range.Raw
					continue
				}
			}
			techs = append(techs, splitList(p)...)
		}
		return types.ConfidenceHigh, techs
	}

	if m, ok := findDate(text); ok {
		tail := strings.TrimRight(text[m.End:], " )]")
		title := trimSeparators(strings.TrimRight(text[:m.Start], " (["))
		if tail == "" && title != "" {
			entry.Title = title
			entry.Date = m.Range.Raw
			return types.ConfidenceMedium, nil
		}
	}
	entry.Title = text
	return types.ConfidenceMedium, nil
}
