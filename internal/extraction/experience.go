package extraction

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-extractor/internal/normalize"
	"github.com/jonathan/resume-extractor/internal/segment"
	"github.com/jonathan/resume-extractor/internal/types"
)

// minTitleSeparators is how many pipe-equivalent separators make a structured title line
const minTitleSeparators = 2

// atSeparator splits "Title at Org" and "Title @ Org" lines
var atSeparator = regexp.MustCompile(`(?i)\s+(?:at|@)\s+`)

func isExperienceTitle(line string) bool {
	return separatorCount(line) >= minTitleSeparators
}

// ExtractExperience extracts one ExperienceEntry per entry of the section
func ExtractExperience(sec types.Section, rec types.ParsedResume) types.ParsedResume {
	for _, lines := range splitEntries(sec.Lines, isExperienceTitle) {
		rec = appendExperience(rec, lines)
	}
	return rec
}

type experienceConfidence struct {
	title, organization, location, dates types.Confidence
}

func appendExperience(rec types.ParsedResume, lines []string) types.ParsedResume {
	idx := len(rec.Experience)
	path := func(name types.ExperienceFieldName) types.ExperienceField {
		return types.ExperienceField{Index: idx, Name: name}
	}

	var (
		entry     types.ExperienceEntry
		conf      experienceConfidence
		titleDone bool
		inBullets bool
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
				entry.Achievements = append(entry.Achievements, text)
				inBullets = true
			}
		case !titleDone:
			var warning *types.Warning
			conf, warning = parseExperienceTitle(&entry, text, path(types.ExperienceDates))
			if warning != nil {
				rec.Warnings = append(rec.Warnings, *warning)
			}
			titleDone = true
		case inBullets:
			entry.Achievements = appendContinuation(entry.Achievements, text)
		default:
			fillExperienceDetail(&entry, &conf, text)
		}
	}

	entry.Technologies = dedupFold(entry.Technologies)
	if entry.Achievements == nil {
		entry.Achievements = []string{}
	}

	rec.Confidence.Set(path(types.ExperienceTitle), conf.title)
	rec.Confidence.Set(path(types.ExperienceOrganization), conf.organization)
	rec.Confidence.Set(path(types.ExperienceLocation), conf.location)
	rec.Confidence.Set(path(types.ExperienceDates), conf.dates)
	rec.Confidence.Set(path(types.ExperienceAchievements), presence(len(entry.Achievements)))
	rec.Confidence.Set(path(types.ExperienceTechnologies), presence(len(entry.Technologies)))
	rec.Experience = append(rec.Experience, entry)
	return rec
}

// parseExperienceTitle fills title, organization, dates and location from the
// entry's first non-bullet line. A structured line whose date part cannot be
// parsed keeps the raw text and yields a MalformedField warning.
func parseExperienceTitle(entry *types.ExperienceEntry, text string, datesPath types.FieldPath) (experienceConfidence, *types.Warning) {
	conf := experienceConfidence{}
	if !isExperienceTitle(text) {
		return parseLooseTitle(entry, text), nil
	}

	parts := splitFields(text)
	entry.Title = parts[0]
	entry.Organization = parts[1]
	conf.title = types.ConfidenceHigh
	conf.organization = types.ConfidenceHigh

	rest := parts[2:]
	dateIdx := -1
	for i, p := range rest {
		if m, ok := findDate(p); ok {
			d := m.Range
			d.Raw = p
			entry.Dates = &d
			conf.dates = types.ConfidenceHigh
			dateIdx = i
			break
		}
	}

	var locations []string
	var warning *types.Warning
	for i, p := range rest {
		switch {
		case i == dateIdx:
		case dateIdx < 0 && i == 0 && !looksLikeLocation(p):
			entry.Dates = &types.DateRange{Raw: p}
			conf.dates = types.ConfidenceLow
			w := types.MalformedField(datesPath, normalize.UnrecognizedDateMessage(p))
			warning = &w
		default:
			locations = append(locations, p)
		}
	}
	if len(locations) > 0 {
		entry.Location = strings.Join(locations, ", ")
		conf.location = types.ConfidenceHigh
	}
	return conf, warning
}

// parseLooseTitle handles title lines without pipe separators:
// "Title at Org[, Location][, dates]" and "Title, Org[, Location], dates".
// The comma form needs a date so "Director, Engineering" stays a title.
// Fields found this way are MEDIUM.
func parseLooseTitle(entry *types.ExperienceEntry, text string) experienceConfidence {
	conf := experienceConfidence{title: types.ConfidenceMedium}

	rest := text
	dated := false
	if m, ok := findDate(text); ok {
		d := m.Range
		entry.Dates = &d
		conf.dates = types.ConfidenceMedium
		rest = removeSpan(text, m.Start, m.End)
		dated = rest != ""
	}

	var title string
	var tail []string
	if loc := atSeparator.FindStringIndex(rest); loc != nil && loc[0] > 0 {
		title = rest[:loc[0]]
		tail = nonEmpty(strings.Split(rest[loc[1]:], ","))
	} else if parts := nonEmpty(strings.Split(rest, ",")); dated && len(parts) >= 2 {
		title, tail = parts[0], parts[1:]
	} else {
		entry.Title = trimSeparators(rest)
		if entry.Title == "" {
			entry.Title = text
		}
		return conf
	}

	entry.Title = trimSeparators(title)
	if len(tail) > 0 {
		entry.Organization = tail[0]
		conf.organization = types.ConfidenceMedium
	}
	if len(tail) > 1 {
		if loc := strings.Join(tail[1:], ", "); looksLikeLocation(loc) {
			entry.Location = loc
			conf.location = types.ConfidenceMedium
		}
	}
	return conf
}

// fillExperienceDetail handles a non-bullet line between the title line and
// the first bullet. It may supply dates, organization or location; anything
// else is kept as an achievement.
func fillExperienceDetail(entry *types.ExperienceEntry, conf *experienceConfidence, text string) {
	var extra []string
	for _, field := range splitFields(text) {
		if entry.Dates == nil {
			if m, ok := findDate(field); ok {
				d := m.Range
				entry.Dates = &d
				conf.dates = types.ConfidenceMedium
				field = removeSpan(field, m.Start, m.End)
			}
		}
		switch {
		case field == "":
		case entry.Organization == "" && !looksLikeLocation(field):
			entry.Organization = field
			conf.organization = types.ConfidenceMedium
		case entry.Location == "" && looksLikeLocation(field):
			entry.Location = field
			conf.location = types.ConfidenceMedium
		default:
			extra = append(extra, field)
		}
	}
	if len(extra) > 0 {
		entry.Achievements = append(entry.Achievements, strings.Join(extra, " | "))
	}
}

func looksLikeLocation(s string) bool {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "remote") || strings.EqualFold(s, "hybrid") {
		return true
	}
	return cityStatePattern.MatchString(s) || cityCountryPattern.MatchString(s)
}

// presence is HIGH for a populated list and LOW for an empty one
func presence(n int) types.Confidence {
	if n > 0 {
		return types.ConfidenceHigh
	}
	return types.ConfidenceLow
}
