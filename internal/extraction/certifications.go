package extraction

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-extractor/internal/segment"
	"github.com/jonathan/resume-extractor/internal/types"
)

var (
	parenYearPattern    = regexp.MustCompile(`\(\s*((?:19|20)\d{2})\s*\)\s*$`)
	trailingYearPattern = regexp.MustCompile(`^(.*?)\s*[,\-–—]\s*((?:19|20)\d{2})$`)
	yearOnlyPattern     = regexp.MustCompile(`^(?:19|20)\d{2}$`)
)

// ExtractCertifications extracts one CertificationEntry per non-empty line
func ExtractCertifications(sec types.Section, rec types.ParsedResume) types.ParsedResume {
	for _, line := range sec.Lines {
		text, _ := segment.StripBullet(line)
		if text == "" {
			continue
		}
		rec = appendCertification(rec, text)
	}
	return rec
}

func appendCertification(rec types.ParsedResume, text string) types.ParsedResume {
	idx := len(rec.Certifications)
	path := func(name types.CertificationFieldName) types.CertificationField {
		return types.CertificationField{Index: idx, Name: name}
	}

	var (
		entry      types.CertificationEntry
		yearConf   = types.ConfidenceLow
		issuerConf = types.ConfidenceLow
	)

	rest := text
	if m := parenYearPattern.FindStringSubmatchIndex(rest); m != nil {
		entry.Year = yearOf(rest[m[2]:m[3]])
		yearConf = types.ConfidenceHigh
		rest = strings.TrimSpace(rest[:m[0]])
	}

	if separatorCount(rest) > 0 {
		parts := splitFields(rest)
		if last := parts[len(parts)-1]; entry.Year == nil && len(parts) > 1 && yearOnlyPattern.MatchString(last) {
			entry.Year = yearOf(last)
			yearConf = types.ConfidenceHigh
			parts = parts[:len(parts)-1]
		}
		rest = parts[0]
		if len(parts) > 1 {
			entry.Issuer = strings.Join(parts[1:], ", ")
			issuerConf = types.ConfidenceHigh
		}
	} else if entry.Year == nil {
		if m := trailingYearPattern.FindStringSubmatch(rest); m != nil && strings.TrimSpace(m[1]) != "" {
			entry.Year = yearOf(m[2])
			yearConf = types.ConfidenceMedium
			rest = m[1]
		}
	}

	entry.Name = trimSeparators(rest)
	if entry.Name == "" {
		entry.Name = collapse(text)
	}

	rec.Confidence.Set(path(types.CertificationName), types.ConfidenceHigh)
	rec.Confidence.Set(path(types.CertificationIssuer), issuerConf)
	rec.Confidence.Set(path(types.CertificationYear), yearConf)
	rec.Certifications = append(rec.Certifications, entry)
	return rec
}
