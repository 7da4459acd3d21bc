package extraction

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonathan/resume-extractor/internal/types"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9\-]+(?:\.[A-Za-z0-9\-]+)*\.[A-Za-z]{2,}`)

	// phonePatterns are tried in order; the first match wins
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\(\d{3}\)\s*\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`\+\d{1,3}[\s.\-]?\d{3}[\s.\-]?\d{3}[\s.\-]?\d{4}`),
		regexp.MustCompile(`\b\d{3}-\d{3}-\d{4}\b`),
		regexp.MustCompile(`\b\d{3}\.\d{3}\.\d{4}\b`),
		regexp.MustCompile(`\b\d{3} \d{3} \d{4}\b`),
		regexp.MustCompile(`\+?\b\d{10,15}\b`),
	}

	cityStatePattern   = regexp.MustCompile(`^[A-Z][A-Za-z.'\-]*(?:\s+[A-Z][A-Za-z.'\-]*){0,3},\s*[A-Z]{2}$`)
	cityCountryPattern = regexp.MustCompile(`^[A-Z][A-Za-z.'\-]*(?:\s+[A-Z][A-Za-z.'\-]*){0,3},\s*[A-Z][A-Za-z]+(?:\s+[A-Z][A-Za-z]+){0,2}$`)
	urlTokenPattern    = regexp.MustCompile(`(?i)^(?:https?://|www\.)\S+$`)
	contactLabel       = regexp.MustCompile(`(?i)^(?:email|e-mail|phone|tel|telephone|mobile|cell|location|address|linkedin|github|website|web|portfolio)\s*:\s*`)
	nameWordPattern    = regexp.MustCompile(`^\p{L}[\p{L}.'\-]*$`)
)

// linkDomains are professional-network domain fragments recognized as profile links
var linkDomains = []string{
	"linkedin.com", "github.com", "gitlab.com", "bitbucket.org", "stackoverflow.com",
	"twitter.com", "x.com", "medium.com", "behance.net", "dribbble.com", "kaggle.com",
}

type locationCandidate struct {
	text   string
	line   int
	strict bool // City, ST rather than City, Country
}

type contactScan struct {
	info       types.ContactInfo
	confidence map[types.ContactFieldName]types.Confidence
}

// ExtractContact extracts contact details from a HEADER section
func ExtractContact(sec types.Section, rec types.ParsedResume) types.ParsedResume {
	return mergeContact(rec, scanContact(sec.Lines), types.ConfidenceHigh)
}

// ExtractContactFallback extracts contact details from an UNKNOWN section
// with every confidence capped at MEDIUM. It is used when a document has no
// HEADER section.
func ExtractContactFallback(sec types.Section, rec types.ParsedResume) types.ParsedResume {
	return mergeContact(rec, scanContact(sec.Lines), types.ConfidenceMedium)
}

func scanContact(lines []string) contactScan {
	scan := contactScan{confidence: make(map[types.ContactFieldName]types.Confidence)}

	var (
		nameLine    = -1
		firstLine   = -1
		contactLine = make(map[int]bool)
		locations   []locationCandidate
		seenLinks   = make(map[string]struct{})
	)

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if firstLine < 0 {
			firstLine = i
		}
		for _, piece := range splitPieces(line) {
			piece = contactLabel.ReplaceAllString(piece, "")
			matched := false

			if email := emailPattern.FindString(piece); email != "" {
				matched = true
				if scan.info.Email == "" {
					scan.info.Email = email
				}
			}
			if phone := findPhone(piece); phone != "" {
				matched = true
				if scan.info.Phone == "" {
					scan.info.Phone = collapse(phone)
				}
			}
			for _, link := range findLinks(piece) {
				matched = true
				if _, ok := seenLinks[link]; !ok {
					seenLinks[link] = struct{}{}
					scan.info.Links = append(scan.info.Links, link)
				}
			}
			if matched {
				contactLine[i] = true
				continue
			}

			switch {
			case cityStatePattern.MatchString(piece):
				locations = append(locations, locationCandidate{text: piece, line: i, strict: true})
			case scan.info.Name == "" && looksLikeName(piece):
				scan.info.Name = piece
				nameLine = i
			case cityCountryPattern.MatchString(piece):
				locations = append(locations, locationCandidate{text: piece, line: i})
			}
		}
	}

	hasStrictContact := scan.info.Email != "" || scan.info.Phone != ""

	if scan.info.Email != "" {
		scan.confidence[types.ContactEmail] = types.ConfidenceHigh
	}
	if scan.info.Phone != "" {
		scan.confidence[types.ContactPhone] = types.ConfidenceHigh
	}
	if len(scan.info.Links) > 0 {
		scan.confidence[types.ContactLinks] = types.ConfidenceHigh
	}

	if scan.info.Name != "" {
		name := scan.info.Name
		if name == strings.ToUpper(name) || name == strings.ToLower(name) {
			// Casers are stateful and must not be shared across goroutines.
			name = cases.Title(language.English).String(name)
		}
		scan.info.Name = name
		words := strings.Fields(name)
		if nameLine == firstLine && hasStrictContact && len(words) >= 2 && len(words) <= 4 {
			scan.confidence[types.ContactName] = types.ConfidenceHigh
		} else {
			scan.confidence[types.ContactName] = types.ConfidenceMedium
		}
	}

	for _, loc := range locations {
		adjacent := contactLine[loc.line-1] || contactLine[loc.line+1]
		switch {
		case loc.strict && contactLine[loc.line]:
			scan.info.Location = loc.text
			scan.confidence[types.ContactLocation] = types.ConfidenceHigh
		case loc.strict, contactLine[loc.line] || adjacent:
			scan.info.Location = loc.text
			scan.confidence[types.ContactLocation] = types.ConfidenceMedium
		default:
			continue
		}
		break
	}

	return scan
}

// mergeContact fills contact fields that are still empty in rec and records
// their confidence capped at limit. Missing fields are recorded as LOW.
func mergeContact(rec types.ParsedResume, scan contactScan, limit types.Confidence) types.ParsedResume {
	c := &rec.Contact
	fill := func(name types.ContactFieldName, dst *string, value string) {
		path := types.ContactField{Name: name}
		if *dst == "" && value != "" {
			*dst = value
			rec.Confidence.Set(path, scan.confidence[name].Min(limit))
			return
		}
		if *dst == "" {
			rec.Confidence.Set(path, types.ConfidenceLow)
		}
	}
	fill(types.ContactName, &c.Name, scan.info.Name)
	fill(types.ContactEmail, &c.Email, scan.info.Email)
	fill(types.ContactPhone, &c.Phone, scan.info.Phone)
	fill(types.ContactLocation, &c.Location, scan.info.Location)

	linksPath := types.ContactField{Name: types.ContactLinks}
	before := len(c.Links)
	for _, link := range scan.info.Links {
		if !containsExact(c.Links, link) {
			c.Links = append(c.Links, link)
		}
	}
	switch {
	case len(c.Links) > before:
		level := scan.confidence[types.ContactLinks].Min(limit)
		if before > 0 {
			level = level.Min(rec.Confidence.Get(linksPath))
		}
		rec.Confidence.Set(linksPath, level)
	case len(c.Links) == 0:
		rec.Confidence.Set(linksPath, types.ConfidenceLow)
	}
	return rec
}

func findPhone(s string) string {
	for _, p := range phonePatterns {
		if m := p.FindString(s); m != "" {
			return m
		}
	}
	return ""
}

// findLinks returns whitespace-separated tokens that are URLs or contain a known profile domain
func findLinks(s string) []string {
	var out []string
	for _, token := range strings.Fields(s) {
		token = contactLabel.ReplaceAllString(token, "")
		token = strings.TrimRight(token, ",;)")
		token = strings.TrimLeft(token, "(<")
		token = strings.TrimRight(token, ">")
		if token == "" || strings.Contains(token, "@") {
			continue
		}
		if urlTokenPattern.MatchString(token) || hasLinkDomain(token) {
			out = append(out, token)
		}
	}
	return out
}

func hasLinkDomain(token string) bool {
	lower := strings.ToLower(token)
	for _, domain := range linkDomains {
		idx := strings.Index(lower, domain)
		if idx < 0 {
			continue
		}
		// "x.com" must not match inside "linux.com" or "box.com"
		if idx == 0 || strings.ContainsRune("./:", rune(lower[idx-1])) {
			return true
		}
	}
	return false
}

// looksLikeName accepts short alphabetic pieces without digits or contact syntax
func looksLikeName(piece string) bool {
	words := strings.Fields(piece)
	if len(words) == 0 || len(words) > 6 {
		return false
	}
	for _, w := range words {
		if !nameWordPattern.MatchString(strings.TrimRight(w, ",")) {
			return false
		}
	}
	return true
}

func containsExact(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
