package extraction

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-extractor/internal/segment"
)

var (
	// pieceSeparator splits contact-style lines into independent tokens
	pieceSeparator = regexp.MustCompile(`\s*(?:[|│¦•·\t]|\s{2,})\s*`)
	// fieldSeparator splits pipe-delimited title lines. Dots and bullets only
	// count mid-line, surrounded by spaces.
	fieldSeparator = regexp.MustCompile(`\s*[|│¦]\s*|\s+[•·]\s+`)
	techLabel      = regexp.MustCompile(`(?i)^(?:technologies|technology|tech stack|tech|tools|stack|built with|environment)\s*:\s*(.*)$`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
	emptyBrackets  = regexp.MustCompile(`\(\s*\)|\[\s*\]`)
)

// splitPieces splits a line on contact-style separators and drops empty pieces
func splitPieces(line string) []string {
	return nonEmpty(pieceSeparator.Split(strings.TrimSpace(line), -1))
}

// splitFields splits a title line on pipe-equivalent separators
func splitFields(line string) []string {
	return nonEmpty(fieldSeparator.Split(strings.TrimSpace(line), -1))
}

// separatorCount counts pipe-equivalent separators in a line
func separatorCount(line string) int {
	return len(fieldSeparator.FindAllStringIndex(strings.TrimSpace(line), -1))
}

// splitList splits a comma-separated item list, trimming each item
func splitList(s string) []string {
	items := strings.Split(s, ",")
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(item), "."))
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// techList returns the comma-split items of a "Technologies:" style line
func techList(line string) ([]string, bool) {
	text, _ := segment.StripBullet(line)
	m := techLabel.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return splitList(m[1]), true
}

func isTechLine(line string) bool {
	_, ok := techList(line)
	return ok
}

// trimSeparators strips leftover punctuation after a token was cut from a string
func trimSeparators(s string) string {
	s = collapse(emptyBrackets.ReplaceAllString(s, ""))
	return strings.TrimSpace(strings.Trim(s, " ,;:|-–—"))
}

// collapse trims s and replaces internal whitespace runs with a single space
func collapse(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

func nonEmpty(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// dedupFold removes case-insensitive duplicates, keeping the first casing
func dedupFold(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

// blocks splits lines into runs separated by blank lines
func blocks(lines []string) [][]string {
	var out [][]string
	var current []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				out = append(out, current)
				current = nil
			}
			continue
		}
		current = append(current, strings.TrimSpace(line))
	}
	if len(current) > 0 {
		out = append(out, current)
	}
	return out
}
