package extraction

import (
	"strings"

	"github.com/jonathan/resume-extractor/internal/segment"
)

// splitEntries groups section lines into entries. A blank line followed by a
// line that is neither a bullet nor a technologies line starts a new entry,
// as does a line accepted by isTitle once the current entry has bullets.
// Blank lines never appear in the output.
func splitEntries(lines []string, isTitle func(string) bool) [][]string {
	var (
		entries      [][]string
		current      []string
		pendingBlank bool
		hasBullets   bool
	)
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			pendingBlank = len(current) > 0
			continue
		}

		bullet := segment.IsBullet(line)
		startsEntry := false
		switch {
		case len(current) == 0, bullet, isTechLine(line):
		case pendingBlank:
			startsEntry = true
		case hasBullets && isTitle(line):
			startsEntry = true
		}

		if startsEntry {
			entries = append(entries, current)
			current = nil
			hasBullets = false
		}
		pendingBlank = false
		current = append(current, line)
		if bullet {
			hasBullets = true
		}
	}
	if len(current) > 0 {
		entries = append(entries, current)
	}
	return entries
}

// appendContinuation joins a wrapped line onto the last item of list
func appendContinuation(list []string, line string) []string {
	if len(list) == 0 {
		return append(list, line)
	}
	list[len(list)-1] = collapse(list[len(list)-1] + " " + line)
	return list
}
