package segment

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/resume-extractor/internal/types"
)

// Decision is the outcome of one detection strategy for one line
type Decision int

const (
	// Pass defers to the next strategy
	Pass Decision = iota
	// Header marks the line as a section header with the returned label
	Header
	// Reject marks the line as content; later strategies are skipped
	Reject
)

// Candidate is a trimmed line presented to the detection strategies
type Candidate struct {
	Text       string
	Tokens     []string // lowercased header tokens, surrounding punctuation removed
	InPreamble bool     // true while still inside the implicit leading HEADER block
}

// Strategy is one named header-detection rule
type Strategy struct {
	Name   string
	Detect func(c Candidate) (Decision, types.SectionLabel)
}

// minUppercaseLetters keeps acronyms such as "SQL" or "AWS" from reading as headers
const minUppercaseLetters = 4

var (
	labelledContentPattern = regexp.MustCompile(`:\s*\S`)
	urlPattern             = regexp.MustCompile(`(?i)(https?://|www\.)`)
)

// rejectStrategy filters lines that are structurally content
func rejectStrategy(maxLen int) Strategy {
	return Strategy{
		Name: "reject",
		Detect: func(c Candidate) (Decision, types.SectionLabel) {
			text := c.Text
			switch {
			case text == "",
				len([]rune(text)) > maxLen,
				IsBullet(text),
				strings.ContainsAny(text, "@|,"),
				urlPattern.MatchString(text),
				labelledContentPattern.MatchString(text),
				len(c.Tokens) == 0:
				return Reject, ""
			}
			return Pass, ""
		},
	}
}

// keywordStrategy matches lines made only of vocabulary phrases and neutral words
func keywordStrategy(vocab Vocabulary) Strategy {
	return Strategy{
		Name: "keyword",
		Detect: func(c Candidate) (Decision, types.SectionLabel) {
			labels := vocab.Match(c.Tokens)
			if label, ok := resolve(labels); ok {
				return Header, label
			}
			return Pass, ""
		},
	}
}

// uppercaseStrategy treats unmatched all-caps lines as UNKNOWN section headers
func uppercaseStrategy() Strategy {
	return Strategy{
		Name: "uppercase",
		Detect: func(c Candidate) (Decision, types.SectionLabel) {
			if c.InPreamble {
				return Pass, ""
			}
			letters := 0
			for _, r := range c.Text {
				if unicode.IsLower(r) {
					return Pass, ""
				}
				if unicode.IsLetter(r) {
					letters++
				}
			}
			if letters < minUppercaseLetters {
				return Pass, ""
			}
			return Header, types.SectionUnknown
		},
	}
}

// headerTokens lowercases a line, strips decoration and splits connectors into their own tokens
func headerTokens(line string) []string {
	s := strings.ToLower(strings.TrimSpace(line))
	s = strings.Trim(s, ":#*-_=|.~ \t")
	for _, sep := range []string{"&", "/", "+"} {
		s = strings.ReplaceAll(s, sep, " "+sep+" ")
	}
	return strings.Fields(s)
}

var bulletGlyphs = []string{
	"•", "●", "○", "◦", "▪", "▫", "■", "►", "▶", "→", "➢", "✓", "–", "—", "·",
}

// IsBullet reports whether a trimmed line starts with a bullet marker
func IsBullet(line string) bool {
	_, ok := StripBullet(line)
	return ok
}

// StripBullet removes a leading bullet marker and surrounding whitespace.
// "-" and "*" count as markers only when followed by whitespace.
func StripBullet(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	for _, g := range bulletGlyphs {
		if strings.HasPrefix(trimmed, g) {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, g)), true
		}
	}
	for _, g := range []string{"-", "*"} {
		if strings.HasPrefix(trimmed, g+" ") || strings.HasPrefix(trimmed, g+"\t") {
			return strings.TrimSpace(trimmed[len(g):]), true
		}
	}
	return trimmed, false
}
