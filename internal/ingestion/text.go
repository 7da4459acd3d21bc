// Package ingestion turns resume sources (files, pasted text, web pages) into
// cleaned line text ready for parsing.
package ingestion

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

var excessBlankLines = regexp.MustCompile(`\n{3,}`)

// CleanText normalizes line endings and invisible characters while preserving
// line structure. Runs of spaces inside a line are kept: two or more spaces
// separate fields in many plain-text resumes.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := strings.Join(lines, "\n")
	result = excessBlankLines.ReplaceAllString(result, "\n\n")
	return strings.Trim(result, "\n")
}

// cleanLine drops invisible characters and trailing whitespace
func cleanLine(line string) string {
	line = strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return r
		case r == '\u00a0' || r == '\u2007' || r == '\u202f':
			return ' '
		case r == '\u200b' || r == '\u200c' || r == '\u200d' || r == '\u2060' || r == '\ufeff':
			return -1
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, line)

	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}
	return line
}

// markdownExtensions keep each source line on its own output line and let a
// list follow a title line without a blank line in between
const markdownExtensions = parser.NoIntraEmphasis | parser.Tables | parser.FencedCode |
	parser.Autolink | parser.Strikethrough | parser.SpaceHeadings |
	parser.HardLineBreak | parser.NoEmptyLineBeforeBlock

// MarkdownToText renders Markdown to HTML and converts that to line text.
// Headings lose their markers, emphasis is dropped, list items become
// "• " bullets and links keep their web or mail address.
func MarkdownToText(content string) (string, error) {
	p := parser.NewWithExtensions(markdownExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.FlagsNone})
	return HTMLToText(string(markdown.ToHTML([]byte(content), p, renderer)))
}
