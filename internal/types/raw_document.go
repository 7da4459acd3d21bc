package types

import (
	"fmt"
	"strings"
)

// Format tags accepted at the input boundary. The tag names the source the
// text was converted from; it is carried for logging only.
const (
	FormatText     = "txt"
	FormatMarkdown = "md"
	FormatHTML     = "html"
	FormatPDF      = "pdf"
	FormatDOCX     = "docx"
)

var supportedFormats = map[string]string{
	"":         FormatText,
	"txt":      FormatText,
	"text":     FormatText,
	"plain":    FormatText,
	"md":       FormatMarkdown,
	"markdown": FormatMarkdown,
	"html":     FormatHTML,
	"htm":      FormatHTML,
	"pdf":      FormatPDF,
	"docx":     FormatDOCX,
}

// UnsupportedFormatError is returned for format tags the engine does not accept
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document format: %q", e.Format)
}

// NormalizeFormat returns the canonical tag for a format name or an UnsupportedFormatError
func NormalizeFormat(format string) (string, error) {
	key := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
	canonical, ok := supportedFormats[key]
	if !ok {
		return "", &UnsupportedFormatError{Format: format}
	}
	return canonical, nil
}

// RawDocument is plain source text split into lines plus its declared format tag
type RawDocument struct {
	lines  []string
	format string
}

// NewRawDocument splits text into lines (normalizing CRLF and CR line endings)
// and validates the format tag.
func NewRawDocument(text, format string) (RawDocument, error) {
	canonical, err := NormalizeFormat(format)
	if err != nil {
		return RawDocument{}, err
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return RawDocument{lines: strings.Split(text, "\n"), format: canonical}, nil
}

// Lines returns a copy of the document lines
func (d RawDocument) Lines() []string {
	return append([]string(nil), d.lines...)
}

// LineCount returns the number of lines
func (d RawDocument) LineCount() int {
	return len(d.lines)
}

// Format returns the canonical format tag
func (d RawDocument) Format() string {
	return d.format
}

// IsBlank reports whether the document has no non-whitespace content
func (d RawDocument) IsBlank() bool {
	for _, line := range d.lines {
		if strings.TrimSpace(line) != "" {
			return false
		}
	}
	return true
}
