// Package segment splits raw resume text into labeled sections.
//
// Header detection runs a fixed, ordered list of named strategies over each
// line. The first strategy that returns Header or Reject decides; a line no
// strategy claims is section content.
package segment

import (
	"strings"

	"github.com/jonathan/resume-extractor/internal/types"
)

// DefaultMaxHeaderLength is the longest line, in runes, that can be a section header
const DefaultMaxHeaderLength = 40

// Segmenter splits documents into sections. It holds no per-document state
// and is safe for concurrent use.
type Segmenter struct {
	maxHeaderLength int
	extra           map[types.SectionLabel][]string
	strategies      []Strategy
}

// Option configures a Segmenter
type Option func(*Segmenter)

// WithMaxHeaderLength overrides DefaultMaxHeaderLength
func WithMaxHeaderLength(n int) Option {
	return func(s *Segmenter) {
		if n > 0 {
			s.maxHeaderLength = n
		}
	}
}

// WithVocabulary adds header phrases for a label
func WithVocabulary(label types.SectionLabel, phrases ...string) Option {
	return func(s *Segmenter) {
		s.extra[label] = append(s.extra[label], phrases...)
	}
}

// New creates a Segmenter with the default strategies
func New(opts ...Option) *Segmenter {
	s := &Segmenter{
		maxHeaderLength: DefaultMaxHeaderLength,
		extra:           make(map[types.SectionLabel][]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	vocab := NewVocabulary(s.extra)
	s.strategies = []Strategy{
		rejectStrategy(s.maxHeaderLength),
		keywordStrategy(vocab),
		uppercaseStrategy(),
	}
	return s
}

// Strategies returns the strategy names in evaluation order
func (s *Segmenter) Strategies() []string {
	names := make([]string, len(s.strategies))
	for i, st := range s.strategies {
		names[i] = st.Name
	}
	return names
}

// Classify reports whether line is a section header and, if so, its label
func (s *Segmenter) Classify(line string, inPreamble bool) (types.SectionLabel, bool) {
	c := Candidate{
		Text:       strings.TrimSpace(line),
		Tokens:     headerTokens(line),
		InPreamble: inPreamble,
	}
	for _, st := range s.strategies {
		decision, label := st.Detect(c)
		switch decision {
		case Header:
			return label, true
		case Reject:
			return "", false
		}
	}
	return "", false
}

// Segment splits the document into ordered sections. Lines before the first
// header form the HEADER section. A document without any recognizable header
// becomes a single UNKNOWN section.
func (s *Segmenter) Segment(doc types.RawDocument) []types.Section {
	lines := doc.Lines()

	var sections []types.Section
	current := types.Section{Label: types.SectionHeader}
	preamble := true

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if label, ok := s.Classify(line, preamble); ok {
			if sec, keep := finish(current, preamble); keep {
				sections = append(sections, sec)
			}
			current = types.Section{Label: label, Title: line, StartLine: i + 1}
			preamble = false
			continue
		}
		current.Lines = append(current.Lines, line)
	}

	if preamble {
		current.Label = types.SectionUnknown
		if current.IsEmpty() {
			return nil
		}
		sec, _ := finish(current, false)
		return []types.Section{sec}
	}

	if sec, keep := finish(current, false); keep {
		sections = append(sections, sec)
	}
	return sections
}

// finish trims blank edges and collapses blank runs. The implicit leading
// block is dropped when empty; titled sections are kept even with no content.
func finish(sec types.Section, preamble bool) (types.Section, bool) {
	start := 0
	for start < len(sec.Lines) && sec.Lines[start] == "" {
		start++
	}
	end := len(sec.Lines)
	for end > start && sec.Lines[end-1] == "" {
		end--
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		if sec.Lines[i] == "" && len(lines) > 0 && lines[len(lines)-1] == "" {
			continue
		}
		lines = append(lines, sec.Lines[i])
	}

	sec.StartLine += start
	sec.Lines = lines
	if preamble && len(lines) == 0 {
		return sec, false
	}
	return sec, true
}
