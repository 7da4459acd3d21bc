// Package parsing assembles the resume extraction pipeline: segmentation,
// per-section extraction and normalization, producing one ParsedResume.
package parsing

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-extractor/internal/extraction"
	"github.com/jonathan/resume-extractor/internal/normalize"
	"github.com/jonathan/resume-extractor/internal/segment"
	"github.com/jonathan/resume-extractor/internal/types"
)

// Parser turns raw resume text into a ParsedResume. A Parser is immutable
// after construction; concurrent Parse calls share no writable state.
type Parser struct {
	segmenter  *segment.Segmenter
	normalizer *normalize.Normalizer
	logger     zerolog.Logger
	now        func() time.Time
}

// Option configures a Parser
type Option func(*options)

type options struct {
	segmentOpts   []segment.Option
	normalizeOpts []normalize.Option
	logger        zerolog.Logger
	now           func() time.Time
}

// WithLogger sets the logger used for per-run debug events
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock overrides the clock used for Metadata.ParsedAt
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithMaxHeaderLength sets the longest line that can be a section header
func WithMaxHeaderLength(n int) Option {
	return func(o *options) { o.segmentOpts = append(o.segmentOpts, segment.WithMaxHeaderLength(n)) }
}

// WithVocabulary adds section header phrases for a label
func WithVocabulary(label types.SectionLabel, phrases ...string) Option {
	return func(o *options) { o.segmentOpts = append(o.segmentOpts, segment.WithVocabulary(label, phrases...)) }
}

// WithPhoneRegion sets the region used to validate national phone numbers
func WithPhoneRegion(region string) Option {
	return func(o *options) { o.normalizeOpts = append(o.normalizeOpts, normalize.WithPhoneRegion(region)) }
}

// New creates a Parser
func New(opts ...Option) *Parser {
	o := options{logger: zerolog.Nop(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Parser{
		segmenter:  segment.New(o.segmentOpts...),
		normalizer: normalize.New(o.normalizeOpts...),
		logger:     o.logger,
		now:        o.now,
	}
}

// Normalizer returns the normalizer the parser uses, so that correction
// sessions can validate edits with the same rules.
func (p *Parser) Normalizer() *normalize.Normalizer {
	return p.normalizer
}

// ParseText builds a RawDocument from text and parses it
func (p *Parser) ParseText(text, format string) (types.ParsedResume, error) {
	doc, err := types.NewRawDocument(text, format)
	if err != nil {
		return types.ParsedResume{}, err
	}
	return p.Parse(doc)
}

// Parse runs the pipeline over doc. The only errors are EmptyDocumentError;
// every other irregularity is reported in the record's Warnings.
func (p *Parser) Parse(doc types.RawDocument) (types.ParsedResume, error) {
	if doc.IsBlank() {
		return types.ParsedResume{}, &EmptyDocumentError{Format: doc.Format()}
	}

	sections := p.segmenter.Segment(doc)
	rec := extraction.Run(sections)

	var unparsed []types.Section
	for _, sec := range sections {
		if sec.Label == types.SectionUnknown {
			unparsed = append(unparsed, sec)
		}
	}
	rec = p.normalizer.Normalize(rec, unparsed)

	rec.Metadata = types.Metadata{
		Format:        doc.Format(),
		SectionsFound: sectionLabels(sections),
		Score:         normalize.Score(&rec),
		ParsedAt:      p.now().UTC(),
	}

	p.logger.Debug().
		Str("format", doc.Format()).
		Int("lines", doc.LineCount()).
		Int("sections", len(sections)).
		Int("warnings", len(rec.Warnings)).
		Float64("score", rec.Metadata.Score).
		Msg("parsed resume")

	return rec, nil
}

// sectionLabels lists the distinct labels in order of first appearance
func sectionLabels(sections []types.Section) []types.SectionLabel {
	seen := make(map[types.SectionLabel]bool, len(sections))
	out := make([]types.SectionLabel, 0, len(sections))
	for _, sec := range sections {
		if !seen[sec.Label] {
			seen[sec.Label] = true
			out = append(out, sec.Label)
		}
	}
	return out
}
