package segment

import (
	"testing"

	"github.com/jonathan/resume-extractor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDoc(t *testing.T, text string) types.RawDocument {
	t.Helper()
	doc, err := types.NewRawDocument(text, "txt")
	require.NoError(t, err)
	return doc
}

func labels(sections []types.Section) []types.SectionLabel {
	out := make([]types.SectionLabel, len(sections))
	for i, s := range sections {
		out[i] = s.Label
	}
	return out
}

func TestClassify(t *testing.T) {
	s := New()

	tests := []struct {
		name       string
		line       string
		inPreamble bool
		wantLabel  types.SectionLabel
		wantHeader bool
	}{
		{"plain keyword", "Education", false, types.SectionEducation, true},
		{"upper keyword with colon", "EXPERIENCE:", false, types.SectionExperience, true},
		{"neutral modifier", "Professional Experience", false, types.SectionExperience, true},
		{"work experience", "Work Experience", false, types.SectionExperience, true},
		{"markdown decoration", "## Technical Skills ##", false, types.SectionSkills, true},
		{"longest phrase wins", "Programming Languages", false, types.SectionSkills, true},
		{"languages alone", "Languages", false, types.SectionLanguages, true},
		{"tie-break priority", "Projects & Certifications", false, types.SectionProjects, true},
		{"education beats experience", "Education and Experience", false, types.SectionEducation, true},
		{"summary", "Professional Summary", false, types.SectionSummary, true},
		{"contact heading", "Contact Information", false, types.SectionHeader, true},
		{"keyword in preamble", "SUMMARY", true, types.SectionSummary, true},
		{"unknown uppercase", "VOLUNTEER WORK", false, types.SectionUnknown, true},
		{"uppercase skipped in preamble", "JOHN DOE", true, "", false},
		{"short acronym", "SQL", false, "", false},
		{"mixed case prose", "Software Engineer", false, "", false},
		{"bullet", "• Education", false, "", false},
		{"email", "EDUCATION@EXAMPLE.COM", false, "", false},
		{"pipe", "Experience | 2020", false, "", false},
		{"comma", "Skills, tools", false, "", false},
		{"labelled content", "Skills: Go", false, "", false},
		{"url", "WWW.EXAMPLE.COM", false, "", false},
		{"too long", "EXPERIENCE EXPERIENCE EXPERIENCE EXPERIENCE EXPERIENCE", false, "", false},
		{"digits only", "2019 2020", false, "", false},
		{"blank", "", false, "", false},
		{"decoration only", "-----", false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, ok := s.Classify(tt.line, tt.inPreamble)
			assert.Equal(t, tt.wantHeader, ok)
			assert.Equal(t, tt.wantLabel, label)
		})
	}
}

func TestSegment_Basic(t *testing.T) {
	text := `JOHN DOE
Software Engineer
john.doe@email.com | (555) 123-4567 | San Francisco, CA

SUMMARY
Backend engineer.

EXPERIENCE
Engineer | Acme | 2020 - Present
• Built things


Developer | Beta | 2018 - 2020
• Fixed things

SKILLS
Go, SQL
`
	sections := New().Segment(mustDoc(t, text))
	require.Len(t, sections, 4)
	assert.Equal(t, []types.SectionLabel{
		types.SectionHeader, types.SectionSummary, types.SectionExperience, types.SectionSkills,
	}, labels(sections))

	header := sections[0]
	assert.Empty(t, header.Title)
	assert.Equal(t, 0, header.StartLine)
	assert.Equal(t, []string{
		"JOHN DOE",
		"Software Engineer",
		"john.doe@email.com | (555) 123-4567 | San Francisco, CA",
	}, header.Lines)

	exp := sections[2]
	assert.Equal(t, "EXPERIENCE", exp.Title)
	assert.Equal(t, 8, exp.StartLine)
	assert.Equal(t, []string{
		"Engineer | Acme | 2020 - Present",
		"• Built things",
		"",
		"Developer | Beta | 2018 - 2020",
		"• Fixed things",
	}, exp.Lines, "blank runs collapse to one boundary and edges are trimmed")

	assert.Equal(t, []string{"Go, SQL"}, sections[3].Lines)
}

func TestSegment_NoHeaders(t *testing.T) {
	text := "just some text\nwith no headings\n\nat all"
	sections := New().Segment(mustDoc(t, text))
	require.Len(t, sections, 1)
	assert.Equal(t, types.SectionUnknown, sections[0].Label)
	assert.Equal(t, []string{"just some text", "with no headings", "", "at all"}, sections[0].Lines)
}

func TestSegment_BlankDocument(t *testing.T) {
	assert.Empty(t, New().Segment(mustDoc(t, "  \n\n\t\n")))
}

func TestSegment_DropsEmptyPreamble(t *testing.T) {
	text := "\n\nEDUCATION\nBS Computer Science\n"
	sections := New().Segment(mustDoc(t, text))
	require.Len(t, sections, 1)
	assert.Equal(t, types.SectionEducation, sections[0].Label)
}

func TestSegment_KeepsEmptyTitledSection(t *testing.T) {
	text := "Jane Roe\nSKILLS\nEDUCATION\nBS Math"
	sections := New().Segment(mustDoc(t, text))
	assert.Equal(t, []types.SectionLabel{
		types.SectionHeader, types.SectionSkills, types.SectionEducation,
	}, labels(sections))
	assert.Empty(t, sections[1].Lines)
}

func TestSegment_UnknownUppercaseSection(t *testing.T) {
	text := "Jane Roe\nEXPERIENCE\nDev | Co | 2020\nVOLUNTEERING\nFood bank"
	sections := New().Segment(mustDoc(t, text))
	require.Len(t, sections, 3)
	assert.Equal(t, types.SectionUnknown, sections[2].Label)
	assert.Equal(t, "VOLUNTEERING", sections[2].Title)
}

func TestSegment_CRLF(t *testing.T) {
	text := "Jane Roe\r\nSKILLS\r\nGo\r\n"
	sections := New().Segment(mustDoc(t, text))
	require.Len(t, sections, 2)
	assert.Equal(t, []string{"Go"}, sections[1].Lines)
}

func TestWithVocabulary(t *testing.T) {
	s := New(WithVocabulary(types.SectionProjects, "open source"))
	label, ok := s.Classify("Open Source", false)
	assert.True(t, ok)
	assert.Equal(t, types.SectionProjects, label)

	_, ok = New().Classify("Open Source", false)
	assert.False(t, ok)
}

func TestWithMaxHeaderLength(t *testing.T) {
	s := New(WithMaxHeaderLength(5))
	_, ok := s.Classify("Experience", false)
	assert.False(t, ok)

	label, ok := s.Classify("Skills", false)
	assert.False(t, ok, "six runes exceed the limit")
	assert.Empty(t, label)

	label, ok = s.Classify("SKILL", false)
	assert.True(t, ok)
	assert.Equal(t, types.SectionUnknown, label)
}

func TestStrategies_Order(t *testing.T) {
	assert.Equal(t, []string{"reject", "keyword", "uppercase"}, New().Strategies())
}

func TestStripBullet(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		bullet bool
	}{
		{"• Led team", "Led team", true},
		{"- Led team", "Led team", true},
		{"* Led team", "Led team", true},
		{"-Led team", "-Led team", false},
		{"➢  Shipped", "Shipped", true},
		{"Plain line", "Plain line", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := StripBullet(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.bullet, ok)
		})
	}
}
