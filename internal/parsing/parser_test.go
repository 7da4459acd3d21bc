package parsing

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-extractor/internal/types"
)

const sampleResume = `JOHN DOE
Software Engineer
john.doe@email.com | (555) 123-4567 | San Francisco, CA

SUMMARY
Backend engineer with eight years of experience building distributed systems.

EXPERIENCE
Senior Engineer | Acme Corp | Jan 2020 - Present
• Led migration to Go
• Cut p99 latency by 40%
Technologies: Go, PostgreSQL, Kubernetes

Software Engineer | Beta Inc | 2017 - 2019
- Built billing APIs
Technologies: Python, Django

EDUCATION
BS Computer Science, Stanford University, 2013 - 2017
GPA: 3.8/4.0

SKILLS
Programming Languages: Python, JavaScript, TypeScript, Java, SQL
Tools: Docker, docker, Git

HOBBIES
Chess
`

func fixedClock() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("PST", -8*3600))
}

func TestParse_FullResume(t *testing.T) {
	p := New(WithClock(fixedClock))

	rec, err := p.ParseText(sampleResume, "txt")
	require.NoError(t, err)

	assert.Equal(t, "John Doe", rec.Contact.Name)
	assert.Equal(t, "john.doe@email.com", rec.Contact.Email)
	assert.Equal(t, "(555) 123-4567", rec.Contact.Phone)
	assert.Equal(t, "San Francisco, CA", rec.Contact.Location)
	for _, name := range []types.ContactFieldName{
		types.ContactName, types.ContactEmail, types.ContactPhone, types.ContactLocation,
	} {
		assert.Equal(t, types.ConfidenceHigh, rec.Confidence.Get(types.ContactField{Name: name}), "contact.%s", name)
	}

	assert.Contains(t, rec.Summary, "distributed systems")

	require.Len(t, rec.Experience, 2)
	assert.Equal(t, "Senior Engineer", rec.Experience[0].Title)
	assert.Equal(t, "Software Engineer", rec.Experience[1].Title)
	assert.Equal(t, []string{"Go", "PostgreSQL", "Kubernetes"}, rec.Experience[0].Technologies)

	require.Len(t, rec.Education, 1)
	require.NotNil(t, rec.Education[0].GPA)
	assert.InDelta(t, 3.8, rec.Education[0].GPA.Value, 0.0001)

	group, ok := rec.FindSkillGroup("Programming Languages")
	require.True(t, ok)
	assert.Equal(t, []string{"Python", "JavaScript", "TypeScript", "Java", "SQL"}, group.Skills)
	tools, ok := rec.FindSkillGroup("Tools")
	require.True(t, ok)
	assert.Equal(t, []string{"Docker", "Git"}, tools.Skills)

	require.Len(t, rec.Warnings, 1)
	assert.Equal(t, types.WarningUnparsedSection, rec.Warnings[0].Code)
	assert.Contains(t, rec.Warnings[0].Message, "HOBBIES")
}

func TestParse_Metadata(t *testing.T) {
	p := New(WithClock(fixedClock))

	rec, err := p.ParseText(sampleResume, "TXT")
	require.NoError(t, err)

	assert.Equal(t, "txt", rec.Metadata.Format)
	assert.Equal(t, []types.SectionLabel{
		types.SectionHeader,
		types.SectionSummary,
		types.SectionExperience,
		types.SectionEducation,
		types.SectionSkills,
		types.SectionUnknown,
	}, rec.Metadata.SectionsFound)
	assert.Equal(t, fixedClock().UTC(), rec.Metadata.ParsedAt)
	assert.Equal(t, time.UTC, rec.Metadata.ParsedAt.Location())
	assert.InDelta(t, 92.5, rec.Metadata.Score, 0.001)
}

func TestParse_Idempotent(t *testing.T) {
	p := New()

	first, err := p.ParseText(sampleResume, "txt")
	require.NoError(t, err)
	second, err := p.ParseText(sampleResume, "txt")
	require.NoError(t, err)

	first.Metadata.ParsedAt = time.Time{}
	second.Metadata.ParsedAt = time.Time{}
	assert.Equal(t, first, second)
}

func TestParse_ConcurrentCallsShareParser(t *testing.T) {
	p := New(WithClock(fixedClock))
	want, err := p.ParseText(sampleResume, "txt")
	require.NoError(t, err)

	const workers = 32
	results := make([]types.ParsedResume, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = p.ParseText(sampleResume, "txt")
		}()
	}
	wg.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
		assert.Equal(t, want, results[i], "worker %d", i)
	}
}

func TestParse_PreservesEntryOrder(t *testing.T) {
	text := strings.Join([]string{
		"EDUCATION",
		"MS Physics, Massachusetts Institute of Technology, 2012",
		"",
		"BA History, Yale University, 2008",
		"",
		"EXPERIENCE",
		"Analyst | Zeta | 2015 - 2016",
		"- Modeled risk",
		"",
		"Engineer | Alpha | 2016 - 2020",
		"- Shipped things",
	}, "\n")

	rec, err := New().ParseText(text, "txt")
	require.NoError(t, err)

	require.Len(t, rec.Education, 2)
	assert.Equal(t, "Massachusetts Institute of Technology", rec.Education[0].Institution)
	assert.Equal(t, "Yale University", rec.Education[1].Institution)

	require.Len(t, rec.Experience, 2)
	assert.Equal(t, "Zeta", rec.Experience[0].Organization)
	assert.Equal(t, "Alpha", rec.Experience[1].Organization)
}

func TestParse_SkillDedupAcrossSections(t *testing.T) {
	text := "SKILLS\nGo, PYTHON, go\n\nTECHNICAL SKILLS\npython, Rust\n"

	rec, err := New().ParseText(text, "txt")
	require.NoError(t, err)

	require.Len(t, rec.Skills, 1)
	assert.Equal(t, types.UncategorizedSkills, rec.Skills[0].Category)
	assert.Equal(t, []string{"Go", "PYTHON", "Rust"}, rec.Skills[0].Skills)
}

func TestParse_MissingEmail(t *testing.T) {
	text := "Jane Roe\n(555) 123-4567\n\nEXPERIENCE\nEngineer | Acme | 2019 - 2021\n- Did work\n"

	rec, err := New().ParseText(text, "txt")
	require.NoError(t, err)

	assert.Empty(t, rec.Contact.Email)
	assert.True(t, types.HasWarning(rec.Warnings, types.WarningMissingEmail))
	assert.False(t, types.HasWarning(rec.Warnings, types.WarningMissingContactInfo))
	assert.True(t, types.HasWarning(rec.Warnings, types.WarningNoEducationFound))
	assert.Equal(t, types.ConfidenceLow, rec.Confidence.Get(types.ContactField{Name: types.ContactEmail}))
}

func TestParse_NoHeadersFallsBackToContact(t *testing.T) {
	text := "Jane Roe\njane@roe.dev\nLikes long walks"

	rec, err := New().ParseText(text, "txt")
	require.NoError(t, err)

	assert.Equal(t, "jane@roe.dev", rec.Contact.Email)
	assert.Equal(t, []types.SectionLabel{types.SectionUnknown}, rec.Metadata.SectionsFound)
	assert.True(t, types.HasWarning(rec.Warnings, types.WarningUnparsedSection))
	assert.NotEqual(t, types.ConfidenceHigh, rec.Confidence.Get(types.ContactField{Name: types.ContactEmail}))
}

func TestParse_EmptyDocument(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace", "  \n\t\n   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().ParseText(tt.text, "md")
			require.Error(t, err)

			var emptyErr *EmptyDocumentError
			require.True(t, errors.As(err, &emptyErr))
			assert.Equal(t, "md", emptyErr.Format)
		})
	}
}

func TestParse_UnsupportedFormat(t *testing.T) {
	_, err := New().ParseText("JOHN DOE", "exe")
	require.Error(t, err)

	var formatErr *UnsupportedFormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, "exe", formatErr.Format)
}

func TestParse_Options(t *testing.T) {
	text := "Jane Roe\njane@roe.dev\n\nSIDE QUESTS\nClimbed a mountain\n"

	rec, err := New().ParseText(text, "txt")
	require.NoError(t, err)
	assert.Empty(t, rec.Projects)

	rec, err = New(WithVocabulary(types.SectionProjects, "side quests")).ParseText(text, "txt")
	require.NoError(t, err)
	require.Len(t, rec.Projects, 1)
	assert.Equal(t, "Climbed a mountain", rec.Projects[0].Title)

	gb := New(WithPhoneRegion("GB"))
	assert.Equal(t, "GB", gb.Normalizer().Validator().Region())
}

func TestParse_LogsWithoutContent(t *testing.T) {
	var buf bytes.Buffer
	p := New(WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))

	_, err := p.ParseText(sampleResume, "txt")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"format":"txt"`)
	assert.Contains(t, out, `"sections":6`)
	assert.NotContains(t, out, "john.doe@email.com")
	assert.NotContains(t, out, "JOHN DOE")
}
