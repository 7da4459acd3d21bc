package extraction

import (
	"testing"

	"github.com/jonathan/resume-extractor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSkills_CategoryLine(t *testing.T) {
	rec := ExtractSkills(section(types.SectionSkills,
		"Programming Languages: Python, JavaScript, TypeScript, Java, SQL",
	), NewRecord())

	group, ok := rec.FindSkillGroup("Programming Languages")
	require.True(t, ok)
	assert.Equal(t, "Programming Languages", group.Category)
	assert.Equal(t, []string{"Python", "JavaScript", "TypeScript", "Java", "SQL"}, group.Skills)
	assert.Equal(t, types.ConfidenceHigh, rec.Confidence.Get(types.SkillGroupField{Category: "Programming Languages"}))
}

func TestExtractSkills_Dedup(t *testing.T) {
	rec := ExtractSkills(section(types.SectionSkills,
		"Languages: Go, python, GO",
		"languages: Python, Rust",
		"Docker, docker, Kubernetes",
		"• Terraform",
	), NewRecord())

	require.Len(t, rec.Skills, 2)
	assert.Equal(t, "Languages", rec.Skills[0].Category)
	assert.Equal(t, []string{"Go", "python", "Rust"}, rec.Skills[0].Skills)
	assert.Equal(t, types.UncategorizedSkills, rec.Skills[1].Category)
	assert.Equal(t, []string{"Docker", "Kubernetes", "Terraform"}, rec.Skills[1].Skills)
	assert.Equal(t, types.ConfidenceMedium, rec.Confidence.Get(types.SkillGroupField{Category: types.UncategorizedSkills}))
}

func TestExtractSkills_CategoryOnItsOwnLine(t *testing.T) {
	rec := ExtractSkills(section(types.SectionSkills,
		"Cloud:",
		"AWS (EC2, S3), GCP",
		"",
		"Excel",
	), NewRecord())

	require.Len(t, rec.Skills, 2)
	assert.Equal(t, "Cloud", rec.Skills[0].Category)
	assert.Equal(t, []string{"AWS (EC2, S3)", "GCP"}, rec.Skills[0].Skills)
	assert.Equal(t, types.ConfidenceHigh, rec.Confidence.Get(types.SkillGroupField{Category: "Cloud"}))
	assert.Equal(t, []string{"Excel"}, rec.Skills[1].Skills)
}

func TestExtractCertifications(t *testing.T) {
	rec := ExtractCertifications(section(types.SectionCertifications,
		"• AWS Certified Solutions Architect (2022)",
		"CKA | Linux Foundation | 2021",
		"PMP, 2019",
		"Scrum Master",
	), NewRecord())
	require.Len(t, rec.Certifications, 4)

	tests := []struct {
		name     string
		issuer   string
		year     *int
		yearConf types.Confidence
	}{
		{"AWS Certified Solutions Architect", "", types.IntPtr(2022), types.ConfidenceHigh},
		{"CKA", "Linux Foundation", types.IntPtr(2021), types.ConfidenceHigh},
		{"PMP", "", types.IntPtr(2019), types.ConfidenceMedium},
		{"Scrum Master", "", nil, types.ConfidenceLow},
	}
	for i, tt := range tests {
		c := rec.Certifications[i]
		assert.Equal(t, tt.name, c.Name)
		assert.Equal(t, tt.issuer, c.Issuer)
		assert.Equal(t, tt.year, c.Year)
		assert.Equal(t, tt.yearConf, rec.Confidence.Get(types.CertificationField{Index: i, Name: types.CertificationYear}))
	}
}

func TestExtractLanguages(t *testing.T) {
	rec := ExtractLanguages(section(types.SectionLanguages,
		"English (Native), Spanish (Professional, C1), french",
		"Spanish (Basic)",
	), NewRecord())

	assert.Equal(t, []types.Language{
		{Name: "English", Proficiency: "Native"},
		{Name: "Spanish", Proficiency: "Professional, C1"},
		{Name: "french"},
	}, rec.Languages)
	assert.Equal(t, types.ConfidenceHigh, rec.Confidence.Get(types.LanguagesField{}))
}

func TestExtractLanguages_RelaxedProficiency(t *testing.T) {
	rec := ExtractLanguages(section(types.SectionLanguages, "German - Fluent", "Japanese: Conversational"), NewRecord())
	assert.Equal(t, []types.Language{
		{Name: "German", Proficiency: "Fluent"},
		{Name: "Japanese", Proficiency: "Conversational"},
	}, rec.Languages)
	assert.Equal(t, types.ConfidenceMedium, rec.Confidence.Get(types.LanguagesField{}))
}

func TestExtractSummary(t *testing.T) {
	rec := ExtractSummary(section(types.SectionSummary, "Backend engineer with", "", "ten years   of experience."), NewRecord())
	assert.Equal(t, "Backend engineer with ten years of experience.", rec.Summary)
	assert.Equal(t, types.ConfidenceHigh, rec.Confidence.Get(types.SummaryField{}))
}

func TestParseLanguage_RoundTrip(t *testing.T) {
	for _, item := range []string{"Spanish (Native)", "French", "German (B2, conversational)"} {
		assert.Equal(t, item, FormatLanguage(ParseLanguage(item)))
	}
	assert.Equal(t, types.Language{Name: "Italian", Proficiency: "Basic"}, ParseLanguage(" Italian: Basic "))
}
