package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResume() ParsedResume {
	start, end := 2019, 2023
	rec := ParsedResume{
		Contact: ContactInfo{Name: "Jane Roe", Email: "jane@roe.dev", Links: []string{"github.com/janeroe"}},
		Experience: []ExperienceEntry{{
			Title:        "Staff Engineer",
			Organization: "Initech",
			Dates:        &DateRange{Raw: "2019 - 2023", StartYear: &start, EndYear: &end},
			Achievements: []string{"Ran the platform team"},
		}},
		Skills: []SkillGroup{
			{Category: "Languages", Skills: []string{"Go", "Python"}},
			{Category: UncategorizedSkills, Skills: []string{"go", "Terraform"}},
		},
		Confidence: ConfidenceMap{"contact.email": ConfidenceHigh},
		Metadata:   Metadata{Format: FormatText, ParsedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
	}
	rec.EnsureCollections()
	return rec
}

func TestParsedResume_CloneIsDeep(t *testing.T) {
	rec := sampleResume()
	clone := rec.Clone()
	require.Equal(t, rec, clone)

	clone.Contact.Links[0] = "changed"
	*clone.Experience[0].Dates.StartYear = 1999
	clone.Experience[0].Achievements[0] = "changed"
	clone.Skills[0].Skills[0] = "changed"
	clone.Confidence["contact.email"] = ConfidenceLow

	assert.Equal(t, "github.com/janeroe", rec.Contact.Links[0])
	assert.Equal(t, 2019, *rec.Experience[0].Dates.StartYear)
	assert.Equal(t, "Ran the platform team", rec.Experience[0].Achievements[0])
	assert.Equal(t, "Go", rec.Skills[0].Skills[0])
	assert.Equal(t, ConfidenceHigh, rec.Confidence["contact.email"])
}

func TestParsedResume_JSONRoundTrip(t *testing.T) {
	rec := sampleResume()
	data, err := MarshalResume(&rec)
	require.NoError(t, err)

	got, err := UnmarshalResume(data)
	require.NoError(t, err)
	assert.Equal(t, rec, *got)
}

func TestUnmarshalResume_RestoresCollections(t *testing.T) {
	got, err := UnmarshalResume([]byte(`{"contact": {"name": ""}, "experience": [{"title": "Dev"}]}`))
	require.NoError(t, err)

	assert.NotNil(t, got.Education)
	assert.NotNil(t, got.Skills)
	assert.NotNil(t, got.Confidence)
	assert.NotNil(t, got.Warnings)
	assert.Equal(t, []string{}, got.Experience[0].Achievements)
}

func TestParsedResume_Skills(t *testing.T) {
	rec := sampleResume()
	assert.Equal(t, []string{"Go", "Python", "Terraform"}, rec.AllSkills())

	group, ok := rec.FindSkillGroup("languages")
	require.True(t, ok)
	assert.Equal(t, "Languages", group.Category)

	_, ok = rec.FindSkillGroup("Cooking")
	assert.False(t, ok)
}
