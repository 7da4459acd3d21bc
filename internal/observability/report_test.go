package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-extractor/internal/types"
)

func TestBuildReport(t *testing.T) {
	rec := sampleRecord()
	rec.Warnings = []types.Warning{
		{Code: types.WarningMalformedField, Field: "education[0].gpa", Message: "GPA 9/4 is out of range"},
	}

	report := BuildReport(rec)

	assert.Equal(t, 80.0, report.Score)
	assert.Equal(t, []string{"experience", "education", "skills", "languages"}, report.SectionsFound)
	assert.Equal(t, []string{"summary", "projects", "certifications"}, report.MissingSections)
	assert.Equal(t, []QualityCheck{
		{Field: "name", Status: "found"},
		{Field: "email", Status: "found"},
		{Field: "phone", Status: "missing"},
		{Field: "experience", Status: "1 entry"},
		{Field: "education", Status: "1 entry"},
		{Field: "skills", Status: "2 skills"},
	}, report.DataQuality)
	assert.Equal(t, []string{"contact.phone"}, report.LowConfidence)
	assert.Equal(t, []string{"Review education[0].gpa: GPA 9/4 is out of range"}, report.Recommendations)
}

func TestBuildReport_EmptyRecord(t *testing.T) {
	rec := &types.ParsedResume{}
	rec.EnsureCollections()
	rec.Warnings = []types.Warning{
		{Code: types.WarningMissingName, Field: "contact.name", Message: "no name found"},
		{Code: types.WarningNoExperienceFound, Field: "experience", Message: "no experience entries found"},
	}

	report := BuildReport(rec)

	assert.Empty(t, report.SectionsFound)
	assert.Len(t, report.MissingSections, len(reportSections))
	assert.Empty(t, report.LowConfidence)
	assert.Equal(t, []string{
		"Name not found: put the full name on the first line",
		"Work experience not found: add an Experience section",
		"Completeness is low: check that section headers sit on their own lines",
	}, report.Recommendations)
	for _, q := range report.DataQuality {
		assert.Equal(t, "missing", q.Status, q.Field)
	}
}

func TestCounted(t *testing.T) {
	assert.Equal(t, "missing", counted(0, "entry", "entries"))
	assert.Equal(t, "1 entry", counted(1, "entry", "entries"))
	assert.Equal(t, "3 entries", counted(3, "entry", "entries"))
}
