package normalize

import "github.com/jonathan/resume-extractor/internal/types"

// Completeness weights, summing to 100
const (
	weightName       = 10.0
	weightEmail      = 10.0
	weightPhone      = 10.0
	weightExperience = 25.0
	weightEducation  = 20.0
	weightSkills     = 15.0
	weightOptional   = 2.5 // each of summary, projects, certifications, languages
)

// Score rates how complete a record is on a 0-100 scale
func Score(r *types.ParsedResume) float64 {
	score := 0.0
	add := func(present bool, weight float64) {
		if present {
			score += weight
		}
	}
	add(r.Contact.Name != "", weightName)
	add(r.Contact.Email != "", weightEmail)
	add(r.Contact.Phone != "", weightPhone)
	add(len(r.Experience) > 0, weightExperience)
	add(len(r.Education) > 0, weightEducation)
	add(len(r.AllSkills()) > 0, weightSkills)
	add(r.Summary != "", weightOptional)
	add(len(r.Projects) > 0, weightOptional)
	add(len(r.Certifications) > 0, weightOptional)
	add(len(r.Languages) > 0, weightOptional)
	return score
}
