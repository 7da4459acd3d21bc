package extraction

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-extractor/internal/types"
)

// skillVocabulary lists the skills recognized in free text when a resume
// has no skills section. Everyday words (Spring, Swift, Excel) are left out.
var skillVocabulary = []string{
	"Python", "JavaScript", "TypeScript", "Java", "C++", "C#", "PHP", "Ruby",
	"Go", "Golang", "Rust", "Kotlin", "Scala",
	"HTML", "CSS", "SQL", "NoSQL", "MongoDB", "PostgreSQL", "MySQL", "Redis",
	"React", "Angular", "Vue", "Node.js", "Django", "Flask", "GraphQL",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Terraform", "Git", "Jenkins",
	"Linux", "Kafka", "Machine Learning", "Data Science",
	"Tableau", "Power BI",
}

// vocabularyPattern matches one vocabulary term on word boundaries. Terms of
// three characters or fewer are case-sensitive so "go" and "git" in prose do
// not count.
type vocabularyPattern struct {
	term string
	re   *regexp.Regexp
}

var vocabularyPatterns = compileVocabulary(skillVocabulary)

func compileVocabulary(terms []string) []vocabularyPattern {
	out := make([]vocabularyPattern, 0, len(terms))
	for _, term := range terms {
		flags := "(?i)"
		if len(term) <= 3 {
			flags = ""
		}
		re := regexp.MustCompile(flags + `(?:^|[^\w+#.])` + regexp.QuoteMeta(term) + `(?:$|[^\w+#])`)
		out = append(out, vocabularyPattern{term: term, re: re})
	}
	return out
}

// FindSkillKeywords returns the vocabulary terms mentioned in text, ordered
// by first mention
func FindSkillKeywords(text string) []string {
	type hit struct {
		term string
		pos  int
	}
	var hits []hit
	for _, p := range vocabularyPatterns {
		if loc := p.re.FindStringIndex(text); loc != nil {
			hits = append(hits, hit{term: p.term, pos: loc[0]})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.term)
	}
	return out
}

// ExtractSkillKeywords scans every non-header section for vocabulary skills
// and files them under Uncategorized at LOW confidence. Run uses it only
// when the document has no SKILLS section.
func ExtractSkillKeywords(sections []types.Section, rec types.ParsedResume) types.ParsedResume {
	var lines []string
	for _, sec := range sections {
		if sec.Label != types.SectionHeader {
			lines = append(lines, sec.Lines...)
		}
	}

	found := FindSkillKeywords(strings.Join(lines, "\n"))
	if len(found) == 0 {
		return rec
	}
	rec = addSkills(rec, types.UncategorizedSkills, false, found)
	rec.Confidence.Set(types.SkillGroupField{Category: types.UncategorizedSkills}, types.ConfidenceLow)
	return rec
}
