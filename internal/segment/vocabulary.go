package segment

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-extractor/internal/types"
)

// defaultVocabulary maps each label to the header phrases that open it
var defaultVocabulary = map[types.SectionLabel][]string{
	types.SectionEducation: {
		"education", "academic background", "academic history", "academics",
		"qualifications", "degrees", "training",
	},
	types.SectionExperience: {
		"experience", "experiences", "work history", "employment history", "employment",
		"career history", "professional history", "internships", "internship",
	},
	types.SectionSkills: {
		"skills", "skill set", "skillset", "competencies", "expertise", "technologies",
		"tech stack", "tools", "programming languages", "proficiencies",
	},
	types.SectionProjects: {
		"projects", "project experience", "portfolio",
	},
	types.SectionCertifications: {
		"certifications", "certification", "certificates", "licenses", "licences",
		"credentials", "awards", "honors", "honours", "achievements", "accomplishments",
	},
	types.SectionLanguages: {
		"languages", "language", "language skills",
	},
	types.SectionSummary: {
		"summary", "objective", "career objective", "profile", "about me", "about",
		"executive summary", "overview",
	},
	types.SectionHeader: {
		"contact", "contact information", "contact details", "personal information",
		"personal details", "personal data",
	},
}

// neutralWords may accompany a header phrase without changing its label
var neutralWords = map[string]struct{}{
	"professional": {}, "technical": {}, "work": {}, "key": {}, "relevant": {},
	"core": {}, "selected": {}, "additional": {}, "other": {}, "personal": {},
	"side": {}, "spoken": {}, "notable": {}, "areas": {}, "and": {}, "&": {},
	"/": {}, "+": {}, "of": {}, "my": {},
}

type phrase struct {
	tokens []string
	label  types.SectionLabel
}

// Vocabulary is the closed set of header phrases used by the keyword strategy
type Vocabulary struct {
	phrases []phrase
}

// NewVocabulary builds a vocabulary from label → phrases, merged over the defaults
func NewVocabulary(extra map[types.SectionLabel][]string) Vocabulary {
	var v Vocabulary
	for label, list := range defaultVocabulary {
		v.add(label, list...)
	}
	for label, list := range extra {
		v.add(label, list...)
	}
	v.sort()
	return v
}

func (v *Vocabulary) add(label types.SectionLabel, phrases ...string) {
	for _, p := range phrases {
		tokens := strings.Fields(strings.ToLower(p))
		if len(tokens) == 0 {
			continue
		}
		v.phrases = append(v.phrases, phrase{tokens: tokens, label: label})
	}
}

// sort puts longer phrases first so "project experience" wins over "experience"
func (v *Vocabulary) sort() {
	sort.SliceStable(v.phrases, func(i, j int) bool {
		return len(v.phrases[i].tokens) > len(v.phrases[j].tokens)
	})
}

// Match returns every label whose phrases cover the tokens, or nil when a
// token is neither part of a phrase nor a neutral word.
func (v Vocabulary) Match(tokens []string) []types.SectionLabel {
	var labels []types.SectionLabel
	for i := 0; i < len(tokens); {
		if p, ok := v.longestAt(tokens, i); ok {
			labels = append(labels, p.label)
			i += len(p.tokens)
			continue
		}
		if _, ok := neutralWords[tokens[i]]; ok {
			i++
			continue
		}
		return nil
	}
	return labels
}

func (v Vocabulary) longestAt(tokens []string, start int) (phrase, bool) {
	for _, p := range v.phrases {
		if start+len(p.tokens) > len(tokens) {
			continue
		}
		matched := true
		for k, t := range p.tokens {
			if tokens[start+k] != t {
				matched = false
				break
			}
		}
		if matched {
			return p, true
		}
	}
	return phrase{}, false
}

// resolve picks the highest-priority label from a set of matches
func resolve(labels []types.SectionLabel) (types.SectionLabel, bool) {
	for _, candidate := range types.SectionPriority {
		for _, l := range labels {
			if l == candidate {
				return candidate, true
			}
		}
	}
	return types.SectionUnknown, false
}
