package extract

import (
	"strings"
	"unicode"

	"github.com/pitchside/playerfacts/internal/model"
)

// Rules holds the structural and lexical constraints applied to a raw
// capture for one fact type. The token lists are a tuned starting point,
// not ground truth; extend them as new false positives show up.
type Rules struct {
	MinLen int
	MaxLen int
	// Stoplist rejects exact (lowercased) degenerate values.
	Stoplist []string
	// Denylist rejects any candidate containing one of these tokens,
	// case-insensitive substring match.
	Denylist []string
	// RequireTerms demands at least one of these institutional terms,
	// unless AcademyCue applies.
	RequireTerms []string
	// AcademyCue treats a standalone "academy" as an acceptable
	// institutional term, but only when none of SportContext appears.
	// "Academy" is ambiguous between a school and a sports academy.
	AcademyCue   bool
	SportContext []string
	// ProperNoun demands an uppercase first letter.
	ProperNoun bool
	// MinWords rejects short captures; single-word school captures are
	// almost always truncation artifacts.
	MinWords int
}

// Validator accepts or rejects extraction candidates. Pure; no side effects.
type Validator struct {
	rules map[model.FactType]Rules
}

// NewValidator builds a validator with the default per-fact-type rules.
func NewValidator() *Validator {
	return &Validator{rules: map[model.FactType]Rules{
		model.FactSchool: {
			MinLen:   4,
			MaxLen:   80,
			Stoplist: []string{"n/a", "none", "unknown", "high school", "prep", "academy"},
			Denylist: []string{
				"joined", "signed", "trained", "development", "road", "against",
				"youth", "u-15", "u-16", "u-17", "u-19", "university",
				"mls", "usl", "national team",
				"fire", "red bulls", "sounders", "galaxy", "united", "fc ", "sc ",
			},
			RequireTerms: []string{"high school", "prep", "preparatory"},
			AcademyCue:   true,
			SportContext: []string{"soccer", "football", "club", "fc", "sc"},
			ProperNoun:   true,
			MinWords:     2,
		},
		model.FactBirthdate: {
			MinLen:   8,
			MaxLen:   20,
			Stoplist: []string{"n/a", "unknown"},
		},
		model.FactBirthplace: {
			MinLen:     2,
			MaxLen:     80,
			Stoplist:   []string{"n/a", "none", "unknown"},
			ProperNoun: true,
			MinWords:   1,
		},
		model.FactCitizenship: {
			MinLen:     2,
			MaxLen:     60,
			Stoplist:   []string{"n/a", "none", "unknown"},
			ProperNoun: true,
			MinWords:   1,
		},
	}}
}

// WithRules overrides the rules for a fact type. Used by tests and callers
// tuning the token lists.
func (v *Validator) WithRules(ft model.FactType, r Rules) *Validator {
	v.rules[ft] = r
	return v
}

// Acceptable reports whether a cleaned capture passes all rules for the
// fact type. Rules are evaluated in order; the first violation rejects.
func (v *Validator) Acceptable(candidate string, ft model.FactType) bool {
	r, ok := v.rules[ft]
	if !ok {
		return false
	}
	candidate = strings.TrimSpace(candidate)
	lower := strings.ToLower(candidate)

	if len(candidate) < r.MinLen || (r.MaxLen > 0 && len(candidate) > r.MaxLen) {
		return false
	}

	for _, stop := range r.Stoplist {
		if lower == stop {
			return false
		}
	}

	for _, deny := range r.Denylist {
		if strings.Contains(lower, deny) {
			return false
		}
	}

	if len(r.RequireTerms) > 0 {
		if r.AcademyCue && strings.Contains(lower, "academy") {
			for _, sport := range r.SportContext {
				if containsToken(lower, sport) {
					return false
				}
			}
		} else if !containsAny(lower, r.RequireTerms) {
			return false
		}
	}

	if r.ProperNoun {
		first := []rune(candidate)
		if len(first) == 0 || !unicode.IsUpper(first[0]) {
			return false
		}
	}

	if r.MinWords > 0 && len(strings.Fields(candidate)) < r.MinWords {
		return false
	}

	return true
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// containsToken matches whole words so the "sc" in "Wisconsin" does not
// count as a soccer-club token.
func containsToken(s, token string) bool {
	for _, w := range strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '-'
	}) {
		if w == token {
			return true
		}
	}
	return false
}
