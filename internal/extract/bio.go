package extract

import (
	"regexp"
	"strings"

	"github.com/pitchside/playerfacts/internal/model"
	"github.com/pitchside/playerfacts/internal/normalize"
)

var heightRe = regexp.MustCompile(`(?i:height)[:\s]+(\d+[,\.]\d+\s*m)`)

// ExtractBio pulls the biographical fields a stats-site profile page
// carries (birthdate, birthplace, citizenship, height). Each field runs
// through the same rule tables and validator as single-fact extraction;
// missing fields stay empty.
func (e *Engine) ExtractBio(text, sourceURL string) model.BioFacts {
	bio := model.BioFacts{SourceURL: sourceURL}

	if c := e.Extract(text, model.FactBirthdate); c != nil {
		bio.Birthdate = c.Value
	}
	if c := e.Extract(text, model.FactBirthplace); c != nil {
		bio.Birthplace = c.Value
		// A U.S. birthplace doubles as the hometown.
		if city, state := normalize.ParseLocation(c.Value); len(state) == 2 {
			bio.HometownCity = city
			bio.HometownState = state
		}
	}
	if c := e.Extract(text, model.FactCitizenship); c != nil {
		bio.Citizenship = c.Value
	}
	if m := heightRe.FindStringSubmatch(text); m != nil {
		bio.Height = strings.TrimSpace(m[1])
	}

	return bio
}
