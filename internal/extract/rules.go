package extract

import (
	"regexp"

	"github.com/pitchside/playerfacts/internal/model"
)

// Rule is one ranked capture pattern. Lower rank wins: specific contextual
// phrasings ("graduated from X") outrank generic standalone school-name
// patterns, which are far more prone to false positives.
type Rule struct {
	Rank    int
	Pattern *regexp.Regexp
}

const schoolSuffix = `High School|College Prep|Prep School|Preparatory School|Preparatory|Prep|Academy`

// defaultRules holds the ranked extraction rules per fact type. Kept as
// data so the tables can be tested and extended without touching the
// engine loop.
var defaultRules = map[model.FactType][]Rule{
	model.FactSchool: {
		{Rank: 1, Pattern: regexp.MustCompile(`graduated\s+from\s+([A-Z][A-Za-z\s\.\-']+?(?:` + schoolSuffix + `))`)},
		{Rank: 2, Pattern: regexp.MustCompile(`(?:attended|attends)\s+([A-Z][A-Za-z\s\.\-']+?(?:` + schoolSuffix + `))`)},
		{Rank: 3, Pattern: regexp.MustCompile(`(?:played|competed)\s+(?:for|at)\s+([A-Z][A-Za-z\s\.\-']+?(?:` + schoolSuffix + `))`)},
		{Rank: 4, Pattern: regexp.MustCompile(`(?:enrolled|schooled|educated)\s+at\s+([A-Z][A-Za-z\s\.\-']+?(?:` + schoolSuffix + `))`)},
		{Rank: 5, Pattern: regexp.MustCompile(`went\s+to\s+([A-Z][A-Za-z\s\.\-']+?(?:` + schoolSuffix + `))`)},
		// Labeled "High School: X" rows from recruiting profiles.
		{Rank: 6, Pattern: regexp.MustCompile(`(?i:high school)[:\s]+([A-Za-z\s\.\-']+?(?:High School|College Prep|Prep|Academy|HS))`)},
		{Rank: 7, Pattern: regexp.MustCompile(`(?i:high school)[:\s]+([A-Za-z\s\.\-']+?)(?:\n|Last Club|College|Citizenship|$)`)},
		// Generic standalone names; the validator does the heavy lifting here.
		{Rank: 8, Pattern: regexp.MustCompile(`([A-Z][A-Za-z\s\.\-']+(?:College Prep High School|High School|Prep School|Preparatory School|Academy))`)},
		{Rank: 9, Pattern: regexp.MustCompile(`([A-Z][A-Za-z\s\.\-']+(?:High School|Preparatory|Prep))\s+in\s+[A-Z][a-z]+`)},
	},
	model.FactBirthdate: {
		{Rank: 1, Pattern: regexp.MustCompile(`(?i:date of birth(?:/age)?)[:\s]+([A-Z][a-z]{2}\s+\d{1,2},\s+\d{4})`)},
		{Rank: 2, Pattern: regexp.MustCompile(`(?i:born)[:\s]+([A-Z][a-z]+\s+\d{1,2},\s+\d{4})`)},
	},
	model.FactBirthplace: {
		{Rank: 1, Pattern: regexp.MustCompile(`(?i:place of birth)[:\s]+([^\n]+)`)},
		{Rank: 2, Pattern: regexp.MustCompile(`(?i:birthplace)[:\s]+([^\n]+)`)},
	},
	model.FactCitizenship: {
		{Rank: 1, Pattern: regexp.MustCompile(`(?i:citizenship)[:\s]+([^\n]+)`)},
		{Rank: 2, Pattern: regexp.MustCompile(`(?i:nationality)[:\s]+([^\n]+)`)},
	},
}

// cleanupPrefixes strips leading narrative fragments a broad capture drags
// in, applied in order before validation.
var cleanupPrefixes = []*regexp.Regexp{
	regexp.MustCompile(`^(?i:(?:he|she|they)\s+(?:enrolled|attended|went)\s+(?:at|to)\s+)`),
	regexp.MustCompile(`^(?i:(?:he|she|they)\s+competed\s+for\s+)`),
	regexp.MustCompile(`^(?i:(?:transitioning|moving)\s+to\s+high\s+school\s+at\s+)`),
	regexp.MustCompile(`^(?i:school and\s+)`),
	regexp.MustCompile(`^At\s+`),
}

// truncators cut a line-oriented capture at the next profile label, for
// fact types scraped from label/value profile layouts.
var truncators = map[model.FactType][]*regexp.Regexp{
	model.FactBirthplace: {
		regexp.MustCompile(`\s{2,}.*$`),
		regexp.MustCompile(`\s*(?:Citizenship|Height).*$`),
	},
	model.FactCitizenship: {
		regexp.MustCompile(`\s{2,}.*$`),
		regexp.MustCompile(`\s*(?:Height|Position).*$`),
	},
}
