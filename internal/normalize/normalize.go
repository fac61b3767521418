// Package normalize provides pure functions that turn freeform scraped
// strings (school names, "City, State" hometowns, player names) into
// canonical comparable forms.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Institutional suffixes stripped from school names, most specific first so
// that multi-word suffixes are not partially consumed by shorter ones.
var schoolSuffixes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s+high\s+school$`),
	regexp.MustCompile(`(?i)\s+h\.?s\.?$`),
	regexp.MustCompile(`(?i)\s+secondary\s+school$`),
	regexp.MustCompile(`(?i)\s+prep\s+school$`),
	regexp.MustCompile(`(?i)\s+preparatory$`),
	regexp.MustCompile(`(?i)\s+academy$`),
}

var (
	punctRe      = regexp.MustCompile(`['\.]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// SchoolName normalizes a high school name for matching.
//
//	"Walter Payton College Prep High School" -> "walter payton college prep"
//	"Lincoln HS"                             -> "lincoln"
//	"St. Mary's Catholic High School"        -> "st marys catholic"
//
// Empty input yields empty output. Idempotent.
func SchoolName(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return ""
	}

	// Strip suffixes until none match: "Mother McAuley Academy High
	// School" sheds both, so a second pass is a no-op.
	for stripped := true; stripped; {
		stripped = false
		for _, suffix := range schoolSuffixes {
			if suffix.MatchString(name) {
				name = suffix.ReplaceAllString(name, "")
				stripped = true
				break
			}
		}
	}

	name = punctRe.ReplaceAllString(name, "")
	name = whitespaceRe.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// stateCodes maps full U.S. state names (lowercase) to two-letter codes.
var stateCodes = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT", "delaware": "DE",
	"florida": "FL", "georgia": "GA", "hawaii": "HI", "idaho": "ID",
	"illinois": "IL", "indiana": "IN", "iowa": "IA", "kansas": "KS",
	"kentucky": "KY", "louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN", "mississippi": "MS",
	"missouri": "MO", "montana": "MT", "nebraska": "NE", "nevada": "NV",
	"new hampshire": "NH", "new jersey": "NJ", "new mexico": "NM", "new york": "NY",
	"north carolina": "NC", "north dakota": "ND", "ohio": "OH", "oklahoma": "OK",
	"oregon": "OR", "pennsylvania": "PA", "rhode island": "RI", "south carolina": "SC",
	"south dakota": "SD", "tennessee": "TN", "texas": "TX", "utah": "UT",
	"vermont": "VT", "virginia": "VA", "washington": "WA", "west virginia": "WV",
	"wisconsin": "WI", "wyoming": "WY", "district of columbia": "DC",
}

// ParseLocation splits a "City, State" string into its parts.
//
//	"Chicago, Illinois" -> ("Chicago", "IL")
//	"Batavia, OH"       -> ("Batavia", "OH")
//	"Chicago"           -> ("Chicago", "")
//	""                  -> ("", "")
//
// Full state names map to two-letter codes; two-letter states are
// upper-cased; anything else (foreign regions) passes through unchanged.
func ParseLocation(raw string) (city, state string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ""
	}

	parts := strings.Split(raw, ",")
	if len(parts) < 2 {
		return raw, ""
	}

	city = strings.TrimSpace(parts[0])
	state = strings.TrimSpace(parts[len(parts)-1])

	if code, ok := stateCodes[strings.ToLower(state)]; ok {
		state = code
	} else if len(state) == 2 {
		state = strings.ToUpper(state)
	}
	return city, state
}

// StateCode returns the two-letter code for a full U.S. state name, or the
// input unchanged when unmapped.
func StateCode(name string) string {
	if code, ok := stateCodes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return code
	}
	return name
}

var slugStrip = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slug builds the lowercase hyphenated form of a player name used in club
// and encyclopedia URL templates. Diacritics are stripped so names like
// "Bečić" slug cleanly.
func Slug(parts ...string) string {
	joined := strings.Join(parts, " ")
	if flat, _, err := transform.String(slugStrip, joined); err == nil {
		joined = flat
	}
	joined = strings.ToLower(strings.TrimSpace(joined))
	joined = whitespaceRe.ReplaceAllString(joined, "-")
	return strings.Trim(joined, "-")
}
