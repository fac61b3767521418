package model

import "github.com/rotisserie/eris"

// FactType selects which fact the engine is resolving.
type FactType string

const (
	FactSchool      FactType = "school"
	FactBirthdate   FactType = "birthdate"
	FactBirthplace  FactType = "birthplace"
	FactCitizenship FactType = "citizenship"
)

// ParseFactType converts a CLI string into a FactType.
func ParseFactType(s string) (FactType, error) {
	switch FactType(s) {
	case FactSchool, FactBirthdate, FactBirthplace, FactCitizenship:
		return FactType(s), nil
	default:
		return "", eris.Errorf("unknown fact type: %q (valid: school, birthdate, birthplace, citizenship)", s)
	}
}

// Candidate is one extracted value before it is merged into the store.
// City and State are only populated when a location was found near the
// value in the source text.
type Candidate struct {
	Value      string `json:"value"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	SourceURL  string `json:"source_url"`
	SourceName string `json:"source_name"`
	// Strategy is the audit log identifier of the strategy that found
	// the value.
	Strategy string `json:"strategy,omitempty"`
}

// BioFacts holds the biographical fields a single profile page can yield.
// Zero-valued fields were not present on the page.
type BioFacts struct {
	Birthdate   string `json:"birthdate,omitempty"`
	Birthplace  string `json:"birthplace,omitempty"`
	Citizenship string `json:"citizenship,omitempty"`
	Height      string `json:"height,omitempty"`

	// Hometown is derived from a U.S. birthplace, never scraped directly.
	HometownCity  string `json:"hometown_city,omitempty"`
	HometownState string `json:"hometown_state,omitempty"`

	SourceURL string `json:"source_url"`
}

// Empty reports whether the profile yielded nothing usable.
func (b BioFacts) Empty() bool {
	return b.Birthdate == "" && b.Birthplace == "" && b.Citizenship == "" && b.Height == ""
}
