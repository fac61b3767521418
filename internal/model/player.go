package model

import (
	"fmt"
	"strings"
	"time"
)

// Player represents one rostered player. The natural key is
// (Club, Season, FirstName, LastName); everything else is a fact field
// filled in over time by the resolution engine.
type Player struct {
	ID        int64  `json:"id,omitempty"`
	Club      string `json:"club"`
	Season    string `json:"season"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	HighSchool           string `json:"high_school,omitempty"`
	HighSchoolCity       string `json:"high_school_city,omitempty"`
	HighSchoolState      string `json:"high_school_state,omitempty"`
	HighSchoolSourceURL  string `json:"high_school_source_url,omitempty"`
	HighSchoolSourceName string `json:"high_school_source_name,omitempty"`

	Birthdate    string `json:"birthdate,omitempty"`
	Birthplace   string `json:"birthplace,omitempty"`
	Citizenship  string `json:"citizenship,omitempty"`
	HometownCity string `json:"hometown_city,omitempty"`
	HometownState string `json:"hometown_state,omitempty"`
	Height       string `json:"height,omitempty"`
	BioSourceURL string `json:"bio_source_url,omitempty"`

	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// PlayerKey identifies a player by natural key.
type PlayerKey struct {
	Club      string `json:"club"`
	Season    string `json:"season"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Key returns the player's natural key.
func (p Player) Key() PlayerKey {
	return PlayerKey{Club: p.Club, Season: p.Season, FirstName: p.FirstName, LastName: p.LastName}
}

// FullName returns "First Last".
func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// String renders the key for audit entries and logs.
func (k PlayerKey) String() string {
	return fmt.Sprintf("%s/%s/%s %s", k.Club, k.Season, k.FirstName, k.LastName)
}
