// Package resolve drives fact resolution for batches of players: it asks
// the strategy directory for candidates, merges them into stored rows,
// and appends one audit entry per player per run.
package resolve

import (
	"github.com/pitchside/playerfacts/internal/model"
	"github.com/pitchside/playerfacts/internal/normalize"
)

// ApplySchool merges a school candidate into the player in memory and
// reports whether anything changed. A nil candidate is a no-op. School
// facts overwrite: a fresh resolution supersedes whatever was stored.
func ApplySchool(p *model.Player, c *model.Candidate) bool {
	if c == nil || c.Value == "" {
		return false
	}

	changed := normalize.SchoolName(p.HighSchool) != normalize.SchoolName(c.Value) ||
		(c.City != "" && c.City != p.HighSchoolCity) ||
		(c.State != "" && c.State != p.HighSchoolState) ||
		(c.SourceURL != "" && c.SourceURL != p.HighSchoolSourceURL)

	p.HighSchool = c.Value
	if c.City != "" {
		p.HighSchoolCity = c.City
	}
	if c.State != "" {
		p.HighSchoolState = c.State
	}
	if c.SourceURL != "" {
		p.HighSchoolSourceURL = c.SourceURL
	}
	if c.SourceName != "" {
		p.HighSchoolSourceName = c.SourceName
	}
	return changed
}

// ApplyBio merges biographical facts into the player in memory and
// reports whether anything changed. Birthdate, birthplace, and height
// refresh from the newer profile; citizenship and hometown fill only
// when unset, since a later profile may reflect a changed federation
// rather than origin.
func ApplyBio(p *model.Player, bio model.BioFacts) bool {
	changed := false

	if bio.Birthdate != "" && bio.Birthdate != p.Birthdate {
		p.Birthdate = bio.Birthdate
		changed = true
	}
	if bio.Birthplace != "" && bio.Birthplace != p.Birthplace {
		p.Birthplace = bio.Birthplace
		changed = true
	}
	if bio.Height != "" && bio.Height != p.Height {
		p.Height = bio.Height
		changed = true
	}
	if bio.Citizenship != "" && p.Citizenship == "" {
		p.Citizenship = bio.Citizenship
		changed = true
	}
	if bio.HometownCity != "" && p.HometownCity == "" {
		p.HometownCity = bio.HometownCity
		changed = true
	}
	if bio.HometownState != "" && p.HometownState == "" {
		p.HometownState = bio.HometownState
		changed = true
	}
	if changed && bio.SourceURL != "" {
		p.BioSourceURL = bio.SourceURL
	}
	return changed
}
