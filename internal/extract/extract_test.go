package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/playerfacts/internal/model"
)

func TestValidatorSchool(t *testing.T) {
	v := NewValidator()

	accepted := []string{
		"Lake Park High School",
		"Walter Payton College Prep",
		"St. Mary's Catholic High School",
		"De La Salle Academy",
		"Seton Hall Preparatory",
	}
	for _, s := range accepted {
		assert.True(t, v.Acceptable(s, model.FactSchool), "expected accept: %q", s)
	}

	rejected := []string{
		"",
		"HS",                        // too short
		"n/a",                       // stoplist
		"High School",               // bare suffix
		"Chicago Fire Academy",      // club token
		"New York Red Bulls Academy", // club token
		"Sporting Kansas City Youth", // youth marker
		"U-17 Residency High School", // age-group marker
		"Stanford University Prep",   // university
		"lincoln high school",        // not a proper noun
		"Lincoln",                    // single word, no institutional term
		"Riverside",                  // no institutional term
		"Chelsea FC Academy",         // soccer-context academy
	}
	for _, s := range rejected {
		assert.False(t, v.Acceptable(s, model.FactSchool), "expected reject: %q", s)
	}
}

func TestValidatorAcademyAmbiguity(t *testing.T) {
	v := NewValidator()

	// "Academy" alone can be a school.
	assert.True(t, v.Acceptable("Phillips Exeter Academy", model.FactSchool))
	// "Academy" plus soccer context is a sports academy.
	assert.False(t, v.Acceptable("Portland Soccer Academy", model.FactSchool))
	assert.False(t, v.Acceptable("Football Academy of Dallas", model.FactSchool))
}

func TestExtractAttended(t *testing.T) {
	e := NewEngine()
	text := "A homegrown signing from Roselle, Cupps attended Lake Park High School in Roselle, IL before joining the first team."

	c := e.Extract(text, model.FactSchool)
	require.NotNil(t, c)
	assert.Equal(t, "Lake Park High School", c.Value)
	assert.Equal(t, "Roselle", c.City)
	assert.Equal(t, "IL", c.State)
}

func TestExtractLocationFullStateName(t *testing.T) {
	e := NewEngine()
	text := "She graduated from Oak Park River Forest High School in Oak Park, Illinois."

	c := e.Extract(text, model.FactSchool)
	require.NotNil(t, c)
	assert.Equal(t, "Oak Park River Forest High School", c.Value)
	assert.Equal(t, "Oak Park", c.City)
	assert.Equal(t, "IL", c.State)
}

func TestExtractLocationTwoWordStateName(t *testing.T) {
	e := NewEngine()
	text := "He attended Harrison Central High School in Harrison, New Jersey before turning pro."

	c := e.Extract(text, model.FactSchool)
	require.NotNil(t, c)
	assert.Equal(t, "Harrison Central High School", c.Value)
	assert.Equal(t, "Harrison", c.City)
	assert.Equal(t, "NJ", c.State)
}

func TestExtractLocationStateBeforeCapitalizedWord(t *testing.T) {
	e := NewEngine()
	text := "She attended Lane Tech High School in Chicago, Illinois Her club career began at 16."

	c := e.Extract(text, model.FactSchool)
	require.NotNil(t, c)
	assert.Equal(t, "Chicago", c.City)
	assert.Equal(t, "IL", c.State)
}

func TestExtractRejectsSportsAcademy(t *testing.T) {
	e := NewEngine()
	text := "He played for the Chicago Fire Academy and trained with the U-17 national team."

	assert.Nil(t, e.Extract(text, model.FactSchool))
}

func TestExtractValidatorGatesOutput(t *testing.T) {
	// The only regex match in the text fails validation; extract must not
	// return it.
	e := NewEngine()
	text := "High School: None"

	assert.Nil(t, e.Extract(text, model.FactSchool))
}

func TestExtractLabeledProfileRow(t *testing.T) {
	e := NewEngine()
	text := "Position: Midfielder\nHigh School: Naperville Central High School\nLast Club: Chicago Fire"

	c := e.Extract(text, model.FactSchool)
	require.NotNil(t, c)
	assert.Equal(t, "Naperville Central High School", c.Value)
}

func TestExtractRankOrder(t *testing.T) {
	// A specific "graduated from" phrasing must win over a generic
	// standalone school name appearing earlier in the text.
	e := NewEngine()
	text := "Scouts from Libertyville High School watched the match. He graduated from Warren Township High School in 2021."

	c := e.Extract(text, model.FactSchool)
	require.NotNil(t, c)
	assert.Equal(t, "Warren Township High School", c.Value)
}

func TestExtractCleanupPrefixes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"He enrolled at Lincoln Park High School", "Lincoln Park High School"},
		{"At Naperville North High School", "Naperville North High School"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanCapture(tt.in, model.FactSchool))
	}
}

func TestExtractNoMatchIsNil(t *testing.T) {
	e := NewEngine()
	assert.Nil(t, e.Extract("A quiet afternoon of training at the facility.", model.FactSchool))
	assert.Nil(t, e.Extract("", model.FactSchool))
}

func TestExtractBirthdate(t *testing.T) {
	e := NewEngine()
	text := "Date of birth/Age: Jun 24, 1987 (38)  Place of birth: Batavia, OH"

	c := e.Extract(text, model.FactBirthdate)
	require.NotNil(t, c)
	assert.Equal(t, "Jun 24, 1987", c.Value)
}

func TestExtractBio(t *testing.T) {
	e := NewEngine()
	text := "Date of birth/Age: Jun 24, 1987 (38)\nPlace of birth: Batavia, OH   Citizenship: United States\nCitizenship: United States   Height: 1,85 m\nPosition: Defender"

	bio := e.ExtractBio(text, "https://example.test/profile")
	assert.Equal(t, "Jun 24, 1987", bio.Birthdate)
	assert.Equal(t, "Batavia, OH", bio.Birthplace)
	assert.Equal(t, "United States", bio.Citizenship)
	assert.Equal(t, "1,85 m", bio.Height)
	assert.Equal(t, "https://example.test/profile", bio.SourceURL)
	assert.False(t, bio.Empty())
}

func TestExtractBioEmpty(t *testing.T) {
	e := NewEngine()
	bio := e.ExtractBio("Nothing biographical here.", "https://example.test")
	assert.True(t, bio.Empty())
}
