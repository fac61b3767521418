package config

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Club maps a club name to the domain its site lives on. The slug is
// used in announcement URL paths when it differs from the domain prefix.
type Club struct {
	Name   string `yaml:"name"`
	Slug   string `yaml:"slug,omitempty"`
	Domain string `yaml:"domain"`
}

// ClubDirectory resolves club names to website domains.
type ClubDirectory struct {
	clubs map[string]Club
}

// LoadClubs reads the club directory from a YAML file.
func LoadClubs(path string) (*ClubDirectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "config: read clubs file %s", path)
	}

	var doc struct {
		Clubs []Club `yaml:"clubs"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrapf(err, "config: parse clubs file %s", path)
	}
	if len(doc.Clubs) == 0 {
		return nil, eris.Errorf("config: clubs file %s lists no clubs", path)
	}

	dir := &ClubDirectory{clubs: make(map[string]Club, len(doc.Clubs))}
	for _, c := range doc.Clubs {
		if c.Name == "" || c.Domain == "" {
			return nil, eris.Errorf("config: clubs file %s has a club without name or domain", path)
		}
		dir.clubs[strings.ToLower(c.Name)] = c
	}
	return dir, nil
}

// DomainFor returns the domain for a club name, or empty when unknown.
func (d *ClubDirectory) DomainFor(club string) string {
	if c, ok := d.clubs[strings.ToLower(club)]; ok {
		return c.Domain
	}
	return ""
}

// Len returns the number of clubs in the directory.
func (d *ClubDirectory) Len() int {
	return len(d.clubs)
}
