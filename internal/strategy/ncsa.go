package strategy

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/pitchside/playerfacts/internal/model"
)

// NCSA searches the NCSA recruiting directory. Homegrown signings often
// have a recruiting profile from before they turned pro, and the profile
// URL itself encodes the high school slug.
type NCSA struct {
	client Client
}

// NewNCSA creates the recruiting-profile strategy.
func NewNCSA(client Client) *NCSA {
	return &NCSA{client: client}
}

func (s *NCSA) Name() string       { return "highschool_ncsa" }
func (s *NCSA) SourceName() string { return "NCSA Recruiting Profile" }

func (s *NCSA) Supports(ft model.FactType) bool { return ft == model.FactSchool }

const maxNCSAProfiles = 3

// Profile URLs look like
// /mens-soccer-recruiting/illinois/roselle/lake-park-high-school/christopher-cupps
// so the second-to-last path segment is the school slug.
var ncsaSchoolSlugRe = regexp.MustCompile(`/([a-z0-9\-]+(?:high-school|prep|preparatory|academy)[a-z0-9\-]*)/[^/]+/?$`)

func (s *NCSA) Fetch(ctx context.Context, p model.Player) ([]Document, error) {
	searchURL := "https://www.ncsasports.org/search?q=" + url.QueryEscape(p.FullName())

	links, err := s.client.FindLinks(ctx, searchURL, "soccer-recruiting")
	if err != nil {
		return nil, err
	}

	var docs []Document
	seen := make(map[string]bool)
	for _, link := range links {
		if len(docs) >= maxNCSAProfiles {
			break
		}
		href := absURL("https://www.ncsasports.org", link.Href)
		if seen[href] {
			continue
		}
		seen[href] = true

		// The school slug recovered from the URL becomes a labeled line so
		// it goes through the same extraction and validation as page text.
		if m := ncsaSchoolSlugRe.FindStringSubmatch(strings.ToLower(href)); m != nil {
			docs = append(docs, Document{Text: "High School: " + deslug(m[1]) + "\n", URL: href})
			continue
		}

		text, err := s.client.Render(ctx, href)
		if err != nil {
			continue
		}
		docs = append(docs, Document{Text: text, URL: href})
	}
	return docs, nil
}

// deslug turns "lake-park-high-school" into "Lake Park High School".
func deslug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
