package strategy

import (
	"context"
	"strings"

	"github.com/pitchside/playerfacts/internal/model"
	"github.com/pitchside/playerfacts/internal/normalize"
)

// DomainFunc maps a club name to its website domain (e.g. "chicagofirefc.com").
// Empty return means the domain is unknown and club-site strategies skip
// the player.
type DomainFunc func(club string) string

// ClubAnnouncement guesses signing-announcement URLs from club URL
// conventions. Highest priority: when it hits, the page is the club's
// own press release about the player.
type ClubAnnouncement struct {
	client Client
	domain DomainFunc
}

// NewClubAnnouncement creates the direct announcement-URL strategy.
func NewClubAnnouncement(client Client, domain DomainFunc) *ClubAnnouncement {
	return &ClubAnnouncement{client: client, domain: domain}
}

func (s *ClubAnnouncement) Name() string       { return "highschool_direct_url" }
func (s *ClubAnnouncement) SourceName() string { return "Club Signing Announcement" }

func (s *ClubAnnouncement) Supports(ft model.FactType) bool { return ft == model.FactSchool }

func (s *ClubAnnouncement) Fetch(ctx context.Context, p model.Player) ([]Document, error) {
	domain := s.domain(p.Club)
	if domain == "" {
		return nil, nil
	}

	base := "https://www." + domain
	slug := normalize.Slug(p.FirstName, p.LastName)
	clubSlug := clubPathSlug(domain)

	candidates := []string{
		base + "/news/" + clubSlug + "-signs-" + slug,
		base + "/news/" + slug + "-signs",
		base + "/news/" + slug + "-homegrown",
	}

	var docs []Document
	for _, u := range candidates {
		text, err := s.client.Render(ctx, u)
		if err != nil {
			continue
		}
		docs = append(docs, Document{Text: text, URL: u})
	}
	return docs, nil
}

// clubPathSlug derives the short club name used in announcement paths
// from the domain: "chicagofirefc.com" -> "chicagofire".
func clubPathSlug(domain string) string {
	name := domain
	if i := strings.Index(name, "."); i > 0 {
		name = name[:i]
	}
	name = strings.TrimSuffix(name, "fc")
	name = strings.TrimSuffix(name, "sc")
	return name
}

// ClubBio renders the player's club bio page and crawls signing-related
// news links from it. Second priority: the bio itself rarely names a
// high school, but the announcement it links to usually does.
type ClubBio struct {
	client Client
	domain DomainFunc
}

// NewClubBio creates the bio-page crawl strategy.
func NewClubBio(client Client, domain DomainFunc) *ClubBio {
	return &ClubBio{client: client, domain: domain}
}

func (s *ClubBio) Name() string       { return "highschool_club_bio" }
func (s *ClubBio) SourceName() string { return "Club Bio Page" }

func (s *ClubBio) Supports(ft model.FactType) bool { return ft == model.FactSchool }

const maxBioNewsLinks = 5

func (s *ClubBio) Fetch(ctx context.Context, p model.Player) ([]Document, error) {
	domain := s.domain(p.Club)
	if domain == "" {
		return nil, nil
	}

	base := "https://www." + domain
	bioURL := base + "/players/" + normalize.Slug(p.FirstName, p.LastName) + "/"

	var docs []Document
	if text, err := s.client.Render(ctx, bioURL); err == nil {
		docs = append(docs, Document{Text: text, URL: bioURL})
	}

	links, err := s.client.FindLinks(ctx, bioURL, "/news/")
	if err != nil {
		return docs, nil
	}

	crawled := 0
	for _, link := range links {
		if crawled >= maxBioNewsLinks {
			break
		}
		label := strings.ToLower(link.Text)
		if !strings.Contains(label, "sign") && !strings.Contains(label, "homegrown") {
			continue
		}
		u := absURL(base, link.Href)
		text, err := s.client.Render(ctx, u)
		if err != nil {
			continue
		}
		docs = append(docs, Document{Text: text, URL: u})
		crawled++
	}
	return docs, nil
}
