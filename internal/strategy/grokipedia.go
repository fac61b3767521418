package strategy

import (
	"context"
	"net/url"

	"github.com/pitchside/playerfacts/internal/model"
)

// Grokipedia searches the Grokipedia encyclopedia. Its articles state
// schooling in prose ("Transitioning to high school at ..."), which the
// cleanup pass in extraction strips back to the school name.
type Grokipedia struct {
	client Client
}

// NewGrokipedia creates the Grokipedia strategy.
func NewGrokipedia(client Client) *Grokipedia {
	return &Grokipedia{client: client}
}

func (s *Grokipedia) Name() string       { return "highschool_grokipedia" }
func (s *Grokipedia) SourceName() string { return "Grokipedia" }

func (s *Grokipedia) Supports(ft model.FactType) bool { return ft == model.FactSchool }

func (s *Grokipedia) Fetch(ctx context.Context, p model.Player) ([]Document, error) {
	searchURL := "https://grokipedia.com/search?q=" + url.QueryEscape(p.FullName())

	links, err := s.client.FindLinks(ctx, searchURL, "/page/")
	if err != nil {
		return nil, err
	}

	checked := 0
	for _, link := range links {
		if checked >= maxEncyclopediaResults {
			break
		}
		checked++
		u := absURL("https://grokipedia.com", link.Href)
		text, err := s.client.Render(ctx, u)
		if err != nil {
			continue
		}
		if !looksLikeSoccerPlayer(text) {
			continue
		}
		return []Document{{Text: text, URL: u}}, nil
	}
	return nil, nil
}
