package strategy

import (
	"context"
	"net/url"
	"strings"

	"github.com/pitchside/playerfacts/internal/model"
)

// Wikipedia tries the article slugs Wikipedia uses for soccer players,
// then falls back to site search. Namesake articles are filtered by a
// soccer-context check before any text is handed to extraction.
type Wikipedia struct {
	client Client
}

// NewWikipedia creates the Wikipedia strategy.
func NewWikipedia(client Client) *Wikipedia {
	return &Wikipedia{client: client}
}

func (s *Wikipedia) Name() string       { return "highschool_wikipedia" }
func (s *Wikipedia) SourceName() string { return "Wikipedia" }

func (s *Wikipedia) Supports(ft model.FactType) bool { return ft == model.FactSchool }

func (s *Wikipedia) Fetch(ctx context.Context, p model.Player) ([]Document, error) {
	title := wikiTitle(p.FullName())
	candidates := []string{
		"https://en.wikipedia.org/wiki/" + title,
		"https://en.wikipedia.org/wiki/" + title + "_(soccer)",
		"https://en.wikipedia.org/wiki/" + title + "_(American_soccer)",
	}

	for _, u := range candidates {
		text, err := s.client.Render(ctx, u)
		if err != nil {
			continue
		}
		if !looksLikeSoccerPlayer(text) {
			continue
		}
		return []Document{{Text: text, URL: u}}, nil
	}

	return s.search(ctx, p)
}

const maxEncyclopediaResults = 5

func (s *Wikipedia) search(ctx context.Context, p model.Player) ([]Document, error) {
	searchURL := "https://en.wikipedia.org/w/index.php?search=" +
		url.QueryEscape(p.FullName()+" soccer "+p.Club)

	links, err := s.client.FindLinks(ctx, searchURL, "/wiki/")
	if err != nil {
		return nil, err
	}

	checked := 0
	for _, link := range links {
		if checked >= maxEncyclopediaResults {
			break
		}
		if strings.Contains(link.Href, ":") {
			// Skip namespace links (Special:, File:, Help:).
			continue
		}
		checked++
		u := absURL("https://en.wikipedia.org", link.Href)
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

// wikiTitle converts "Christopher Cupps" to "Christopher_Cupps".
func wikiTitle(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}
