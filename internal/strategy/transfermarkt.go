package strategy

import (
	"context"
	"net/url"

	"github.com/pitchside/playerfacts/internal/model"
)

// Transfermarkt serves the biographical facts: birthdate, birthplace,
// citizenship, and height from the player's profile page. It is found
// through quick search and the first /profil/spieler/ result.
type Transfermarkt struct {
	client Client
}

// NewTransfermarkt creates the Transfermarkt bio strategy.
func NewTransfermarkt(client Client) *Transfermarkt {
	return &Transfermarkt{client: client}
}

func (s *Transfermarkt) Name() string       { return "transfermarkt_bio" }
func (s *Transfermarkt) SourceName() string { return "Transfermarkt" }

func (s *Transfermarkt) Supports(ft model.FactType) bool {
	switch ft {
	case model.FactBirthdate, model.FactBirthplace, model.FactCitizenship:
		return true
	}
	return false
}

func (s *Transfermarkt) Fetch(ctx context.Context, p model.Player) ([]Document, error) {
	searchURL := "https://www.transfermarkt.us/schnellsuche/ergebnis/schnellsuche?query=" +
		url.QueryEscape(p.FullName())

	links, err := s.client.FindLinks(ctx, searchURL, "/profil/spieler/")
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, nil
	}

	profileURL := absURL("https://www.transfermarkt.us", links[0].Href)
	text, err := s.client.Render(ctx, profileURL)
	if err != nil {
		return nil, err
	}
	return []Document{{Text: text, URL: profileURL}}, nil
}
