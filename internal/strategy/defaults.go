package strategy

import "github.com/pitchside/playerfacts/internal/extract"

// DefaultDirectory wires the canonical strategy order: club announcement
// guesses, then the club bio crawl, then recruiting profiles, then the
// search-engine fallback, then the encyclopedias, with Transfermarkt
// carrying the biographical facts.
func DefaultDirectory(engine *extract.Engine, client Client, domain DomainFunc) *Directory {
	return NewDirectory(engine,
		NewClubAnnouncement(client, domain),
		NewClubBio(client, domain),
		NewNCSA(client),
		NewWebSearch(client, domain),
		NewWikipedia(client),
		NewGrokipedia(client),
		NewTransfermarkt(client),
	)
}
