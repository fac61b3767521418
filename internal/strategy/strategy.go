// Package strategy holds the ordered acquisition strategies the engine
// tries when resolving a fact for a player. Each strategy knows how to
// turn a player into candidate page texts from one source; the shared
// extraction engine does the rest.
package strategy

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/pitchside/playerfacts/internal/extract"
	"github.com/pitchside/playerfacts/internal/fetch"
	"github.com/pitchside/playerfacts/internal/model"
)

// Document is one fetched page text with its source URL.
type Document struct {
	Text string
	URL  string
}

// Client is the fetch capability strategies consume.
type Client interface {
	fetch.Renderer
	fetch.LinkFinder
}

// Strategy produces raw documents for a player from one source.
// Fetch errors are demoted to misses by the Directory; a strategy must
// never abort the overall resolution.
type Strategy interface {
	// Name is the audit log source identifier (e.g. "highschool_ncsa").
	Name() string
	// SourceName is the provenance label stamped on candidates
	// (e.g. "NCSA Recruiting Profile").
	SourceName() string
	// Supports reports whether the strategy can serve a fact type.
	Supports(ft model.FactType) bool
	// Fetch returns zero or more documents for the player.
	Fetch(ctx context.Context, p model.Player) ([]Document, error)
}

// Directory tries strategies strictly in declared priority order and
// stops at the first accepted candidate. Higher-precision, lower-cost
// sources go first; strategy N+1 is only tried because N missed, so the
// order must never be parallelized.
type Directory struct {
	engine     *extract.Engine
	strategies []Strategy
}

// NewDirectory creates a directory with strategies in priority order.
func NewDirectory(engine *extract.Engine, strategies ...Strategy) *Directory {
	return &Directory{engine: engine, strategies: strategies}
}

// Strategies returns the declared order, for logging and tests.
func (d *Directory) Strategies() []Strategy {
	return d.strategies
}

// Resolve returns the first accepted candidate for the fact type, or nil
// when every strategy is exhausted. A nil candidate is a normal outcome.
func (d *Directory) Resolve(ctx context.Context, p model.Player, ft model.FactType) (*model.Candidate, error) {
	log := zap.L().With(
		zap.String("player", p.FullName()),
		zap.String("fact", string(ft)),
	)

	for _, s := range d.strategies {
		if !s.Supports(ft) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		docs, err := s.Fetch(ctx, p)
		if err != nil {
			// Fetch failures are strategy misses, never batch failures.
			log.Debug("strategy fetch failed, trying next",
				zap.String("strategy", s.Name()),
				zap.Error(err),
			)
			continue
		}

		for _, doc := range docs {
			c := d.engine.Extract(doc.Text, ft)
			if c == nil {
				continue
			}
			c.SourceURL = doc.URL
			c.SourceName = s.SourceName()
			c.Strategy = s.Name()
			log.Info("candidate accepted",
				zap.String("strategy", s.Name()),
				zap.String("value", c.Value),
			)
			return c, nil
		}
	}

	log.Debug("all strategies exhausted")
	return nil, nil
}

// ResolveBio runs the bio-capable strategies and returns the first
// non-empty set of biographical facts.
func (d *Directory) ResolveBio(ctx context.Context, p model.Player) (model.BioFacts, error) {
	for _, s := range d.strategies {
		if !s.Supports(model.FactBirthdate) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return model.BioFacts{}, err
		}

		docs, err := s.Fetch(ctx, p)
		if err != nil {
			zap.L().Debug("bio strategy fetch failed",
				zap.String("strategy", s.Name()),
				zap.Error(err),
			)
			continue
		}

		for _, doc := range docs {
			bio := d.engine.ExtractBio(doc.Text, doc.URL)
			if !bio.Empty() {
				return bio, nil
			}
		}
	}
	return model.BioFacts{}, nil
}

// looksLikeSoccerPlayer gates encyclopedia pages: a hit on a namesake
// article must not produce candidates.
func looksLikeSoccerPlayer(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range []string{"soccer", "football", "mls", "midfielder", "forward", "defender", "goalkeeper"} {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// absURL resolves an href against a site base.
func absURL(base, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(href, "/")
}
