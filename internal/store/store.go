// Package store persists players and the append-only scrape audit log,
// with SQLite and PostgreSQL backends behind one interface.
package store

import (
	"context"

	"github.com/pitchside/playerfacts/internal/model"
)

// PlayerFilter specifies criteria for listing players.
type PlayerFilter struct {
	Club   string `json:"club,omitempty"`
	Season string `json:"season,omitempty"`
	// Missing restricts the list to players whose fact of this type is
	// still unset; empty means no restriction.
	Missing model.FactType `json:"missing,omitempty"`
	Limit   int            `json:"limit,omitempty"`
}

// AuditFilter specifies criteria for listing audit entries.
type AuditFilter struct {
	RunID  string `json:"run_id,omitempty"`
	Source string `json:"source,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

// Store defines the persistence interface for the resolution engine.
//
// SetSchool overwrites: a freshly resolved school is considered better
// than whatever was stored. FillBio fills citizenship and hometown only
// when unset, and refreshes birthdate, birthplace, and height whenever
// the profile carries them. Both update only the named fields, so
// repeating a merge with the same inputs leaves the row unchanged.
type Store interface {
	// Players
	ImportPlayers(ctx context.Context, players []model.Player) (int, error)
	ListPlayers(ctx context.Context, filter PlayerFilter) ([]model.Player, error)
	GetPlayer(ctx context.Context, key model.PlayerKey) (*model.Player, error)
	SetSchool(ctx context.Context, key model.PlayerKey, c model.Candidate) error
	FillBio(ctx context.Context, key model.PlayerKey, bio model.BioFacts) error

	// Audit log
	AppendAudit(ctx context.Context, entry model.AuditEntry) error
	ListAudit(ctx context.Context, filter AuditFilter) ([]model.AuditEntry, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
