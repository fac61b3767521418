package model

import "time"

// AuditStatus is the terminal status of one scrape or resolution attempt.
type AuditStatus string

const (
	AuditSuccess AuditStatus = "success"
	AuditWarning AuditStatus = "warning"
	AuditError   AuditStatus = "error"
)

// AuditEntry is one append-only row in the scrape log. Entries are never
// mutated or deleted.
type AuditEntry struct {
	ID        int64       `json:"id,omitempty"`
	RunID     string      `json:"run_id,omitempty"`
	Source    string      `json:"source"`
	PlayerKey string      `json:"player_key,omitempty"`
	URL       string      `json:"url,omitempty"`
	Status    AuditStatus `json:"status"`
	Records   int         `json:"records"`
	Error     string      `json:"error,omitempty"`
	ScrapedAt time.Time   `json:"scraped_at"`
}

// Outcome is the terminal state of one player's resolution cycle.
type Outcome string

const (
	// OutcomeSaved means a candidate was found and merged.
	OutcomeSaved Outcome = "saved"
	// OutcomeSkipped means every strategy was exhausted without a hit.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFailed means an unexpected error was caught at the batch
	// boundary; the batch continues.
	OutcomeFailed Outcome = "failed"
)
