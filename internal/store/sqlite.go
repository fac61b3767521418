package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/pitchside/playerfacts/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS players (
	id                      INTEGER PRIMARY KEY AUTOINCREMENT,
	club                    TEXT NOT NULL,
	season                  TEXT NOT NULL,
	first_name              TEXT NOT NULL,
	last_name               TEXT NOT NULL,
	high_school             TEXT,
	high_school_city        TEXT,
	high_school_state       TEXT,
	high_school_source_url  TEXT,
	high_school_source_name TEXT,
	birthdate               TEXT,
	birthplace              TEXT,
	citizenship             TEXT,
	hometown_city           TEXT,
	hometown_state          TEXT,
	height                  TEXT,
	bio_source_url          TEXT,
	updated_at              DATETIME NOT NULL DEFAULT (datetime('now')),
	UNIQUE (club, season, first_name, last_name)
);

CREATE TABLE IF NOT EXISTS scrape_log (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id        TEXT NOT NULL,
	source        TEXT NOT NULL,
	player_key    TEXT,
	url           TEXT,
	status        TEXT NOT NULL,
	records_found INTEGER NOT NULL DEFAULT 0,
	error_message TEXT,
	scraped_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_players_club_season ON players(club, season);
CREATE INDEX IF NOT EXISTS idx_players_high_school ON players(high_school);
CREATE INDEX IF NOT EXISTS idx_scrape_log_run_id ON scrape_log(run_id);
CREATE INDEX IF NOT EXISTS idx_scrape_log_source ON scrape_log(source);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ImportPlayers inserts roster rows, skipping players already present so
// that re-importing a roster never clobbers resolved facts. Returns the
// number of new rows.
func (s *SQLiteStore) ImportPlayers(ctx context.Context, players []model.Player) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin import")
	}
	defer tx.Rollback()

	inserted := 0
	for _, p := range players {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO players (club, season, first_name, last_name, updated_at)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT (club, season, first_name, last_name) DO NOTHING`,
			p.Club, p.Season, p.FirstName, p.LastName, time.Now().UTC(),
		)
		if err != nil {
			return 0, eris.Wrapf(err, "sqlite: import player %s", p.Key())
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, eris.Wrap(err, "sqlite: rows affected")
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit import")
	}
	return inserted, nil
}

const playerColumns = `id, club, season, first_name, last_name,
	COALESCE(high_school, ''), COALESCE(high_school_city, ''), COALESCE(high_school_state, ''),
	COALESCE(high_school_source_url, ''), COALESCE(high_school_source_name, ''),
	COALESCE(birthdate, ''), COALESCE(birthplace, ''), COALESCE(citizenship, ''),
	COALESCE(hometown_city, ''), COALESCE(hometown_state, ''),
	COALESCE(height, ''), COALESCE(bio_source_url, ''), updated_at`

func (s *SQLiteStore) ListPlayers(ctx context.Context, filter PlayerFilter) ([]model.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE 1=1`
	var args []any

	if filter.Club != "" {
		query += ` AND club = ?`
		args = append(args, filter.Club)
	}
	if filter.Season != "" {
		query += ` AND season = ?`
		args = append(args, filter.Season)
	}
	if col := missingColumn(filter.Missing); col != "" {
		query += ` AND ` + col + ` IS NULL`
	}
	query += ` ORDER BY club, season, last_name, first_name`

	limit := filter.Limit
	if limit <= 0 {
		limit = 500
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list players")
	}
	defer rows.Close()

	var players []model.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	return players, eris.Wrap(rows.Err(), "sqlite: list players iterate")
}

func (s *SQLiteStore) GetPlayer(ctx context.Context, key model.PlayerKey) (*model.Player, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+playerColumns+` FROM players
		 WHERE club = ? AND season = ? AND first_name = ? AND last_name = ?`,
		key.Club, key.Season, key.FirstName, key.LastName,
	)
	return scanPlayer(row)
}

func (s *SQLiteStore) SetSchool(ctx context.Context, key model.PlayerKey, c model.Candidate) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE players SET
			high_school = ?,
			high_school_city = NULLIF(?, ''),
			high_school_state = NULLIF(?, ''),
			high_school_source_url = NULLIF(?, ''),
			high_school_source_name = NULLIF(?, ''),
			updated_at = ?
		 WHERE club = ? AND season = ? AND first_name = ? AND last_name = ?`,
		c.Value, c.City, c.State, c.SourceURL, c.SourceName, time.Now().UTC(),
		key.Club, key.Season, key.FirstName, key.LastName,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: set school for %s", key)
	}
	return checkRowsAffected(res, "player", key.String())
}

func (s *SQLiteStore) FillBio(ctx context.Context, key model.PlayerKey, bio model.BioFacts) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE players SET
			birthdate = COALESCE(NULLIF(?, ''), birthdate),
			birthplace = COALESCE(NULLIF(?, ''), birthplace),
			citizenship = COALESCE(citizenship, NULLIF(?, '')),
			hometown_city = COALESCE(hometown_city, NULLIF(?, '')),
			hometown_state = COALESCE(hometown_state, NULLIF(?, '')),
			height = COALESCE(NULLIF(?, ''), height),
			bio_source_url = COALESCE(NULLIF(?, ''), bio_source_url),
			updated_at = ?
		 WHERE club = ? AND season = ? AND first_name = ? AND last_name = ?`,
		bio.Birthdate, bio.Birthplace, bio.Citizenship,
		bio.HometownCity, bio.HometownState, bio.Height, bio.SourceURL,
		time.Now().UTC(),
		key.Club, key.Season, key.FirstName, key.LastName,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: fill bio for %s", key)
	}
	return checkRowsAffected(res, "player", key.String())
}

func (s *SQLiteStore) AppendAudit(ctx context.Context, entry model.AuditEntry) error {
	scrapedAt := entry.ScrapedAt
	if scrapedAt.IsZero() {
		scrapedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scrape_log (run_id, source, player_key, url, status, records_found, error_message, scraped_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID, entry.Source, entry.PlayerKey, entry.URL,
		string(entry.Status), entry.Records, entry.Error, scrapedAt,
	)
	return eris.Wrap(err, "sqlite: append audit")
}

func (s *SQLiteStore) ListAudit(ctx context.Context, filter AuditFilter) ([]model.AuditEntry, error) {
	query := `SELECT id, run_id, source, COALESCE(player_key, ''), COALESCE(url, ''),
		status, records_found, COALESCE(error_message, ''), scraped_at
		FROM scrape_log WHERE 1=1`
	var args []any

	if filter.RunID != "" {
		query += ` AND run_id = ?`
		args = append(args, filter.RunID)
	}
	if filter.Source != "" {
		query += ` AND source = ?`
		args = append(args, filter.Source)
	}
	query += ` ORDER BY scraped_at DESC, id DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list audit")
	}
	defer rows.Close()

	var entries []model.AuditEntry
	for rows.Next() {
		var e model.AuditEntry
		var status string
		if err := rows.Scan(&e.ID, &e.RunID, &e.Source, &e.PlayerKey, &e.URL,
			&status, &e.Records, &e.Error, &e.ScrapedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan audit entry")
		}
		e.Status = model.AuditStatus(status)
		entries = append(entries, e)
	}
	return entries, eris.Wrap(rows.Err(), "sqlite: list audit iterate")
}

// helpers

// missingColumn maps a fact type to the column that is NULL while the
// fact is unresolved.
func missingColumn(ft model.FactType) string {
	switch ft {
	case model.FactSchool:
		return "high_school"
	case model.FactBirthdate:
		return "birthdate"
	case model.FactBirthplace:
		return "birthplace"
	case model.FactCitizenship:
		return "citizenship"
	}
	return ""
}

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("%s not found: %s", entity, id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanPlayer(row scannable) (*model.Player, error) {
	var p model.Player
	err := row.Scan(&p.ID, &p.Club, &p.Season, &p.FirstName, &p.LastName,
		&p.HighSchool, &p.HighSchoolCity, &p.HighSchoolState,
		&p.HighSchoolSourceURL, &p.HighSchoolSourceName,
		&p.Birthdate, &p.Birthplace, &p.Citizenship,
		&p.HometownCity, &p.HometownState,
		&p.Height, &p.BioSourceURL, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.New("player not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "scan player")
	}
	return &p, nil
}
