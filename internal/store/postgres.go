package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/pitchside/playerfacts/internal/db"
	"github.com/pitchside/playerfacts/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool db.Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// the hot path: one school update, one bio fill, and one audit append
// per player per run.
var preparedStatements = map[string]string{
	"get_player": `SELECT ` + pgPlayerColumns + ` FROM players
		WHERE club = $1 AND season = $2 AND first_name = $3 AND last_name = $4`,
	"set_school": `UPDATE players SET
		high_school = $1, high_school_city = NULLIF($2, ''), high_school_state = NULLIF($3, ''),
		high_school_source_url = NULLIF($4, ''), high_school_source_name = NULLIF($5, ''),
		updated_at = $6
		WHERE club = $7 AND season = $8 AND first_name = $9 AND last_name = $10`,
	"append_audit": `INSERT INTO scrape_log (run_id, source, player_key, url, status, records_found, error_message, scraped_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// Pool returns the underlying database pool for subsystems that need
// direct query access (e.g., bulk roster loads).
func (s *PostgresStore) Pool() db.Pool {
	return s.pool
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS players (
	id                      BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
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
	updated_at              TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (club, season, first_name, last_name)
);

CREATE TABLE IF NOT EXISTS scrape_log (
	id            BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	run_id        TEXT NOT NULL,
	source        TEXT NOT NULL,
	player_key    TEXT,
	url           TEXT,
	status        TEXT NOT NULL,
	records_found INTEGER NOT NULL DEFAULT 0,
	error_message TEXT,
	scraped_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_players_club_season ON players(club, season);
CREATE INDEX IF NOT EXISTS idx_players_high_school ON players(high_school);
CREATE INDEX IF NOT EXISTS idx_scrape_log_run_id ON scrape_log(run_id);
CREATE INDEX IF NOT EXISTS idx_scrape_log_source ON scrape_log(source);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

var rosterColumns = []string{"club", "season", "first_name", "last_name", "updated_at"}

// ImportPlayers bulk-loads roster rows. Conflicting rows only have their
// updated_at refreshed, so re-importing a roster never clobbers resolved
// facts.
func (s *PostgresStore) ImportPlayers(ctx context.Context, players []model.Player) (int, error) {
	now := time.Now().UTC()
	rows := make([][]any, 0, len(players))
	for _, p := range players {
		rows = append(rows, []any{p.Club, p.Season, p.FirstName, p.LastName, now})
	}

	n, err := db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table:        "players",
		Columns:      rosterColumns,
		ConflictKeys: []string{"club", "season", "first_name", "last_name"},
		UpdateCols:   []string{"updated_at"},
	}, rows)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: import players")
	}
	return int(n), nil
}

const pgPlayerColumns = `id, club, season, first_name, last_name,
	COALESCE(high_school, ''), COALESCE(high_school_city, ''), COALESCE(high_school_state, ''),
	COALESCE(high_school_source_url, ''), COALESCE(high_school_source_name, ''),
	COALESCE(birthdate, ''), COALESCE(birthplace, ''), COALESCE(citizenship, ''),
	COALESCE(hometown_city, ''), COALESCE(hometown_state, ''),
	COALESCE(height, ''), COALESCE(bio_source_url, ''), updated_at`

func (s *PostgresStore) ListPlayers(ctx context.Context, filter PlayerFilter) ([]model.Player, error) {
	query := `SELECT ` + pgPlayerColumns + ` FROM players WHERE 1=1`
	var args []any

	if filter.Club != "" {
		args = append(args, filter.Club)
		query += ` AND club = ` + placeholder(len(args))
	}
	if filter.Season != "" {
		args = append(args, filter.Season)
		query += ` AND season = ` + placeholder(len(args))
	}
	if col := missingColumn(filter.Missing); col != "" {
		query += ` AND ` + col + ` IS NULL`
	}
	query += ` ORDER BY club, season, last_name, first_name`

	limit := filter.Limit
	if limit <= 0 {
		limit = 500
	}
	args = append(args, limit)
	query += ` LIMIT ` + placeholder(len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list players")
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
	return players, eris.Wrap(rows.Err(), "postgres: list players iterate")
}

func (s *PostgresStore) GetPlayer(ctx context.Context, key model.PlayerKey) (*model.Player, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+pgPlayerColumns+` FROM players
		 WHERE club = $1 AND season = $2 AND first_name = $3 AND last_name = $4`,
		key.Club, key.Season, key.FirstName, key.LastName,
	)

	p, err := scanPlayer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(err, "postgres: get player %s", key)
	}
	return p, err
}

func (s *PostgresStore) SetSchool(ctx context.Context, key model.PlayerKey, c model.Candidate) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE players SET
			high_school = $1,
			high_school_city = NULLIF($2, ''),
			high_school_state = NULLIF($3, ''),
			high_school_source_url = NULLIF($4, ''),
			high_school_source_name = NULLIF($5, ''),
			updated_at = $6
		 WHERE club = $7 AND season = $8 AND first_name = $9 AND last_name = $10`,
		c.Value, c.City, c.State, c.SourceURL, c.SourceName, time.Now().UTC(),
		key.Club, key.Season, key.FirstName, key.LastName,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: set school for %s", key)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("player not found: %s", key)
	}
	return nil
}

func (s *PostgresStore) FillBio(ctx context.Context, key model.PlayerKey, bio model.BioFacts) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE players SET
			birthdate = COALESCE(NULLIF($1, ''), birthdate),
			birthplace = COALESCE(NULLIF($2, ''), birthplace),
			citizenship = COALESCE(citizenship, NULLIF($3, '')),
			hometown_city = COALESCE(hometown_city, NULLIF($4, '')),
			hometown_state = COALESCE(hometown_state, NULLIF($5, '')),
			height = COALESCE(NULLIF($6, ''), height),
			bio_source_url = COALESCE(NULLIF($7, ''), bio_source_url),
			updated_at = $8
		 WHERE club = $9 AND season = $10 AND first_name = $11 AND last_name = $12`,
		bio.Birthdate, bio.Birthplace, bio.Citizenship,
		bio.HometownCity, bio.HometownState, bio.Height, bio.SourceURL,
		time.Now().UTC(),
		key.Club, key.Season, key.FirstName, key.LastName,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: fill bio for %s", key)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("player not found: %s", key)
	}
	return nil
}

func (s *PostgresStore) AppendAudit(ctx context.Context, entry model.AuditEntry) error {
	scrapedAt := entry.ScrapedAt
	if scrapedAt.IsZero() {
		scrapedAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO scrape_log (run_id, source, player_key, url, status, records_found, error_message, scraped_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.RunID, entry.Source, entry.PlayerKey, entry.URL,
		string(entry.Status), entry.Records, entry.Error, scrapedAt,
	)
	return eris.Wrap(err, "postgres: append audit")
}

func (s *PostgresStore) ListAudit(ctx context.Context, filter AuditFilter) ([]model.AuditEntry, error) {
	query := `SELECT id, run_id, source, COALESCE(player_key, ''), COALESCE(url, ''),
		status, records_found, COALESCE(error_message, ''), scraped_at
		FROM scrape_log WHERE 1=1`
	var args []any

	if filter.RunID != "" {
		args = append(args, filter.RunID)
		query += ` AND run_id = ` + placeholder(len(args))
	}
	if filter.Source != "" {
		args = append(args, filter.Source)
		query += ` AND source = ` + placeholder(len(args))
	}
	query += ` ORDER BY scraped_at DESC, id DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += ` LIMIT ` + placeholder(len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list audit")
	}
	defer rows.Close()

	var entries []model.AuditEntry
	for rows.Next() {
		var e model.AuditEntry
		var status string
		if err := rows.Scan(&e.ID, &e.RunID, &e.Source, &e.PlayerKey, &e.URL,
			&status, &e.Records, &e.Error, &e.ScrapedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan audit entry")
		}
		e.Status = model.AuditStatus(status)
		entries = append(entries, e)
	}
	return entries, eris.Wrap(rows.Err(), "postgres: list audit iterate")
}

// placeholder returns the $N positional placeholder for argument n.
func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}
