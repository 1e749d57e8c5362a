package match

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

var _ Store = (*store)(nil)

// store keeps match documents in the matches table.
type store struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time
}

// NewStore creates a Store backed by db.
func NewStore(db *sql.DB) Store {
	return &store{
		db:  db,
		now: time.Now,
	}
}

const selectColumns = `
	id, league_name, venue, start_time, team1_name, team1_logo, team2_name, team2_logo,
	is_live, is_paused, is_finished, current_minute, extra_time, team1_score, team2_score,
	lineups_json, created_at, updated_at`

// ListMatches returns every match ordered by kick-off time.
func (s *store) ListMatches(ctx context.Context) ([]Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM matches ORDER BY start_time ASC, created_at ASC`)
	if err != nil {
		return nil, Unavailable("list matches", err)
	}
	defer rows.Close()

	matches := []Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, Unavailable("list matches", err)
	}
	return matches, nil
}

// GetMatch returns the match with the given id.
func (s *store) GetMatch(ctx context.Context, id string) (Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getMatch(ctx, s.db, id)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getMatch(ctx context.Context, q queryRower, id string) (Match, error) {
	row := q.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM matches WHERE id = ?`, id)
	m, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Match{}, ErrNotFound
		}
		return Match{}, Unavailable("get match", err)
	}
	return m, nil
}

// CreateMatch inserts a fixture in its scheduled shape.
func (s *store) CreateMatch(ctx context.Context, n NewMatch) (Match, error) {
	if err := n.Validate(); err != nil {
		return Match{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	m := n.Scheduled(uuid.New().String(), s.now().UTC())
	lineupsJSON, err := json.Marshal(m.Lineups)
	if err != nil {
		return Match{}, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO matches (
			id, league_name, venue, start_time, team1_name, team1_logo, team2_name, team2_logo,
			is_live, is_paused, is_finished, current_minute, extra_time, team1_score, team2_score,
			lineups_json, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.LeagueName, m.Venue, unixOrNull(m.StartTime), m.Team1Name, m.Team1Logo, m.Team2Name, m.Team2Logo,
		m.IsLive, m.IsPaused, m.IsFinished, m.CurrentMinute, m.ExtraTime, m.Team1Score, m.Team2Score,
		string(lineupsJSON), m.CreatedAt.Unix(), m.UpdatedAt.Unix(),
	)
	if err != nil {
		return Match{}, Unavailable("create match", err)
	}

	log.Info("Created match", "id", m.ID, "team1", m.Team1Name, "team2", m.Team2Name)
	return m, nil
}

// PatchMatch writes only the columns set in p, then reads the document back.
// The patch is checked against the stored row inside the same transaction.
func (s *store) PatchMatch(ctx context.Context, id string, p Patch) (Match, error) {
	if err := p.Validate(); err != nil {
		return Match{}, err
	}
	set, args, err := patchColumns(p)
	if err != nil {
		return Match{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Match{}, Unavailable("patch match", err)
	}
	defer tx.Rollback()

	current, err := getMatch(ctx, tx, id)
	if err != nil {
		return Match{}, err
	}
	if err := p.ValidateAgainst(current); err != nil {
		return Match{}, err
	}

	set = append(set, "updated_at = ?")
	args = append(args, s.now().UTC().Unix(), id)
	result, err := tx.ExecContext(ctx, `UPDATE matches SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return Match{}, Unavailable("patch match", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Match{}, Unavailable("patch match", err)
	}
	if affected == 0 {
		return Match{}, ErrNotFound
	}

	m, err := getMatch(ctx, tx, id)
	if err != nil {
		return Match{}, err
	}
	if err := tx.Commit(); err != nil {
		return Match{}, Unavailable("patch match", err)
	}

	log.Debug("Patched match", "id", id, "fields", p.Fields())
	return m, nil
}

// DeleteMatch removes the match with the given id.
func (s *store) DeleteMatch(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `DELETE FROM matches WHERE id = ?`, id)
	if err != nil {
		return Unavailable("delete match", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Unavailable("delete match", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	log.Info("Deleted match", "id", id)
	return nil
}

// patchColumns maps the set fields of p to SET clauses.
func patchColumns(p Patch) ([]string, []any, error) {
	var set []string
	var args []any
	add := func(column string, v any) {
		set = append(set, column+" = ?")
		args = append(args, v)
	}
	if p.LeagueName != nil {
		add("league_name", *p.LeagueName)
	}
	if p.Venue != nil {
		add("venue", *p.Venue)
	}
	if p.StartTime != nil {
		add("start_time", unixOrNull(*p.StartTime))
	}
	if p.Team1Name != nil {
		add("team1_name", *p.Team1Name)
	}
	if p.Team1Logo != nil {
		add("team1_logo", *p.Team1Logo)
	}
	if p.Team2Name != nil {
		add("team2_name", *p.Team2Name)
	}
	if p.Team2Logo != nil {
		add("team2_logo", *p.Team2Logo)
	}
	if p.IsLive != nil {
		add("is_live", *p.IsLive)
	}
	if p.IsPaused != nil {
		add("is_paused", *p.IsPaused)
	}
	if p.IsFinished != nil {
		add("is_finished", *p.IsFinished)
	}
	if p.CurrentMinute != nil {
		add("current_minute", *p.CurrentMinute)
	}
	if p.ExtraTime != nil {
		add("extra_time", *p.ExtraTime)
	}
	if p.Team1Score != nil {
		add("team1_score", *p.Team1Score)
	}
	if p.Team2Score != nil {
		add("team2_score", *p.Team2Score)
	}
	if p.Lineups != nil {
		lineupsJSON, err := json.Marshal(p.Lineups)
		if err != nil {
			return nil, nil, err
		}
		add("lineups_json", string(lineupsJSON))
	}
	if len(set) == 0 {
		return nil, nil, invalidValue("empty patch")
	}
	return set, args, nil
}

// scanMatch is a helper function to scan a single match row.
func scanMatch(scanner interface{ Scan(...any) error }) (Match, error) {
	var m Match
	var startTime sql.NullInt64
	var lineupsJSON sql.NullString
	var createdAt, updatedAt int64

	err := scanner.Scan(
		&m.ID, &m.LeagueName, &m.Venue, &startTime, &m.Team1Name, &m.Team1Logo, &m.Team2Name, &m.Team2Logo,
		&m.IsLive, &m.IsPaused, &m.IsFinished, &m.CurrentMinute, &m.ExtraTime, &m.Team1Score, &m.Team2Score,
		&lineupsJSON, &createdAt, &updatedAt,
	)
	if err != nil {
		return Match{}, err
	}

	if startTime.Valid {
		m.StartTime = time.Unix(startTime.Int64, 0).UTC()
	}
	m.CreatedAt = time.Unix(createdAt, 0).UTC()
	m.UpdatedAt = time.Unix(updatedAt, 0).UTC()

	if lineupsJSON.Valid && lineupsJSON.String != "" {
		if err := json.Unmarshal([]byte(lineupsJSON.String), &m.Lineups); err != nil {
			log.Error("Failed to unmarshal lineups_json", "error", err, "matchID", m.ID)
		}
	}
	return m, nil
}

func unixOrNull(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}
