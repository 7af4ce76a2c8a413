// Package store persists finished match results in Postgres and derives
// recent-form summaries from them. The estimator consumes the summaries
// through its FormSource interface.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/SYNCODE-SLIIT/sports-analysis/pkg/models"
)

// MatchResult is one finished match as stored, newest first when listed.
type MatchResult struct {
	EventID    string
	HomeTeamID string
	AwayTeamID string
	HomeScore  int
	AwayScore  int
	PlayedAt   time.Time
}

// ResultsStore reads and writes finished results.
type ResultsStore struct {
	db *sql.DB
}

// Open connects to Postgres and verifies the connection.
func Open(databaseURL string) (*ResultsStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &ResultsStore{db: db}, nil
}

// NewResultsStore wraps an existing connection, mostly for tests.
func NewResultsStore(db *sql.DB) *ResultsStore {
	return &ResultsStore{db: db}
}

// Close releases the underlying connection pool.
func (s *ResultsStore) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the results table if it does not exist.
func (s *ResultsStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS match_results (
			event_id     TEXT PRIMARY KEY,
			home_team_id TEXT NOT NULL,
			away_team_id TEXT NOT NULL,
			home_score   INT NOT NULL,
			away_score   INT NOT NULL,
			played_at    TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_match_results_home ON match_results (home_team_id, played_at DESC);
		CREATE INDEX IF NOT EXISTS idx_match_results_away ON match_results (away_team_id, played_at DESC);
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// InsertResult upserts one finished match. Re-ingesting the same event
// overwrites the previous row, so late corrections win.
func (s *ResultsStore) InsertResult(ctx context.Context, result MatchResult) error {
	query := `
		INSERT INTO match_results (event_id, home_team_id, away_team_id, home_score, away_score, played_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id) DO UPDATE SET
			home_team_id = EXCLUDED.home_team_id,
			away_team_id = EXCLUDED.away_team_id,
			home_score   = EXCLUDED.home_score,
			away_score   = EXCLUDED.away_score,
			played_at    = EXCLUDED.played_at
	`
	_, err := s.db.ExecContext(ctx, query,
		result.EventID, result.HomeTeamID, result.AwayTeamID,
		result.HomeScore, result.AwayScore, result.PlayedAt)
	if err != nil {
		return fmt.Errorf("insert result %s: %w", result.EventID, err)
	}
	return nil
}

// RecordFinishedEvents stores every event in the batch that has a final
// score, skipping anything still missing a score or a team ID. Returns
// the number of rows written.
func (s *ResultsStore) RecordFinishedEvents(ctx context.Context, events []models.Event) (int, error) {
	written := 0
	for _, event := range events {
		if event.HomeScore == nil || event.AwayScore == nil {
			continue
		}
		if event.EventID == "" || event.HomeTeamID == "" || event.AwayTeamID == "" {
			continue
		}
		date := event.Date
		if len(date) > 10 {
			date = date[:10]
		}
		playedAt, err := time.Parse("2006-01-02", date)
		if err != nil {
			continue
		}
		result := MatchResult{
			EventID:    event.EventID,
			HomeTeamID: event.HomeTeamID,
			AwayTeamID: event.AwayTeamID,
			HomeScore:  *event.HomeScore,
			AwayScore:  *event.AwayScore,
			PlayedAt:   playedAt,
		}
		if err := s.InsertResult(ctx, result); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// RecentResults returns the team's last n finished matches, newest first.
func (s *ResultsStore) RecentResults(ctx context.Context, teamID string, n int) ([]MatchResult, error) {
	query := `
		SELECT event_id, home_team_id, away_team_id, home_score, away_score, played_at
		FROM match_results
		WHERE home_team_id = $1 OR away_team_id = $1
		ORDER BY played_at DESC
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, teamID, n)
	if err != nil {
		return nil, fmt.Errorf("query recent results for team %s: %w", teamID, err)
	}
	defer rows.Close()

	var results []MatchResult
	for rows.Next() {
		var r MatchResult
		if err := rows.Scan(&r.EventID, &r.HomeTeamID, &r.AwayTeamID, &r.HomeScore, &r.AwayScore, &r.PlayedAt); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return results, nil
}

// RecentForm summarizes the team's last n results. Implements the
// estimator's form source.
func (s *ResultsStore) RecentForm(ctx context.Context, teamID string, n int) (models.RecentFormSummary, error) {
	results, err := s.RecentResults(ctx, teamID, n)
	if err != nil {
		return models.RecentFormSummary{}, err
	}
	return FormFromResults(teamID, results), nil
}
