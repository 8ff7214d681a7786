// Package store is an optional sqlite3-backed ledger of trial results,
// for runs that want every game's outcome queryable after the fact
// instead of only the aggregated histogram. Table shape and connection
// handling follow the teacher's pkg/server/internal/db package.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DB is a trial ledger backed by a sqlite3 file.
type DB struct {
	*sql.DB
}

// Open creates (or reuses) a sqlite3 database at path and ensures the
// trials table exists.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: opening %s: %w", path, err)
	}
	if err := createTables(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return &DB{sqlDB}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS trials (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      TEXT NOT NULL,
			strategy    TEXT NOT NULL,
			num_players INTEGER NOT NULL,
			seed        INTEGER NOT NULL,
			score       INTEGER NOT NULL,
			reason      TEXT NOT NULL,
			created_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(run_id, seed)
		)
	`)
	return err
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.DB.Close()
}

// Trial is one recorded game outcome.
type Trial struct {
	RunID      string
	Strategy   string
	NumPlayers int
	Seed       int64
	Score      int
	Reason     string
}

// RecordTrial inserts one trial's result, silently ignoring a duplicate
// (run_id, seed) pair — simulations are safe to re-run idempotently.
func (db *DB) RecordTrial(t Trial) error {
	_, err := db.Exec(`
		INSERT OR IGNORE INTO trials (run_id, strategy, num_players, seed, score, reason)
		VALUES (?, ?, ?, ?, ?, ?)
	`, t.RunID, t.Strategy, t.NumPlayers, t.Seed, t.Score, t.Reason)
	if err != nil {
		return fmt.Errorf("store: recording trial (run %s, seed %d): %w", t.RunID, t.Seed, err)
	}
	return nil
}

// RunSummary aggregates every trial recorded for runID.
type RunSummary struct {
	Count       int
	TotalScore  int64
	AverageScore float64
}

// SummarizeRun aggregates every trial recorded under runID.
func (db *DB) SummarizeRun(runID string) (RunSummary, error) {
	var summary RunSummary
	row := db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(score), 0)
		FROM trials WHERE run_id = ?
	`, runID)
	if err := row.Scan(&summary.Count, &summary.TotalScore); err != nil {
		return RunSummary{}, fmt.Errorf("store: summarizing run %s: %w", runID, err)
	}
	if summary.Count > 0 {
		summary.AverageScore = float64(summary.TotalScore) / float64(summary.Count)
	}
	return summary, nil
}

// NonPerfectSeeds returns every seed recorded for runID with a score
// below maxScore, for pointing a later `-j` trace run at just the losses.
func (db *DB) NonPerfectSeeds(runID string, maxScore int) ([]int64, error) {
	rows, err := db.Query(`
		SELECT seed FROM trials WHERE run_id = ? AND score < ? ORDER BY seed
	`, runID, maxScore)
	if err != nil {
		return nil, fmt.Errorf("store: listing non-perfect seeds for run %s: %w", runID, err)
	}
	defer rows.Close()

	var seeds []int64
	for rows.Next() {
		var seed int64
		if err := rows.Scan(&seed); err != nil {
			return nil, fmt.Errorf("store: scanning seed for run %s: %w", runID, err)
		}
		seeds = append(seeds, seed)
	}
	return seeds, rows.Err()
}
