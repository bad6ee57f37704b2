package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunRecord is the summary of a finished run, kept whether or not it made
// the leaderboard.
type RunRecord struct {
	ID        int64
	RunID     uuid.UUID
	Score     int
	Missions  int
	Cargo     int
	Duration  time.Duration
	CreatedAt time.Time
}

// RunStats aggregates the run history.
type RunStats struct {
	Runs          int
	BestScore     int
	AvgScore      float64
	TotalCargo    int64
	TotalMissions int64
	TotalFlight   time.Duration
	LastPlayed    time.Time
}

// SaveRun records a finished run. Saving the same run id twice is an error.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs (run_id, score, missions, cargo, duration_secs)
		 VALUES (?, ?, ?, ?, ?)`,
		r.RunID.String(), r.Score, r.Missions, r.Cargo, int64(r.Duration/time.Second),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentRuns returns the latest runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, score, missions, cargo, duration_secs, created_at
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var runID string
		var secs int64
		var createdAt any
		if err := rows.Scan(&r.ID, &runID, &r.Score, &r.Missions, &r.Cargo, &secs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		parsed, err := uuid.Parse(runID)
		if err != nil {
			return nil, fmt.Errorf("storage: bad run id %q: %w", runID, err)
		}
		r.RunID = parsed
		r.Duration = time.Duration(secs) * time.Second
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// RunStats aggregates every recorded run.
func (s *Store) RunStats() (*RunStats, error) {
	stats := &RunStats{}
	var flightSecs int64

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(cargo), 0), COALESCE(SUM(missions), 0), COALESCE(SUM(duration_secs), 0)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.BestScore, &stats.AvgScore, &stats.TotalCargo, &stats.TotalMissions, &flightSecs)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	stats.TotalFlight = time.Duration(flightSecs) * time.Second

	var lastPlayed any
	err = s.db.QueryRow(`SELECT created_at FROM runs ORDER BY created_at DESC, id DESC LIMIT 1`).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// ClearRuns deletes the run history.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
