package storage

import (
	"fmt"
	"time"
)

// MaxHighScores is the size of the leaderboard.
const MaxHighScores = 10

// HighScore is one leaderboard entry.
type HighScore struct {
	ID        int64
	Name      string
	Score     int
	Missions  int
	Cargo     int
	CreatedAt time.Time
}

// SaveHighScore records an entry and trims the table back to MaxHighScores.
// Ties keep the older entry ahead.
func (s *Store) SaveHighScore(e HighScore) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		"INSERT INTO high_scores (name, score, missions, cargo) VALUES (?, ?, ?, ?)",
		e.Name, e.Score, e.Missions, e.Cargo,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save high score: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	_, err = tx.Exec(
		`DELETE FROM high_scores WHERE id NOT IN (
			SELECT id FROM high_scores ORDER BY score DESC, id ASC LIMIT ?
		)`,
		MaxHighScores,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prune high scores: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit high score: %w", err)
	}
	return id, nil
}

// TopScores returns the leaderboard, best first.
func (s *Store) TopScores(limit int) ([]HighScore, error) {
	if limit <= 0 || limit > MaxHighScores {
		limit = MaxHighScores
	}

	rows, err := s.db.Query(
		`SELECT id, name, score, missions, cargo, created_at
		 FROM high_scores
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query high scores: %w", err)
	}
	defer rows.Close()

	var entries []HighScore
	for rows.Next() {
		var e HighScore
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Name, &e.Score, &e.Missions, &e.Cargo, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Qualifies reports whether score earns a place on the leaderboard: the
// board has a free slot, or score beats the lowest entry.
func (s *Store) Qualifies(score int) (bool, error) {
	var count int
	var lowest int
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MIN(score), 0) FROM (
			SELECT score FROM high_scores ORDER BY score DESC, id ASC LIMIT ?
		)`,
		MaxHighScores,
	).Scan(&count, &lowest)
	if err != nil {
		return false, fmt.Errorf("storage: cannot check high score: %w", err)
	}
	return count < MaxHighScores || score > lowest, nil
}

// ClearHighScores empties the leaderboard.
func (s *Store) ClearHighScores() error {
	if _, err := s.db.Exec("DELETE FROM high_scores"); err != nil {
		return fmt.Errorf("storage: cannot clear high scores: %w", err)
	}
	return nil
}
