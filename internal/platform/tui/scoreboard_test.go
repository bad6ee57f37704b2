package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/prospector/internal/storage"
)

type fakeSource struct {
	scores []storage.HighScore
	runs   []storage.RunRecord
	stats  *storage.RunStats
	err    error
}

func (f fakeSource) TopScores(int) ([]storage.HighScore, error)  { return f.scores, f.err }
func (f fakeSource) RecentRuns(int) ([]storage.RunRecord, error) { return f.runs, f.err }
func (f fakeSource) RunStats() (*storage.RunStats, error)         { return f.stats, f.err }

func TestScoreboardTabs(t *testing.T) {
	when := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	src := fakeSource{
		scores: []storage.HighScore{
			{Name: "ACE", Score: 900, Missions: 4, Cargo: 30, CreatedAt: when},
			{Name: "BOB", Score: 400, Missions: 2, Cargo: 12, CreatedAt: when},
		},
		runs: []storage.RunRecord{
			{RunID: uuid.New(), Score: 400, Missions: 2, Cargo: 12, Duration: 90 * time.Second, CreatedAt: when},
		},
		stats: &storage.RunStats{Runs: 1, BestScore: 400, AvgScore: 400, TotalCargo: 12, TotalMissions: 2, TotalFlight: 90 * time.Second},
	}
	m := NewScoreboardModel(src, 100, 30)

	if got := len(m.table.Rows()); got != 2 {
		t.Fatalf("leaderboard rows = %d, expected 2", got)
	}
	if got := m.table.Rows()[0][1]; got != "ACE" {
		t.Errorf("first pilot = %q, expected ACE", got)
	}
	if v := m.View(); !strings.Contains(v, "best 400") {
		t.Errorf("View() missing stats line:\n%s", v)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.tab != tabHistory {
		t.Fatalf("tab after tab key = %v, expected Flight Log", m.tab)
	}
	if got := len(m.table.Rows()); got != 1 {
		t.Errorf("history rows = %d, expected 1", got)
	}
	if got := m.table.Rows()[0][4]; got != "1m30s" {
		t.Errorf("flight time = %q, expected 1m30s", got)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m = next.(ScoreboardModel); m.tab != tabLeaderboard {
		t.Errorf("tab after shift+tab = %v, expected Leaderboard", m.tab)
	}
}

func TestScoreboardWithoutData(t *testing.T) {
	tests := []struct {
		name   string
		source ScoreSource
		want   string
	}{
		{"no database", nil, "unavailable"},
		{"read error", fakeSource{err: errors.New("disk on fire")}, "disk on fire"},
		{"empty", fakeSource{stats: &storage.RunStats{}}, "No pilots"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewScoreboardModel(tt.source, 80, 24)
			if v := m.View(); !strings.Contains(v, tt.want) {
				t.Errorf("View() = %q, expected it to contain %q", v, tt.want)
			}
		})
	}
}

func TestScoreboardBackQuits(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil || !next.(ScoreboardModel).IsQuitting() {
		t.Error("esc did not close the scoreboard")
	}
}
