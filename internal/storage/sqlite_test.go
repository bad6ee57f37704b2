package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsScores(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveHighScore(HighScore{Name: "ACE", Score: 500}); err != nil {
		t.Fatalf("SaveHighScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	scores, err := store.TopScores(0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Name != "ACE" {
		t.Errorf("TopScores() = %+v, expected the saved ACE entry", scores)
	}
}

func TestHighScoresSortedAndCapped(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 12; i++ {
		if _, err := store.SaveHighScore(HighScore{Name: "P", Score: i * 100, Missions: i, Cargo: i * 3}); err != nil {
			t.Fatalf("SaveHighScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores(50)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != MaxHighScores {
		t.Fatalf("TopScores() returned %d entries, expected %d", len(scores), MaxHighScores)
	}
	if scores[0].Score != 1200 {
		t.Errorf("top score = %d, expected 1200", scores[0].Score)
	}
	if scores[len(scores)-1].Score != 300 {
		t.Errorf("lowest kept score = %d, expected 300", scores[len(scores)-1].Score)
	}
	for i := 1; i < len(scores); i++ {
		if scores[i].Score > scores[i-1].Score {
			t.Errorf("scores not descending at %d: %d > %d", i, scores[i].Score, scores[i-1].Score)
		}
	}
	if scores[0].Missions != 12 || scores[0].Cargo != 36 {
		t.Errorf("top entry missions %d cargo %d, expected 12 and 36", scores[0].Missions, scores[0].Cargo)
	}
}

func TestHighScoreTiesKeepOlderFirst(t *testing.T) {
	store := openTestStore(t)
	store.SaveHighScore(HighScore{Name: "OLD", Score: 100})
	store.SaveHighScore(HighScore{Name: "NEW", Score: 100})

	scores, err := store.TopScores(0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if scores[0].Name != "OLD" || scores[1].Name != "NEW" {
		t.Errorf("tie order = %s, %s; expected OLD, NEW", scores[0].Name, scores[1].Name)
	}
}

func TestQualifies(t *testing.T) {
	store := openTestStore(t)

	ok, err := store.Qualifies(0)
	if err != nil {
		t.Fatalf("Qualifies() failed: %v", err)
	}
	if !ok {
		t.Errorf("Qualifies(0) on an empty board = false, expected true")
	}

	for i := 1; i <= MaxHighScores; i++ {
		store.SaveHighScore(HighScore{Name: "P", Score: i * 10})
	}

	tests := []struct {
		score int
		want  bool
	}{
		{5, false},
		{10, false}, // equal to the lowest does not qualify
		{11, true},
		{1000, true},
	}
	for _, tt := range tests {
		got, err := store.Qualifies(tt.score)
		if err != nil {
			t.Fatalf("Qualifies(%d) failed: %v", tt.score, err)
		}
		if got != tt.want {
			t.Errorf("Qualifies(%d) = %v, expected %v", tt.score, got, tt.want)
		}
	}
}

func TestClearHighScores(t *testing.T) {
	store := openTestStore(t)
	store.SaveHighScore(HighScore{Name: "A", Score: 1})

	if err := store.ClearHighScores(); err != nil {
		t.Fatalf("ClearHighScores() failed: %v", err)
	}
	scores, _ := store.TopScores(0)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
}

func TestRunsHistoryAndStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.RunStats()
	if err != nil {
		t.Fatalf("RunStats() failed: %v", err)
	}
	if stats.Runs != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty RunStats() = %+v", stats)
	}

	first := RunRecord{RunID: uuid.New(), Score: 300, Missions: 2, Cargo: 20, Duration: 90 * time.Second}
	second := RunRecord{RunID: uuid.New(), Score: 100, Missions: 1, Cargo: 5, Duration: 30 * time.Second}
	for _, r := range []RunRecord{first, second} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	if _, err := store.SaveRun(first); err == nil {
		t.Errorf("SaveRun() with a duplicate run id expected error")
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("RecentRuns() returned %d runs, expected 2", len(runs))
	}
	if runs[0].RunID != second.RunID {
		t.Errorf("newest run = %v, expected %v", runs[0].RunID, second.RunID)
	}
	if runs[1].Duration != 90*time.Second {
		t.Errorf("Duration = %v, expected 90s", runs[1].Duration)
	}

	stats, err = store.RunStats()
	if err != nil {
		t.Fatalf("RunStats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.BestScore != 300 || stats.AvgScore != 200 {
		t.Errorf("RunStats() = %+v, expected 2 runs, best 300, avg 200", stats)
	}
	if stats.TotalCargo != 25 || stats.TotalMissions != 3 || stats.TotalFlight != 2*time.Minute {
		t.Errorf("RunStats() totals = %+v", stats)
	}

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	runs, _ = store.RecentRuns(10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
}
