package tui

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/prospector/internal/config"
	"github.com/vovakirdan/prospector/internal/core"
	"github.com/vovakirdan/prospector/internal/run"
	"github.com/vovakirdan/prospector/internal/storage"
)

type stubBoard struct {
	saved []storage.HighScore
}

func (b *stubBoard) TopScores(int) ([]storage.HighScore, error) { return b.saved, nil }
func (b *stubBoard) Qualifies(int) (bool, error)                { return true, nil }
func (b *stubBoard) SaveRun(storage.RunRecord) (int64, error)   { return 1, nil }
func (b *stubBoard) SaveHighScore(e storage.HighScore) (int64, error) {
	b.saved = append(b.saved, e)
	return int64(len(b.saved)), nil
}

// modelConfig starts the craft on the station in an empty belt.
func modelConfig() config.ProspectorConfig {
	cfg := config.DefaultProspectorConfig()
	cfg.Spawning.InitialAsteroids = 0
	cfg.Spawning.TargetAsteroids = 0
	cfg.Aliens.MaxAlive = 0
	cfg.Aliens.FirstSpawnDelay = math.MaxInt32
	cfg.World.LaunchOffset = 0
	cfg.World.LaunchSpeed = 0
	return cfg
}

func newTestModel(t *testing.T, cfg config.ProspectorConfig, board run.Leaderboard) Model {
	t.Helper()
	ctrl, err := run.Setup(cfg, 1, board, nil)
	if err != nil {
		t.Fatalf("Setup() error: %v", err)
	}
	rt := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
	return NewModel(ctrl, rt, cfg.World.DockRadius)
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return nm
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var enterKey = tea.KeyMsg{Type: tea.KeyEnter}

func tick(t *testing.T, m Model, n int) Model {
	t.Helper()
	now := m.lastTick
	if now.IsZero() {
		now = time.Unix(0, 0)
	}
	for i := 0; i < n; i++ {
		now = now.Add(time.Second / 60)
		m = send(t, m, TickMsg(now))
	}
	return m
}

func TestModelTitleStartsRun(t *testing.T) {
	m := newTestModel(t, modelConfig(), nil)
	if got := m.ctrl.State(); got != run.StateStart {
		t.Fatalf("initial state = %v, expected START", got)
	}
	if !strings.Contains(m.View(), "ENTER to launch") {
		t.Error("title view is missing the launch prompt")
	}

	m = send(t, m, enterKey)
	if got := m.ctrl.State(); got != run.StatePlaying {
		t.Errorf("state after enter = %v, expected PLAYING", got)
	}
}

func TestModelDockAndLaunch(t *testing.T) {
	m := newTestModel(t, modelConfig(), nil)
	m = send(t, m, enterKey)

	m = send(t, m, keyRunes("e"))
	m = tick(t, m, 1)
	if got := m.ctrl.State(); got != run.StateDocked {
		t.Fatalf("state after dock request = %v, expected DOCKED", got)
	}
	if !strings.Contains(m.View(), "KRONOS STATION") {
		t.Error("station view not shown while docked")
	}

	m = send(t, m, keyRunes("f"))
	if m.message != "No credits for fuel" {
		t.Errorf("refuel message = %q, expected %q", m.message, "No credits for fuel")
	}

	// Up from the first line wraps to Launch.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if want := len(m.ctrl.Offers()) + 1; m.cursor != want {
		t.Errorf("cursor = %d, expected %d", m.cursor, want)
	}
	m = send(t, m, enterKey)
	if got := m.ctrl.State(); got != run.StatePlaying {
		t.Errorf("state after launch = %v, expected PLAYING", got)
	}
}

func TestModelPauseStopsTicks(t *testing.T) {
	m := newTestModel(t, modelConfig(), nil)
	m = send(t, m, enterKey)
	m = tick(t, m, 2)
	before := m.ctrl.Snapshot().Tick

	m = send(t, m, keyRunes("p"))
	m = tick(t, m, 5)
	if got := m.ctrl.Snapshot().Tick; got != before {
		t.Errorf("tick while paused = %d, expected %d", got, before)
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("paused flight view is missing the pause banner")
	}

	m = send(t, m, keyRunes("p"))
	m = tick(t, m, 1)
	if got := m.ctrl.Snapshot().Tick; got != before+1 {
		t.Errorf("tick after resume = %d, expected %d", got, before+1)
	}
}

func TestModelHighScoreEntry(t *testing.T) {
	cfg := modelConfig()
	cfg.Ship.MaxFuel = 1
	cfg.Ship.FuelConsumptionRate = 0.5
	board := &stubBoard{}
	m := newTestModel(t, cfg, board)

	m = send(t, m, enterKey)
	m = tick(t, m, 5)
	if got := m.ctrl.State(); got != run.StateHighScoreEntry {
		t.Fatalf("state after running dry = %v, expected HIGHSCORE_ENTRY", got)
	}

	// q is a letter here, not quit.
	for _, r := range "qz" {
		m = send(t, m, keyRunes(string(r)))
	}
	if m.quitting {
		t.Fatal("typing q during initials entry quit the game")
	}
	m = send(t, m, enterKey)

	if got := m.ctrl.State(); got != run.StateGameOver {
		t.Errorf("state after submit = %v, expected GAMEOVER", got)
	}
	if len(board.saved) != 1 || board.saved[0].Name != "QZ" {
		t.Errorf("saved scores = %+v, expected one entry for QZ", board.saved)
	}

	m = send(t, m, keyRunes("r"))
	if got := m.ctrl.State(); got != run.StatePlaying {
		t.Errorf("state after restart = %v, expected PLAYING", got)
	}
}

func TestModelGameOverWithoutBoard(t *testing.T) {
	cfg := modelConfig()
	cfg.Ship.MaxFuel = 1
	cfg.Ship.FuelConsumptionRate = 0.5
	m := newTestModel(t, cfg, nil)

	m = send(t, m, enterKey)
	m = tick(t, m, 5)
	if got := m.ctrl.State(); got != run.StateGameOver {
		t.Fatalf("state after running dry = %v, expected GAMEOVER", got)
	}
	if !strings.Contains(m.View(), "RUN OVER") {
		t.Error("game over view not shown")
	}

	m = send(t, m, enterKey)
	if got := m.ctrl.State(); got != run.StateStart {
		t.Errorf("state after enter = %v, expected START", got)
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, modelConfig(), nil)
	next, cmd := m.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatal("Update(q) returned no command, expected tea.Quit")
	}
	if v := next.View(); v != "" {
		t.Errorf("View() after quit = %q, expected empty", v)
	}
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t, modelConfig(), nil)
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.screen.Width() != 120 || m.screen.Height() != 40 {
		t.Errorf("screen = %dx%d, expected 120x40", m.screen.Width(), m.screen.Height())
	}
}
