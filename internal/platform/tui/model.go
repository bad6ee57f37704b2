package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/prospector/internal/core"
	"github.com/vovakirdan/prospector/internal/run"
	"github.com/vovakirdan/prospector/internal/upgrade"
)

// Model is the Bubble Tea model for one pilot's session.
type Model struct {
	ctrl       *run.Controller
	screen     *core.Screen
	config     core.RuntimeConfig
	dockRadius float64
	keys       *KeyMapper
	controls   Controls
	initials   textinput.Model
	cursor     int    // station menu selection
	message    string // last station or leaderboard notice
	paused     bool
	lastTick   time.Time
	quitting   bool
}

// NewModel creates a model on the title screen.
func NewModel(ctrl *run.Controller, cfg core.RuntimeConfig, dockRadius float64) Model {
	ti := textinput.New()
	ti.Placeholder = run.DefaultInitials
	ti.CharLimit = 3
	ti.Width = 5
	ti.Prompt = "> "

	return Model{
		ctrl:       ctrl,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		dockRadius: dockRadius,
		keys:       NewKeyMapper(),
		controls:   NewControls(),
		initials:   ti,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	if m.ctrl.State() == run.StateHighScoreEntry {
		var cmd tea.Cmd
		m.initials, cmd = m.initials.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey dispatches a key press by run state.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	// Initials take raw text, so q must not quit here.
	if m.ctrl.State() == run.StateHighScoreEntry {
		return m.handleInitials(msg)
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.ctrl.State() {
	case run.StateStart:
		if action == core.ActionConfirm || action == core.ActionMine {
			m.start()
		}
	case run.StatePlaying:
		if action == core.ActionPause {
			m.paused = !m.paused
			m.controls.Release()
			return m, nil
		}
		if !m.paused {
			m.controls.Press(action)
		}
	case run.StateDocked:
		m.handleStation(msg, action)
	case run.StateGameOver:
		switch {
		case msg.String() == "r":
			m.start()
		case action == core.ActionConfirm || action == core.ActionBack:
			if err := m.ctrl.ReturnToTitle(); err != nil {
				m.message = err.Error()
			}
		}
	}
	return m, nil
}

func (m *Model) start() {
	if err := m.ctrl.Start(); err != nil {
		m.message = err.Error()
		return
	}
	m.paused = false
	m.message = ""
	m.cursor = 0
	m.controls.Release()
}

// handleInitials feeds the text input until the pilot confirms.
func (m Model) handleInitials(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		entry, err := m.ctrl.SubmitInitials(m.initials.Value())
		if err != nil {
			m.message = err.Error()
			return m, nil
		}
		m.message = fmt.Sprintf("Logged %s with %d credits", entry.Name, entry.Score)
		m.initials.Reset()
		m.initials.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.initials, cmd = m.initials.Update(msg)
	return m, cmd
}

// stationItems is the number of menu lines: every upgrade, refuel and launch.
func (m Model) stationItems(offers []upgrade.Offer) int {
	return len(offers) + 2
}

// handleStation drives the station menu.
func (m *Model) handleStation(msg tea.KeyMsg, action core.Action) {
	offers := m.ctrl.Offers()
	n := m.stationItems(offers)

	switch msg.String() {
	case "f":
		m.refuel()
		return
	case "l":
		m.launch()
		return
	}

	switch action {
	case core.ActionUp:
		m.cursor = (m.cursor - 1 + n) % n
	case core.ActionDown:
		m.cursor = (m.cursor + 1) % n
	case core.ActionConfirm, core.ActionMine:
		switch {
		case m.cursor < len(offers):
			m.buy(offers[m.cursor])
		case m.cursor == len(offers):
			m.refuel()
		default:
			m.launch()
		}
	}
}

func (m *Model) buy(o upgrade.Offer) {
	p, err := m.ctrl.Buy(o.Track.ID)
	switch {
	case errors.Is(err, upgrade.ErrMaxLevel):
		m.message = o.Track.Name + " is maxed out"
	case errors.Is(err, upgrade.ErrInsufficientCredits):
		m.message = fmt.Sprintf("Need %d credits for %s", o.Next.Cost, o.Track.Name)
	case err != nil:
		m.message = err.Error()
	default:
		m.message = fmt.Sprintf("%s upgraded to level %d (-%d cr)", o.Track.Name, p.Levels[o.Track.ID], p.Cost)
	}
}

func (m *Model) refuel() {
	spent, err := m.ctrl.Refuel()
	switch {
	case errors.Is(err, upgrade.ErrTankFull):
		m.message = "Tank already full"
	case errors.Is(err, upgrade.ErrInsufficientCredits):
		m.message = "No credits for fuel"
	case err != nil:
		m.message = err.Error()
	default:
		m.message = fmt.Sprintf("Refueled for %d credits", spent)
	}
}

func (m *Model) launch() {
	if err := m.ctrl.Launch(); err != nil {
		m.message = err.Error()
		return
	}
	m.message = ""
	m.cursor = 0
	m.controls.Release()
}

// handleTick advances the flight with the time since the last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := time.Second / time.Duration(max(m.config.TickRate, 1))
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick)
	}
	m.lastTick = now

	if m.ctrl.State() == run.StatePlaying && !m.paused {
		m.ctrl.Tick(InputFromFrame(m.controls.Frame()), dt)
		switch m.ctrl.State() {
		case run.StateDocked:
			m.controls.Release()
			m.cursor = 0
			m.message = ""
		case run.StateHighScoreEntry:
			m.controls.Release()
			m.initials.Reset()
			m.initials.Focus()
		case run.StateGameOver:
			m.controls.Release()
		}
	}
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the flight view to a file.
func (m *Model) saveScreenshot() {
	m.drawFlight()

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".prospector", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("prospector_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, play continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

func (m *Model) drawFlight() {
	DrawFlight(m.screen, m.ctrl.Snapshot(), m.dockRadius)
	if m.paused {
		drawBanner(m.screen, "PAUSED  p to resume", core.ColorBrightYellow)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.ctrl.State() {
	case run.StateStart:
		return m.titleView()
	case run.StateDocked:
		return m.stationView()
	case run.StateHighScoreEntry:
		return m.initialsView()
	case run.StateGameOver:
		return m.gameOverView()
	}

	m.drawFlight()
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for a local pilot.
func Run(ctrl *run.Controller, cfg core.RuntimeConfig, dockRadius float64) error {
	p := tea.NewProgram(
		NewModel(ctrl, cfg, dockRadius),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
