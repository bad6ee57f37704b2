// Package run drives a prospecting run from the title screen to the
// leaderboard. It owns the engine between ticks, applies station purchases
// and records results. Leaderboard failures never stop play: reads degrade
// to an empty board and writes are logged and dropped.
package run

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/prospector/internal/config"
	"github.com/vovakirdan/prospector/internal/sim"
	"github.com/vovakirdan/prospector/internal/storage"
	"github.com/vovakirdan/prospector/internal/upgrade"
)

// State is the screen-level state of a run.
type State int

const (
	StateStart State = iota
	StatePlaying
	StateDocked
	StateGameOver
	StateHighScoreEntry
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "START"
	case StatePlaying:
		return "PLAYING"
	case StateDocked:
		return "DOCKED"
	case StateGameOver:
		return "GAMEOVER"
	case StateHighScoreEntry:
		return "HIGHSCORE_ENTRY"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrWrongState is returned when a command does not apply to the current state.
var ErrWrongState = errors.New("command not available in this state")

// DefaultInitials is used when the pilot enters no name.
const DefaultInitials = "UNK"

// Leaderboard is the persistence the controller needs.
type Leaderboard interface {
	TopScores(limit int) ([]storage.HighScore, error)
	Qualifies(score int) (bool, error)
	SaveHighScore(e storage.HighScore) (int64, error)
	SaveRun(r storage.RunRecord) (int64, error)
}

// Summary describes a finished run.
type Summary struct {
	RunID    uuid.UUID
	Score    int
	Missions int
	Cargo    int
	Credits  int
	Duration time.Duration
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger routes run events to logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Controller is the run state machine.
type Controller struct {
	engine *sim.Engine
	shop   *upgrade.Shop
	board  Leaderboard
	logger *log.Logger

	state   State
	runID   uuid.UUID
	levels  upgrade.Levels
	summary Summary
}

// New creates a controller on the title screen. board may be nil, in which
// case scores are neither shown nor saved.
func New(engine *sim.Engine, shop *upgrade.Shop, board Leaderboard, opts ...Option) *Controller {
	c := &Controller{
		engine: engine,
		shop:   shop,
		board:  board,
		logger: log.New(io.Discard),
		state:  StateStart,
		levels: upgrade.Levels{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Setup builds the engine and station shop for cfg and returns a controller
// on the title screen. logger may be nil.
func Setup(cfg config.ProspectorConfig, seed int64, board Leaderboard, logger *log.Logger) (*Controller, error) {
	engine, err := sim.NewEngine(cfg, seed, sim.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	shop := upgrade.NewShop(cfg.Upgrades, cfg.Economy.RefuelCost)
	return New(engine, shop, board, WithLogger(logger)), nil
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Snapshot returns the engine's current snapshot.
func (c *Controller) Snapshot() sim.Snapshot {
	return c.engine.Snapshot()
}

// RunID identifies the current or last run.
func (c *Controller) RunID() uuid.UUID {
	return c.runID
}

// Summary returns the result of the last finished run.
func (c *Controller) Summary() Summary {
	return c.summary
}

// Levels returns a copy of the upgrade levels bought this run.
func (c *Controller) Levels() upgrade.Levels {
	return c.levels.Clone()
}

// Start begins a new run with the stock ship.
func (c *Controller) Start() error {
	if c.state != StateStart && c.state != StateGameOver {
		return fmt.Errorf("start from %v: %w", c.state, ErrWrongState)
	}
	if err := c.engine.ResetRun(c.engine.Config().Ship); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	c.runID = uuid.New()
	c.levels = upgrade.Levels{}
	c.summary = Summary{}
	c.state = StatePlaying
	c.logger.Info("run started", "run", c.runID)
	return nil
}

// Tick advances the engine while flying and follows its status.
func (c *Controller) Tick(in sim.Input, dt time.Duration) sim.Snapshot {
	if c.state != StatePlaying {
		return c.engine.Snapshot()
	}
	snap, status := c.engine.Tick(in, dt)
	switch status {
	case sim.StatusDocked:
		c.state = StateDocked
	case sim.StatusGameOver:
		c.finish(snap)
	}
	return snap
}

// Launch leaves the station.
func (c *Controller) Launch() error {
	if c.state != StateDocked {
		return fmt.Errorf("launch from %v: %w", c.state, ErrWrongState)
	}
	if err := c.engine.Launch(); err != nil {
		return err
	}
	c.state = StatePlaying
	return nil
}

// Offers lists the station's upgrades for the current ship.
func (c *Controller) Offers() []upgrade.Offer {
	p := c.engine.Snapshot().Player
	return c.shop.Offers(p.Ship, c.levels, p.Credits)
}

// RefuelCost is the price of a full tank right now.
func (c *Controller) RefuelCost() int {
	p := c.engine.Snapshot().Player
	return c.shop.RefuelCost(p.CurrentFuel, p.Ship.MaxFuel)
}

// Buy purchases the next level of an upgrade track.
func (c *Controller) Buy(trackID string) (upgrade.Purchase, error) {
	if c.state != StateDocked {
		return upgrade.Purchase{}, fmt.Errorf("buy from %v: %w", c.state, ErrWrongState)
	}
	p := c.engine.Snapshot().Player
	purchase, err := c.shop.Buy(trackID, p.Ship, c.levels, p.Credits)
	if err != nil {
		return upgrade.Purchase{}, err
	}
	order := sim.StationOrder{Ship: purchase.Ship, Credits: purchase.Credits, Fuel: p.CurrentFuel}
	if err := c.engine.Refit(order); err != nil {
		return upgrade.Purchase{}, err
	}
	c.levels = purchase.Levels
	c.logger.Info("upgrade bought", "track", trackID, "level", purchase.Levels[trackID], "cost", purchase.Cost)
	return purchase, nil
}

// Refuel fills the tank as far as credits allow. Returns the credits spent.
func (c *Controller) Refuel() (int, error) {
	if c.state != StateDocked {
		return 0, fmt.Errorf("refuel from %v: %w", c.state, ErrWrongState)
	}
	p := c.engine.Snapshot().Player
	fuel, credits, err := c.shop.Refuel(p.CurrentFuel, p.Ship.MaxFuel, p.Credits)
	if err != nil {
		return 0, err
	}
	if err := c.engine.Refit(sim.StationOrder{Ship: p.Ship, Credits: credits, Fuel: fuel}); err != nil {
		return 0, err
	}
	return p.Credits - credits, nil
}

// finish closes the run: record it, then decide whether the pilot gets to
// sign the leaderboard.
func (c *Controller) finish(snap sim.Snapshot) {
	p := snap.Player
	c.summary = Summary{
		RunID:    c.runID,
		Score:    p.LifetimeEarnings,
		Missions: p.MissionsCompleted,
		Cargo:    p.TotalCargoDelivered,
		Credits:  p.Credits,
		Duration: c.engine.RunTime(),
	}
	c.logger.Info("run over", "run", c.runID, "score", c.summary.Score,
		"missions", c.summary.Missions, "faults", c.engine.Faults())

	c.state = StateGameOver
	if c.board == nil {
		return
	}
	if _, err := c.board.SaveRun(storage.RunRecord{
		RunID:    c.runID,
		Score:    c.summary.Score,
		Missions: c.summary.Missions,
		Cargo:    c.summary.Cargo,
		Duration: c.summary.Duration,
	}); err != nil {
		c.logger.Warn("could not record run", "err", err)
	}

	ok, err := c.board.Qualifies(c.summary.Score)
	if err != nil {
		c.logger.Warn("could not check leaderboard", "err", err)
		return
	}
	if ok {
		c.state = StateHighScoreEntry
	}
}

// NormalizeInitials upper-cases name, drops whitespace and keeps at most
// three characters. An empty result becomes DefaultInitials.
func NormalizeInitials(name string) string {
	var b strings.Builder
	n := 0
	for _, r := range strings.ToUpper(name) {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			continue
		}
		b.WriteRune(r)
		n++
		if n == 3 {
			break
		}
	}
	if b.Len() == 0 {
		return DefaultInitials
	}
	return b.String()
}

// SubmitInitials writes the leaderboard entry for the finished run.
func (c *Controller) SubmitInitials(name string) (storage.HighScore, error) {
	if c.state != StateHighScoreEntry {
		return storage.HighScore{}, fmt.Errorf("submit initials from %v: %w", c.state, ErrWrongState)
	}
	entry := storage.HighScore{
		Name:      NormalizeInitials(name),
		Score:     c.summary.Score,
		Missions:  c.summary.Missions,
		Cargo:     c.summary.Cargo,
		CreatedAt: time.Now(),
	}
	if c.board != nil {
		if _, err := c.board.SaveHighScore(entry); err != nil {
			c.logger.Warn("could not save high score", "err", err)
		}
	}
	c.state = StateGameOver
	return entry, nil
}

// ReturnToTitle goes back to the title screen after a run.
func (c *Controller) ReturnToTitle() error {
	if c.state != StateGameOver {
		return fmt.Errorf("title from %v: %w", c.state, ErrWrongState)
	}
	c.state = StateStart
	return nil
}

// HighScores returns the leaderboard, or nothing if it cannot be read.
func (c *Controller) HighScores() []storage.HighScore {
	if c.board == nil {
		return nil
	}
	scores, err := c.board.TopScores(storage.MaxHighScores)
	if err != nil {
		c.logger.Warn("could not read leaderboard", "err", err)
		return nil
	}
	return scores
}
