package sim

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/prospector/internal/config"
	"github.com/vovakirdan/prospector/internal/core"
	"github.com/vovakirdan/prospector/internal/vmath"
)

// MaxFrameDelta bounds the wall-clock delta a single tick may account for.
const MaxFrameDelta = 250 * time.Millisecond

// ErrNotDocked is returned by station commands outside the station.
var ErrNotDocked = errors.New("craft is not docked")

// StationOrder is what the station hands back to the engine after the
// pilot has shopped: the refitted ship, the credits left and the fuel load.
type StationOrder struct {
	Ship    config.ShipConfig
	Credits int
	Fuel    float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes run events to logger.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// stage is one step of the frame pipeline.
type stage struct {
	name string
	run  func(f *frame)
}

// frame carries the state of a tick in progress.
type frame struct {
	e      *Engine
	w      *World
	in     Input
	dt     time.Duration
	rng    *rand.Rand
	status RunStatus

	thrusting bool
	dock      bool
}

// Engine runs the simulation one fixed tick at a time. It is not safe for
// concurrent use; the presentation layer owns it from a single goroutine.
type Engine struct {
	cfg        config.ProspectorConfig
	prices     core.PriceTable
	weights    [core.MineralCount]int
	hardness   [core.MineralCount]float64
	station    vmath.Vec
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	logger     *log.Logger
	stages     []stage

	world  *World
	faults int
}

// NewEngine validates cfg and returns an idle engine. Call ResetRun to
// start flying.
func NewEngine(cfg config.ProspectorConfig, seed int64, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	prices, err := cfg.Economy.PriceTable()
	if err != nil {
		return nil, err
	}
	weights, err := config.MineralTable(cfg.Spawning.MineralWeights, 0)
	if err != nil {
		return nil, err
	}
	hardness, err := config.MineralTable(cfg.Spawning.Hardness, 1.0)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:        cfg,
		prices:     prices,
		weights:    weights,
		hardness:   hardness,
		station:    vmath.V(cfg.World.Station()),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		rng:        rand.New(rand.NewSource(seed)),
		logger:     log.New(io.Discard),
		world:      &World{},
	}
	e.stages = []stage{
		{"physics", (*frame).integrate},
		{"interactions", (*frame).resolve},
		{"aliens", (*frame).updateAliens},
		{"pools", (*frame).updatePools},
		{"economy", (*frame).settle},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.ProspectorConfig {
	return e.cfg
}

// Prices returns the station's price table.
func (e *Engine) Prices() core.PriceTable {
	return e.prices
}

// Station returns the station position.
func (e *Engine) Station() vmath.Vec {
	return e.station
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.world.Phase
}

// Snapshot returns a copy of the last completed frame.
func (e *Engine) Snapshot() Snapshot {
	return e.world.snapshot(e.station)
}

// Faults returns how many ticks were discarded after a fault.
func (e *Engine) Faults() int {
	return e.faults
}

// RunTime returns the total flight time of the current run.
func (e *Engine) RunTime() time.Duration {
	return e.world.RunTime
}

// ResetRun discards the current run and starts a new one with a fresh
// craft built from ship.
func (e *Engine) ResetRun(ship config.ShipConfig) error {
	if ship.MaxFuel <= 0 || ship.MaxCargo <= 0 || ship.MaxSpeed <= 0 {
		return fmt.Errorf("reset run: invalid ship config")
	}

	w := &World{
		Phase: PhasePlaying,
		Player: PlayerState{
			CurrentFuel: ship.MaxFuel,
			Ship:        ship,
		},
	}
	e.placeAtLaunch(&w.Player)
	w.Player.Rotation = -math.Pi / 2

	f := e.newFrame(w, Input{}, 0)
	for i := 0; i < e.cfg.Spawning.InitialAsteroids; i++ {
		f.spawnAsteroid()
	}
	w.asteroidTimer = e.cfg.Spawning.AsteroidInterval
	w.alienTimer = e.cfg.Aliens.FirstSpawnDelay

	e.world = w
	e.logger.Info("run started", "max_fuel", ship.MaxFuel, "max_cargo", ship.MaxCargo)
	return nil
}

// Launch leaves the station for a new sortie.
func (e *Engine) Launch() error {
	if e.world.Phase != PhaseDocked {
		return fmt.Errorf("launch: %w", ErrNotDocked)
	}
	w := e.world.Clone()
	e.placeAtLaunch(&w.Player)
	w.Aliens.Reset()
	w.Phase = PhasePlaying
	w.Elapsed = 0
	w.Beam = Beam{}
	w.alienTimer = e.cfg.Aliens.FirstSpawnDelay

	e.world = w
	e.logger.Info("launched", "mission", w.Player.MissionsCompleted+1, "fuel", w.Player.CurrentFuel)
	return nil
}

// Refit applies a station order. Credits can only be spent and fuel is
// clamped to the new tank.
func (e *Engine) Refit(order StationOrder) error {
	if e.world.Phase != PhaseDocked {
		return fmt.Errorf("refit: %w", ErrNotDocked)
	}
	p := e.world.Player
	if order.Credits < 0 || order.Credits > p.Credits {
		return fmt.Errorf("refit: credits %d out of range [0, %d]", order.Credits, p.Credits)
	}
	if order.Ship.MaxFuel <= 0 || order.Ship.MaxCargo <= 0 || order.Ship.MaxSpeed <= 0 {
		return fmt.Errorf("refit: invalid ship config")
	}

	w := e.world.Clone()
	w.Player.Ship = order.Ship
	w.Player.Credits = order.Credits
	w.Player.CurrentFuel = clampFuel(order.Fuel, order.Ship.MaxFuel)
	e.world = w
	return nil
}

// Tick advances the simulation by one frame. dt is wall-clock time since
// the previous tick, clamped to [0, MaxFrameDelta].
//
// The frame runs on a copy of the world. If any stage panics the copy is
// dropped, the fault is logged and the previous snapshot is returned, so
// the run survives a bad frame.
func (e *Engine) Tick(in Input, dt time.Duration) (snap Snapshot, status RunStatus) {
	if e.world.Phase != PhasePlaying {
		return e.Snapshot(), e.world.Phase.status()
	}

	next := e.world.Clone()
	f := e.newFrame(next, in.sanitize(), clampDelta(dt))
	current := ""

	defer func() {
		if r := recover(); r != nil {
			e.faults++
			e.logger.Error("tick fault, frame dropped", "tick", e.world.Tick, "stage", current, "panic", r)
			snap, status = e.Snapshot(), StatusContinue
		}
	}()

	next.Tick++
	next.Elapsed += f.dt
	next.RunTime += f.dt
	next.Difficulty = e.difficulty.Level(next.Player.LifetimeEarnings, next.Elapsed)
	for _, st := range e.stages {
		current = st.name
		st.run(f)
	}

	e.world = next
	return next.snapshot(e.station), f.status
}

func (e *Engine) newFrame(w *World, in Input, dt time.Duration) *frame {
	return &frame{e: e, w: w, in: in, dt: dt, rng: e.rng, status: StatusContinue}
}

// placeAtLaunch puts the craft just outside the station with a small push
// away from it.
func (e *Engine) placeAtLaunch(p *PlayerState) {
	p.Position = e.station.Add(vmath.V(0, e.cfg.World.LaunchOffset))
	p.Velocity = vmath.V(0, e.cfg.World.LaunchSpeed)
}

func clampDelta(dt time.Duration) time.Duration {
	if dt < 0 {
		return 0
	}
	if dt > MaxFrameDelta {
		return MaxFrameDelta
	}
	return dt
}

func clampFuel(fuel, max float64) float64 {
	if math.IsNaN(fuel) {
		return 0
	}
	return core.ClampF(fuel, 0, max)
}
