// Package sim is the per-frame simulation of the prospector: craft physics,
// the asteroid/loot/particle/alien pools, mining, pickup, theft, docking,
// the alien behavior state machine and the fuel/cargo/credit bookkeeping.
//
// The engine is single threaded. Each Tick runs the stages in a fixed order
// on a private copy of the world and publishes an immutable Snapshot when the
// frame completes.
package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/prospector/internal/config"
	"github.com/vovakirdan/prospector/internal/core"
	"github.com/vovakirdan/prospector/internal/vmath"
)

// RunStatus is emitted after every tick for the run controller.
type RunStatus int

const (
	StatusContinue RunStatus = iota
	StatusDocked
	StatusGameOver
)

func (s RunStatus) String() string {
	switch s {
	case StatusContinue:
		return "continue"
	case StatusDocked:
		return "docked"
	case StatusGameOver:
		return "game-over"
	default:
		return fmt.Sprintf("RunStatus(%d)", int(s))
	}
}

// Phase is the engine's own view of the run.
type Phase int

const (
	PhaseIdle Phase = iota // no run started
	PhasePlaying
	PhaseDocked
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseDocked:
		return "docked"
	case PhaseGameOver:
		return "game-over"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// status is what Tick reports while the engine is not flying.
func (p Phase) status() RunStatus {
	switch p {
	case PhaseDocked:
		return StatusDocked
	case PhaseGameOver:
		return StatusGameOver
	default:
		return StatusContinue
	}
}

// Input is the per-tick command from the player.
type Input struct {
	Heading vmath.Vec // desired facing; Zero keeps the current rotation
	Thrust  float64   // 0..1
	Mine    bool
	Dock    bool
}

// sanitize clamps malformed input instead of rejecting it.
func (in Input) sanitize() Input {
	if !vmath.Finite(in.Heading) {
		in.Heading = vmath.Zero
	}
	if math.IsNaN(in.Thrust) {
		in.Thrust = 0
	}
	in.Thrust = core.ClampF(in.Thrust, 0, 1)
	return in
}

// PlayerState is the craft and the pilot's books.
type PlayerState struct {
	Credits             int
	LifetimeEarnings    int // score; never decreases
	TotalCargoDelivered int
	MissionsCompleted   int
	CurrentFuel         float64
	Cargo               core.Cargo
	Ship                config.ShipConfig
	Position            vmath.Vec
	Velocity            vmath.Vec
	Rotation            float64 // radians
}

// ID identifies a live entity within its pool. Zero is never issued.
type ID int

// Asteroid is a mineable rock. Its outline is generated at spawn and never
// changes afterwards.
type Asteroid struct {
	ID            ID
	Position      vmath.Vec
	Velocity      vmath.Vec
	Radius        float64
	Outline       []vmath.Vec // vertices relative to the center, unrotated
	Mineral       core.Mineral
	Health        float64
	MaxHealth     float64
	Rotation      float64
	RotationSpeed float64
	Heating       bool // being mined this tick; cosmetic only
}

func (a *Asteroid) setID(id ID) { a.ID = id }

// LootType is either a mineral or a fuel canister.
type LootType int

// LootFuel is the fuel canister loot type.
const LootFuel = LootType(core.MineralCount)

// MineralLoot returns the loot type carrying mineral m.
func MineralLoot(m core.Mineral) LootType {
	return LootType(m)
}

// IsFuel reports whether the loot refuels the craft.
func (t LootType) IsFuel() bool {
	return t == LootFuel
}

// Mineral returns the mineral carried, ok is false for fuel.
func (t LootType) Mineral() (core.Mineral, bool) {
	m := core.Mineral(t)
	return m, m.Valid()
}

func (t LootType) String() string {
	if t.IsFuel() {
		return "Fuel"
	}
	return core.Mineral(t).String()
}

// Loot is a floating pickup.
type Loot struct {
	ID       ID
	Position vmath.Vec
	Velocity vmath.Vec
	Kind     LootType
	Amount   float64
	Life     int // ticks until it evaporates
}

func (l *Loot) setID(id ID) { l.ID = id }

// Particle is a cosmetic spark or floating text.
type Particle struct {
	ID       ID
	Position vmath.Vec
	Velocity vmath.Vec
	Life     int
	MaxLife  int
	Color    core.Color
	Size     float64
	Text     string
}

func (p *Particle) setID(id ID) { p.ID = id }

// AlienState is the behavior state of a hostile.
type AlienState int

const (
	Chasing AlienState = iota
	Draining
	Fleeing
)

func (s AlienState) String() string {
	switch s {
	case Chasing:
		return "CHASING"
	case Draining:
		return "DRAINING"
	case Fleeing:
		return "FLEEING"
	default:
		return fmt.Sprintf("AlienState(%d)", int(s))
	}
}

// Alien is a hostile that steals cargo.
type Alien struct {
	ID          ID
	Position    vmath.Vec
	Velocity    vmath.Vec
	HP          float64
	MaxHP       float64
	Stolen      core.Cargo
	TotalStolen int // always Stolen.Total()
	State       AlienState
	DrainTimer  int
	WobbleAngle float64

	drainClock int // ticks since the last stolen unit
}

func (a *Alien) setID(id ID) { a.ID = id }

// Beam is the mining beam as drawn this tick.
type Beam struct {
	Active   bool
	From, To vmath.Vec
	Hit      bool
}

// Snapshot is the read-only state handed to presentation after a tick.
// Nothing in it aliases engine memory.
type Snapshot struct {
	Tick       uint64
	Phase      Phase
	Elapsed    time.Duration // flight time of the current sortie
	Difficulty float64
	Station    vmath.Vec
	Player     PlayerState
	Beam       Beam
	Asteroids  []Asteroid
	Loot       []Loot
	Particles  []Particle
	Aliens     []Alien
}
