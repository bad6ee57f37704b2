// Package config provides YAML-based configuration loading and difficulty
// management for the prospector.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/prospector/internal/core"
)

// ProspectorConfig contains every tunable of a run.
type ProspectorConfig struct {
	Ship       ShipConfig       `yaml:"ship"`
	World      WorldConfig      `yaml:"world"`
	Spawning   SpawningConfig   `yaml:"spawning"`
	Aliens     AlienConfig      `yaml:"aliens"`
	Economy    EconomyConfig    `yaml:"economy"`
	Upgrades   []UpgradeTrack   `yaml:"upgrades"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ShipConfig is the craft's performance envelope. Rates are per tick.
// A run holds it by value; the station replaces it wholesale between flights.
type ShipConfig struct {
	MaxFuel               float64 `yaml:"max_fuel"`
	FuelConsumptionRate   float64 `yaml:"fuel_consumption_rate"`   // idle drain per tick
	ThrustConsumptionRate float64 `yaml:"thrust_consumption_rate"` // extra drain per tick while thrusting
	MaxCargo              int     `yaml:"max_cargo"`
	Acceleration          float64 `yaml:"acceleration"`
	MaxSpeed              float64 `yaml:"max_speed"`
	RotationSpeed         float64 `yaml:"rotation_speed"` // radians per tick
	MiningPower           float64 `yaml:"mining_power"`   // damage per tick
	MiningRange           float64 `yaml:"mining_range"`
}

// WorldConfig defines the play field around the station.
type WorldConfig struct {
	StationX      float64 `yaml:"station_x"`
	StationY      float64 `yaml:"station_y"`
	FieldRadius   float64 `yaml:"field_radius"`   // craft is pushed back beyond this
	DespawnRadius float64 `yaml:"despawn_radius"` // asteroids and loot are removed beyond this
	DockRadius    float64 `yaml:"dock_radius"`
	PickupRadius  float64 `yaml:"pickup_radius"`
	MagnetRadius  float64 `yaml:"magnet_radius"`
	MagnetPull    float64 `yaml:"magnet_pull"`
	Drag          float64 `yaml:"drag"`
	LootDrag      float64 `yaml:"loot_drag"`
	BoundaryPush  float64 `yaml:"boundary_push"`
	LaunchOffset  float64 `yaml:"launch_offset"`
	LaunchSpeed   float64 `yaml:"launch_speed"`
}

// SpawningConfig defines asteroid density and cosmetic pools.
type SpawningConfig struct {
	TargetAsteroids  int                `yaml:"target_asteroids"`
	AsteroidInterval int                `yaml:"asteroid_interval"` // ticks between refill waves
	AsteroidsPerWave int                `yaml:"asteroids_per_wave"`
	InitialAsteroids int                `yaml:"initial_asteroids"`
	MinDistance      float64            `yaml:"min_distance"` // from the craft
	MaxDistance      float64            `yaml:"max_distance"`
	MinRadius        float64            `yaml:"min_radius"`
	MaxRadius        float64            `yaml:"max_radius"`
	HealthPerRadius  float64            `yaml:"health_per_radius"`
	HealthPerUnit    int                `yaml:"health_per_unit"` // max health per unit of ore dropped
	MaxDrift         float64            `yaml:"max_drift"`
	MaxSpin          float64            `yaml:"max_spin"`
	OutlineVertices  int                `yaml:"outline_vertices"`
	Jaggedness       float64            `yaml:"jaggedness"`
	LootLife         int                `yaml:"loot_life"`
	MaxParticles     int                `yaml:"max_particles"`
	MineralWeights   map[string]int     `yaml:"mineral_weights"`
	Hardness         map[string]float64 `yaml:"hardness"`
}

// AlienConfig defines hostile spawning and behavior.
type AlienConfig struct {
	MaxAlive         int     `yaml:"max_alive"`
	FirstSpawnDelay  int     `yaml:"first_spawn_delay"` // ticks after launch
	SpawnInterval    int     `yaml:"spawn_interval"`    // ticks at difficulty 0
	MaxHP            float64 `yaml:"max_hp"`
	HitRadius        float64 `yaml:"hit_radius"`
	StealRadius      float64 `yaml:"steal_radius"`
	PursuitSpeed     float64 `yaml:"pursuit_speed"`
	FleeSpeed        float64 `yaml:"flee_speed"`
	Steering         float64 `yaml:"steering"` // fraction of velocity error corrected per tick
	DrainTicks       int     `yaml:"drain_ticks"`
	DrainInterval    int     `yaml:"drain_interval"` // ticks per stolen unit
	WobbleRate       float64 `yaml:"wobble_rate"`
	WobbleAmplitude  float64 `yaml:"wobble_amplitude"`
	BeamDamageFactor float64 `yaml:"beam_damage_factor"`
	KillFuelReward   float64 `yaml:"kill_fuel_reward"`
	SpawnDistance    float64 `yaml:"spawn_distance"`
	EscapeDistance   float64 `yaml:"escape_distance"` // beyond field_radius
}

// EconomyConfig holds the station's prices.
type EconomyConfig struct {
	Prices     map[string]int `yaml:"prices"`
	RefuelCost float64        `yaml:"refuel_cost"` // credits per unit of fuel
}

// UpgradeCost is one purchasable level of an upgrade track.
type UpgradeCost struct {
	Level int     `yaml:"level"`
	Cost  int     `yaml:"cost"`
	Value float64 `yaml:"value"` // the stat value at this level
}

// UpgradeTrack is an ordered list of levels for one ship stat.
type UpgradeTrack struct {
	ID     string        `yaml:"id"`
	Name   string        `yaml:"name"`
	Stat   string        `yaml:"stat"`
	Levels []UpgradeCost `yaml:"levels"`
}

// Station returns the station position.
func (w WorldConfig) Station() (x, y float64) {
	return w.StationX, w.StationY
}

// PriceTable resolves the configured prices into a fixed table.
// Minerals missing from the config are worth nothing.
func (e EconomyConfig) PriceTable() (core.PriceTable, error) {
	var table core.PriceTable
	for key, price := range e.Prices {
		m, err := core.ParseMineral(key)
		if err != nil {
			return table, fmt.Errorf("economy.prices: %w", err)
		}
		table[m] = price
	}
	return table, nil
}

// MineralTable resolves a per-mineral map into a fixed table, using def for
// missing entries.
func MineralTable[T int | float64](values map[string]T, def T) ([core.MineralCount]T, error) {
	var table [core.MineralCount]T
	for i := range table {
		table[i] = def
	}
	for key, v := range values {
		m, err := core.ParseMineral(key)
		if err != nil {
			return table, err
		}
		table[m] = v
	}
	return table, nil
}

// Validate rejects configurations the simulation cannot run with.
func (c *ProspectorConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	s := c.Ship
	check(s.MaxFuel > 0, "ship.max_fuel must be positive")
	check(s.MaxCargo > 0, "ship.max_cargo must be positive")
	check(s.MaxSpeed > 0, "ship.max_speed must be positive")
	check(s.FuelConsumptionRate >= 0 && s.ThrustConsumptionRate >= 0, "ship fuel rates must not be negative")

	w := c.World
	check(w.Drag > 0 && w.Drag < 1, "world.drag must be in (0, 1), got %v", w.Drag)
	check(w.LootDrag > 0 && w.LootDrag <= 1, "world.loot_drag must be in (0, 1]")
	check(w.FieldRadius > 0, "world.field_radius must be positive")
	check(w.DespawnRadius >= w.FieldRadius, "world.despawn_radius must be at least field_radius")

	sp := c.Spawning
	check(sp.HealthPerUnit > 0, "spawning.health_per_unit must be positive")
	check(sp.MinRadius > 0 && sp.MaxRadius >= sp.MinRadius, "spawning radius range is invalid")
	check(sp.OutlineVertices >= 3, "spawning.outline_vertices must be at least 3")
	check(sp.MaxDistance >= sp.MinDistance, "spawning distance range is invalid")

	a := c.Aliens
	check(a.DrainInterval > 0, "aliens.drain_interval must be positive")
	check(a.SpawnInterval > 0, "aliens.spawn_interval must be positive")

	if _, err := c.Economy.PriceTable(); err != nil {
		errs = append(errs, err)
	}
	if _, err := MineralTable(sp.MineralWeights, 0); err != nil {
		errs = append(errs, fmt.Errorf("spawning.mineral_weights: %w", err))
	}
	if _, err := MineralTable(sp.Hardness, 1.0); err != nil {
		errs = append(errs, fmt.Errorf("spawning.hardness: %w", err))
	}
	for _, t := range c.Upgrades {
		check(IsShipStat(t.Stat), "upgrade %q: unknown stat %q", t.ID, t.Stat)
	}

	return errors.Join(errs...)
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // score, or seconds of flight, at max difficulty
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier        float64 `yaml:"speed_multiplier"`         // added to alien speed at max difficulty
	SpawnIntervalReduction float64 `yaml:"spawn_interval_reduction"` // fraction of the alien interval removed at max
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
