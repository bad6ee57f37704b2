package config

import (
	_ "embed"
)

//go:embed defaults/prospector.yaml
var defaultProspectorYAML []byte

// DefaultShipConfig returns the starting ship of a new pilot.
func DefaultShipConfig() ShipConfig {
	return ShipConfig{
		MaxFuel:               100,
		FuelConsumptionRate:   0.004,
		ThrustConsumptionRate: 0.03,
		MaxCargo:              20,
		Acceleration:          0.12,
		MaxSpeed:              4.0,
		RotationSpeed:         0.08,
		MiningPower:           1.0,
		MiningRange:           180,
	}
}

// DefaultProspectorConfig returns the built-in configuration. It is the
// fallback when the embedded YAML cannot be parsed.
func DefaultProspectorConfig() ProspectorConfig {
	return ProspectorConfig{
		Ship: DefaultShipConfig(),
		World: WorldConfig{
			FieldRadius:   3000,
			DespawnRadius: 3600,
			DockRadius:    90,
			PickupRadius:  28,
			MagnetRadius:  110,
			MagnetPull:    0.06,
			Drag:          0.985,
			LootDrag:      0.97,
			BoundaryPush:  0.4,
			LaunchOffset:  220,
			LaunchSpeed:   1,
		},
		Spawning: SpawningConfig{
			TargetAsteroids:  60,
			AsteroidInterval: 90,
			AsteroidsPerWave: 3,
			InitialAsteroids: 40,
			MinDistance:      500,
			MaxDistance:      1400,
			MinRadius:        14,
			MaxRadius:        48,
			HealthPerRadius:  2.0,
			HealthPerUnit:    20,
			MaxDrift:         0.4,
			MaxSpin:          0.02,
			OutlineVertices:  9,
			Jaggedness:       0.35,
			LootLife:         1200,
			MaxParticles:     300,
			MineralWeights: map[string]int{
				"iron": 40, "cobalt": 22, "silicon": 18, "titanium": 10,
				"gold": 6, "uranium": 3, "kronos": 1,
			},
			Hardness: map[string]float64{
				"iron": 1.0, "cobalt": 1.2, "silicon": 1.0, "titanium": 1.8,
				"gold": 1.5, "uranium": 2.2, "kronos": 3.0,
			},
		},
		Aliens: AlienConfig{
			MaxAlive:         3,
			FirstSpawnDelay:  1800,
			SpawnInterval:    2400,
			MaxHP:            90,
			HitRadius:        16,
			StealRadius:      45,
			PursuitSpeed:     2.6,
			FleeSpeed:        5.0,
			Steering:         0.06,
			DrainTicks:       240,
			DrainInterval:    20,
			WobbleRate:       0.12,
			WobbleAmplitude:  0.8,
			BeamDamageFactor: 1.5,
			KillFuelReward:   10,
			SpawnDistance:    900,
			EscapeDistance:   400,
		},
		Economy: EconomyConfig{
			RefuelCost: 2,
			Prices: map[string]int{
				"iron": 10, "cobalt": 18, "silicon": 14, "titanium": 35,
				"gold": 60, "uranium": 110, "kronos": 400,
			},
		},
		Upgrades: []UpgradeTrack{
			{ID: "fuel_tank", Name: "Fuel Tank", Stat: StatMaxFuel, Levels: []UpgradeCost{
				{Level: 1, Cost: 300, Value: 140}, {Level: 2, Cost: 800, Value: 200}, {Level: 3, Cost: 2000, Value: 280},
			}},
			{ID: "cargo_hold", Name: "Cargo Hold", Stat: StatMaxCargo, Levels: []UpgradeCost{
				{Level: 1, Cost: 250, Value: 35}, {Level: 2, Cost: 700, Value: 55}, {Level: 3, Cost: 1800, Value: 80},
			}},
			{ID: "engine", Name: "Ion Engine", Stat: StatAcceleration, Levels: []UpgradeCost{
				{Level: 1, Cost: 200, Value: 0.16}, {Level: 2, Cost: 600, Value: 0.21}, {Level: 3, Cost: 1500, Value: 0.27},
			}},
			{ID: "hull", Name: "Streamlined Hull", Stat: StatMaxSpeed, Levels: []UpgradeCost{
				{Level: 1, Cost: 250, Value: 5.0}, {Level: 2, Cost: 700, Value: 6.0},
			}},
			{ID: "gyro", Name: "Gyroscopes", Stat: StatRotationSpeed, Levels: []UpgradeCost{
				{Level: 1, Cost: 150, Value: 0.11}, {Level: 2, Cost: 450, Value: 0.14},
			}},
			{ID: "laser", Name: "Mining Laser", Stat: StatMiningPower, Levels: []UpgradeCost{
				{Level: 1, Cost: 300, Value: 1.6}, {Level: 2, Cost: 900, Value: 2.5}, {Level: 3, Cost: 2400, Value: 4.0},
			}},
			{ID: "optics", Name: "Beam Optics", Stat: StatMiningRange, Levels: []UpgradeCost{
				{Level: 1, Cost: 200, Value: 230}, {Level: 2, Cost: 650, Value: 290},
			}},
			{ID: "recycler", Name: "Life Support Recycler", Stat: StatFuelConsumptionRate, Levels: []UpgradeCost{
				{Level: 1, Cost: 400, Value: 0.003}, {Level: 2, Cost: 1100, Value: 0.002},
			}},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 600, // 10 minutes of flight
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:        0.5,
				SpawnIntervalReduction: 0.7,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultProspectorYAML
}
