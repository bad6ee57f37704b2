package sim

import (
	"testing"

	"github.com/vovakirdan/prospector/internal/core"
	"github.com/vovakirdan/prospector/internal/vmath"
)

func addAsteroid(e *Engine, offset vmath.Vec, radius, health float64, m core.Mineral) ID {
	return e.world.Asteroids.Spawn(Asteroid{
		Position:  e.world.Player.Position.Add(offset),
		Radius:    radius,
		Outline:   []vmath.Vec{vmath.V(radius, 0), vmath.V(0, radius), vmath.V(-radius, 0)},
		Mineral:   m,
		Health:    health,
		MaxHealth: health,
	})
}

// Scenario B: a 100 HP rock under a 10 power beam breaks on the tenth tick
// and leaves exactly one loot.
func TestMiningDestroysAsteroid(t *testing.T) {
	cfg := quietConfig()
	ship := cfg.Ship
	ship.MiningPower = 10
	e := newTestEngine(t, cfg, ship)
	e.world.Player.Rotation = 0
	id := addAsteroid(e, vmath.V(100, 0), 20, 100, core.Gold)

	mine := Input{Mine: true}
	for i := 1; i <= 9; i++ {
		snap, _ := e.Tick(mine, frameDT)
		if len(snap.Asteroids) != 1 {
			t.Fatalf("tick %d: asteroid gone early", i)
		}
		a := snap.Asteroids[0]
		if want := float64(100 - 10*i); a.Health != want {
			t.Errorf("tick %d: Health = %v, expected %v", i, a.Health, want)
		}
		if !a.Heating {
			t.Errorf("tick %d: Heating = false while mined", i)
		}
		if !snap.Beam.Hit {
			t.Errorf("tick %d: beam reports no hit", i)
		}
	}

	snap, _ := e.Tick(mine, frameDT)
	if len(snap.Asteroids) != 0 {
		t.Fatalf("asteroid %d survived the tenth tick", id)
	}
	if len(snap.Loot) != 1 {
		t.Fatalf("loot count = %d, expected 1", len(snap.Loot))
	}
	l := snap.Loot[0]
	if l.Kind != MineralLoot(core.Gold) {
		t.Errorf("loot kind = %v, expected Gold", l.Kind)
	}
	if want := float64(LootAmount(100, cfg.Spawning.HealthPerUnit)); l.Amount != want {
		t.Errorf("loot amount = %v, expected %v", l.Amount, want)
	}
}

func TestMiningHitsNearestOnly(t *testing.T) {
	cfg := quietConfig()
	e := newTestEngine(t, cfg, cfg.Ship)
	e.world.Player.Rotation = 0
	far := addAsteroid(e, vmath.V(150, 0), 20, 100, core.Iron)
	near := addAsteroid(e, vmath.V(60, 5), 20, 100, core.Iron)
	off := addAsteroid(e, vmath.V(60, 80), 20, 100, core.Iron)

	e.Tick(Input{Mine: true}, frameDT)

	health := map[ID]float64{}
	heating := map[ID]bool{}
	e.world.Asteroids.Each(func(id ID, a *Asteroid) {
		health[id] = a.Health
		heating[id] = a.Heating
	})
	if health[near] != 100-cfg.Ship.MiningPower {
		t.Errorf("near asteroid health = %v, expected %v", health[near], 100-cfg.Ship.MiningPower)
	}
	if health[far] != 100 || health[off] != 100 {
		t.Errorf("beam damaged more than the nearest target: far %v off %v", health[far], health[off])
	}
	if !heating[near] || heating[far] || heating[off] {
		t.Errorf("Heating = %v, expected only the nearest asteroid", heating)
	}

	e.Tick(Input{}, frameDT)
	e.world.Asteroids.Each(func(id ID, a *Asteroid) {
		if a.Heating {
			t.Errorf("asteroid %d still heating without the beam", id)
		}
	})
}

func TestMiningOutOfRange(t *testing.T) {
	cfg := quietConfig()
	e := newTestEngine(t, cfg, cfg.Ship)
	e.world.Player.Rotation = 0
	addAsteroid(e, vmath.V(cfg.Ship.MiningRange+100, 0), 20, 100, core.Iron)

	snap, _ := e.Tick(Input{Mine: true}, frameDT)
	if snap.Asteroids[0].Health != 100 {
		t.Errorf("Health = %v, expected untouched", snap.Asteroids[0].Health)
	}
	if !snap.Beam.Active || snap.Beam.Hit {
		t.Errorf("Beam = %+v, expected active without hit", snap.Beam)
	}
}

func TestLootAmountMonotonic(t *testing.T) {
	unit := 20
	prev := 0
	for k := 1; k <= 30; k++ {
		got := LootAmount(float64(k*unit), unit)
		if got <= prev {
			t.Errorf("LootAmount(%d) = %d, expected more than %d", k*unit, got, prev)
		}
		prev = got
	}
	if got := LootAmount(5, unit); got != 1 {
		t.Errorf("LootAmount(5) = %d, expected 1", got)
	}
}

func TestPickup(t *testing.T) {
	tests := []struct {
		name      string
		kind      LootType
		amount    float64
		fuel      float64
		cargo     core.Cargo
		wantFuel  float64
		wantCargo int
	}{
		{"fuel capped at tank", LootFuel, 30, 90, core.Cargo{}, 100, 0},
		{"fuel partial", LootFuel, 5, 50, core.Cargo{}, 55, 0},
		{"ore fits", MineralLoot(core.Cobalt), 4, 100, core.Cargo{}, 100, 4},
		{"ore overflow discarded", MineralLoot(core.Cobalt), 8, 100, core.Cargo{core.Iron: 17}, 100, 20},
		{"hold full", MineralLoot(core.Gold), 2, 100, core.Cargo{core.Iron: 20}, 100, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := quietConfig()
			cfg.Ship.FuelConsumptionRate = 0
			e := newTestEngine(t, cfg, cfg.Ship)
			e.world.Player.CurrentFuel = tt.fuel
			e.world.Player.Cargo = tt.cargo
			e.world.Loot.Spawn(Loot{Position: e.world.Player.Position, Kind: tt.kind, Amount: tt.amount, Life: 100})

			snap, _ := e.Tick(Input{}, frameDT)
			if len(snap.Loot) != 0 {
				t.Errorf("loot left = %d, expected 0", len(snap.Loot))
			}
			if snap.Player.CurrentFuel != tt.wantFuel {
				t.Errorf("CurrentFuel = %v, expected %v", snap.Player.CurrentFuel, tt.wantFuel)
			}
			if got := snap.Player.Cargo.Total(); got != tt.wantCargo {
				t.Errorf("Cargo.Total() = %d, expected %d", got, tt.wantCargo)
			}
		})
	}
}

func TestLootMagnetAndExpiry(t *testing.T) {
	cfg := quietConfig()
	e := newTestEngine(t, cfg, cfg.Ship)
	craft := e.world.Player.Position
	start := craft.Add(vmath.V(cfg.World.MagnetRadius-10, 0))
	e.world.Loot.Spawn(Loot{Position: start, Kind: MineralLoot(core.Iron), Amount: 1, Life: 3})

	snap, _ := e.Tick(Input{}, frameDT)
	if len(snap.Loot) != 1 {
		t.Fatalf("loot count = %d, expected 1", len(snap.Loot))
	}
	if vmath.Dist(snap.Loot[0].Position, craft) >= vmath.Dist(start, craft) {
		t.Errorf("loot was not pulled toward the craft")
	}

	e.Tick(Input{}, frameDT)
	snap, _ = e.Tick(Input{}, frameDT)
	if len(snap.Loot) != 0 {
		t.Errorf("loot count = %d after its life ran out, expected 0", len(snap.Loot))
	}
}

func TestDespawnOutOfBounds(t *testing.T) {
	cfg := quietConfig()
	e := newTestEngine(t, cfg, cfg.Ship)
	far := e.Station().Add(vmath.V(cfg.World.DespawnRadius+100, 0))
	e.world.Asteroids.Spawn(Asteroid{Position: far, Radius: 10, Health: 20, MaxHealth: 20})
	e.world.Loot.Spawn(Loot{Position: far, Kind: LootFuel, Amount: 1, Life: 100})

	snap, _ := e.Tick(Input{}, frameDT)
	if len(snap.Asteroids) != 0 || len(snap.Loot) != 0 {
		t.Errorf("out of bounds entities kept: %d asteroids, %d loot", len(snap.Asteroids), len(snap.Loot))
	}
}

func TestParticlesCapped(t *testing.T) {
	cfg := quietConfig()
	cfg.Spawning.MaxParticles = 5
	e := newTestEngine(t, cfg, cfg.Ship)

	f := e.newFrame(e.world, Input{}, frameDT)
	f.burst(e.world.Player.Position, 20, 1, core.ColorWhite)
	if n := e.world.Particles.Len(); n != 5 {
		t.Errorf("particles = %d, expected cap 5", n)
	}
}
