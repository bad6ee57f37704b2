package sim

import (
	"fmt"
	"math"

	"github.com/vovakirdan/prospector/internal/core"
	"github.com/vovakirdan/prospector/internal/vmath"
)

// LootAmount returns the ore dropped by an asteroid with the given max
// health. Asteroid health is generated in whole units of healthPerUnit, so
// the yield grows strictly with size.
func LootAmount(maxHealth float64, healthPerUnit int) int {
	if healthPerUnit <= 0 {
		return 1
	}
	return max(int(math.Floor(maxHealth/float64(healthPerUnit))), 1)
}

// resolve runs the contact rules in order: mining, pickup, theft, docking.
func (f *frame) resolve() {
	f.mine()
	f.pickup()
	f.theft()
	f.dockSignal()
}

type beamTarget struct {
	id    ID
	along float64
	alien bool
}

func (f *frame) mine() {
	f.w.Asteroids.Each(func(_ ID, a *Asteroid) {
		a.Heating = false
	})
	f.w.Beam = Beam{}
	if !f.in.Mine {
		return
	}

	p := &f.w.Player
	ship := p.Ship
	origin, angle := p.Position, p.Rotation

	var best beamTarget
	found := false
	consider := func(t beamTarget) {
		if !found || t.along < best.along {
			best, found = t, true
		}
	}
	f.w.Asteroids.Each(func(id ID, a *Asteroid) {
		if d, along := vmath.RayDistance(origin, angle, ship.MiningRange, a.Position); d <= a.Radius {
			consider(beamTarget{id: id, along: along})
		}
	})
	f.w.Aliens.Each(func(id ID, a *Alien) {
		if d, along := vmath.RayDistance(origin, angle, ship.MiningRange, a.Position); d <= f.e.cfg.Aliens.HitRadius {
			consider(beamTarget{id: id, along: along, alien: true})
		}
	})

	f.w.Beam = Beam{Active: true, From: origin, To: origin.Add(vmath.FromAngle(angle, ship.MiningRange))}
	if !found {
		return
	}
	f.w.Beam.To = origin.Add(vmath.FromAngle(angle, best.along))
	f.w.Beam.Hit = true

	if best.alien {
		f.damageAlien(best.id, ship.MiningPower*f.e.cfg.Aliens.BeamDamageFactor)
		return
	}
	f.damageAsteroid(best.id, ship.MiningPower)
}

func (f *frame) damageAsteroid(id ID, dmg float64) {
	a, ok := f.w.Asteroids.Get(id)
	if !ok {
		return
	}
	a.Heating = true
	a.Health = math.Max(a.Health-dmg, 0)
	if f.w.Tick%4 == 0 {
		f.burst(f.w.Beam.To, 1, 1.2, core.ColorYellow)
	}
	if a.Health > 0 {
		return
	}

	amount := LootAmount(a.MaxHealth, f.e.cfg.Spawning.HealthPerUnit)
	f.w.Asteroids.Kill(id)
	f.spawnLoot(a.Position, MineralLoot(a.Mineral), float64(amount))
	f.burst(a.Position, 10, 1.5, core.MineralColor(a.Mineral))
	f.floatText(a.Position, fmt.Sprintf("%d %s", amount, a.Mineral), core.MineralColor(a.Mineral))
	f.e.logger.Debug("asteroid destroyed", "id", id, "mineral", a.Mineral, "amount", amount)
}

func (f *frame) damageAlien(id ID, dmg float64) {
	a, ok := f.w.Aliens.Get(id)
	if !ok {
		return
	}
	a.HP = math.Max(a.HP-dmg, 0)
	if f.w.Tick%4 == 0 {
		f.burst(a.Position, 1, 1.2, core.ColorBrightGreen)
	}
	if a.HP <= 0 {
		f.destroyAlien(id, a)
	}
}

// pickup collects every loot in reach of the craft.
func (f *frame) pickup() {
	p := &f.w.Player
	reach := f.e.cfg.World.PickupRadius

	f.w.Loot.Each(func(id ID, l *Loot) {
		if vmath.Dist(l.Position, p.Position) > reach {
			return
		}
		f.w.Loot.Kill(id)

		if l.Kind.IsFuel() {
			p.CurrentFuel = clampFuel(p.CurrentFuel+l.Amount, p.Ship.MaxFuel)
			f.floatText(p.Position, fmt.Sprintf("+%.0f FUEL", l.Amount), core.ColorBrightCyan)
			return
		}
		m, ok := l.Kind.Mineral()
		if !ok {
			return
		}
		got := p.Cargo.Add(m, int(l.Amount), p.Ship.MaxCargo)
		if got == 0 {
			f.floatText(p.Position, "HOLD FULL", core.ColorRed)
			return
		}
		f.floatText(p.Position, fmt.Sprintf("+%d %s", got, m), core.MineralColor(m))
	})
}

// theft latches at most one chasing alien onto a loaded craft and lets the
// draining alien take its cut.
func (f *frame) theft() {
	p := &f.w.Player
	cfg := f.e.cfg.Aliens
	drainer := f.w.draining()

	if drainer == 0 && !p.Cargo.Empty() {
		f.w.Aliens.Each(func(id ID, a *Alien) {
			if drainer != 0 || a.State != Chasing {
				return
			}
			if vmath.Dist(a.Position, p.Position) > cfg.StealRadius {
				return
			}
			if a.transition(Draining) {
				a.DrainTimer = cfg.DrainTicks
				a.drainClock = cfg.DrainInterval
				drainer = id
				f.floatText(a.Position, "DRAINING", core.ColorBrightRed)
				f.e.logger.Info("alien draining cargo", "id", id)
			}
		})
	}
	if drainer == 0 {
		return
	}

	a, ok := f.w.Aliens.Get(drainer)
	if !ok || a.State != Draining {
		return
	}
	a.DrainTimer--
	a.drainClock++
	if a.drainClock < cfg.DrainInterval {
		return
	}
	a.drainClock = 0
	m, ok := p.Cargo.Largest()
	if !ok {
		return
	}
	n := p.Cargo.Take(m, 1)
	a.Stolen[m] += n
	a.TotalStolen += n
	f.floatText(p.Position, fmt.Sprintf("-%d %s", n, m), core.ColorRed)
}

// dockSignal raises the dock flag for the economy stage.
func (f *frame) dockSignal() {
	if f.in.Dock && vmath.Dist(f.w.Player.Position, f.e.station) <= f.e.cfg.World.DockRadius {
		f.dock = true
	}
}
