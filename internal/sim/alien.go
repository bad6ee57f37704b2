package sim

import (
	"math"

	"github.com/vovakirdan/prospector/internal/core"
	"github.com/vovakirdan/prospector/internal/vmath"
)

// CanTransition reports whether an alien may move from one state to another.
// Behavior only ever advances: CHASING -> DRAINING -> FLEEING.
func CanTransition(from, to AlienState) bool {
	switch from {
	case Chasing:
		return to == Draining
	case Draining:
		return to == Fleeing
	default:
		return false
	}
}

func (a *Alien) transition(to AlienState) bool {
	if !CanTransition(a.State, to) {
		return false
	}
	a.State = to
	return true
}

// updateAliens advances each hostile's state machine, steers it and moves it.
func (f *frame) updateAliens() {
	cfg := f.e.cfg.Aliens
	p := &f.w.Player
	speedScale := f.e.difficulty.Speed(1, f.w.Difficulty)

	f.w.Aliens.Each(func(id ID, a *Alien) {
		if a.State == Draining && (a.DrainTimer <= 0 || p.Cargo.Empty()) {
			a.transition(Fleeing)
			f.floatText(a.Position, "ESCAPING", core.ColorPurple)
			f.e.logger.Info("alien fleeing", "id", id, "stolen", a.TotalStolen)
		}

		a.WobbleAngle = vmath.WrapAngle(a.WobbleAngle + cfg.WobbleRate)

		switch a.State {
		case Chasing:
			want := vmath.Dir(a.Position, p.Position).Mul(cfg.PursuitSpeed * speedScale)
			a.Velocity = vmath.Lerp(a.Velocity, want, cfg.Steering)
		case Draining:
			a.Velocity = p.Velocity
		case Fleeing:
			away := vmath.Dir(p.Position, a.Position)
			if away == vmath.Zero {
				away = vmath.FromAngle(a.WobbleAngle, 1)
			}
			want := away.Mul(cfg.FleeSpeed * speedScale)
			a.Velocity = vmath.Lerp(a.Velocity, want, math.Min(cfg.Steering*2, 1))
		}

		a.Position = a.Position.Add(a.Velocity)
		if a.State != Draining {
			side := vmath.Perp(vmath.Unit(a.Velocity)).Mul(math.Sin(a.WobbleAngle) * cfg.WobbleAmplitude)
			a.Position = a.Position.Add(side)
		}
	})
}

// destroyAlien removes a shot-down hostile and drops what it stole, one loot
// per mineral, or a fuel canister if it stole nothing.
func (f *frame) destroyAlien(id ID, a *Alien) {
	f.w.Aliens.Kill(id)
	f.burst(a.Position, 14, 2, core.ColorBrightGreen)
	f.floatText(a.Position, "ALIEN DOWN", core.ColorBrightGreen)

	dropped := false
	for i, n := range a.Stolen {
		if n > 0 {
			f.spawnLoot(a.Position, MineralLoot(core.Mineral(i)), float64(n))
			dropped = true
		}
	}
	if !dropped {
		f.spawnLoot(a.Position, LootFuel, f.e.cfg.Aliens.KillFuelReward)
	}
	f.e.logger.Info("alien destroyed", "id", id, "returned", a.TotalStolen)
}
