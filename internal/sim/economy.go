package sim

import (
	"github.com/vovakirdan/prospector/internal/core"
	"github.com/vovakirdan/prospector/internal/vmath"
)

// Deliver sells the craft's cargo at prices and books the mission. It
// returns the credits earned.
func Deliver(p *PlayerState, prices core.PriceTable) int {
	value := prices.Value(p.Cargo)
	p.Credits += value
	p.LifetimeEarnings += value
	p.TotalCargoDelivered += p.Cargo.Total()
	p.MissionsCompleted++
	p.Cargo = core.Cargo{}
	return value
}

// settle burns fuel and decides the outcome of the tick. Running dry ends
// the run even if the craft docked on the same tick.
func (f *frame) settle() {
	p := &f.w.Player
	burn := p.Ship.FuelConsumptionRate
	if f.thrusting {
		burn += p.Ship.ThrustConsumptionRate
	}
	p.CurrentFuel = clampFuel(p.CurrentFuel-burn, p.Ship.MaxFuel)

	if p.CurrentFuel <= 0 {
		f.w.Phase = PhaseGameOver
		f.status = StatusGameOver
		f.w.Beam = Beam{}
		f.e.logger.Info("out of fuel", "score", p.LifetimeEarnings, "missions", p.MissionsCompleted)
		return
	}

	if f.dock {
		cargo := p.Cargo.Total()
		earned := Deliver(p, f.e.prices)
		p.Position = f.e.station
		p.Velocity = vmath.Zero
		f.w.Beam = Beam{}
		f.w.Phase = PhaseDocked
		f.status = StatusDocked
		f.e.logger.Info("docked", "cargo", cargo, "earned", earned, "credits", p.Credits)
	}
}
