package sim

import (
	"math"

	"github.com/vovakirdan/prospector/internal/core"
	"github.com/vovakirdan/prospector/internal/vmath"
)

// integrate moves the craft: turn toward the requested heading, thrust,
// clamp, drag, advance, then keep it inside the field.
func (f *frame) integrate() {
	p := &f.w.Player
	ship := p.Ship
	world := f.e.cfg.World

	if f.in.Heading != vmath.Zero {
		p.Rotation = vmath.StepAngle(p.Rotation, vmath.Angle(f.in.Heading), ship.RotationSpeed)
	}

	if f.in.Thrust > 0 && p.CurrentFuel > 0 {
		f.thrusting = true
		p.Velocity = p.Velocity.Add(vmath.FromAngle(p.Rotation, ship.Acceleration*f.in.Thrust))
		if f.w.Tick%3 == 0 {
			f.exhaust(p)
		}
	}

	p.Velocity = vmath.ClampLen(p.Velocity, ship.MaxSpeed).Mul(world.Drag)
	p.Position = p.Position.Add(p.Velocity)

	f.contain(p)
}

// contain cancels outward motion past the field edge and nudges the craft
// back in.
func (f *frame) contain(p *PlayerState) {
	world := f.e.cfg.World
	station := f.e.station
	if vmath.Dist(station, p.Position) <= world.FieldRadius {
		return
	}
	out := vmath.Dir(station, p.Position)
	if radial := p.Velocity.Dot(out); radial > 0 {
		p.Velocity = p.Velocity.Sub(out.Mul(radial))
	}
	p.Velocity = p.Velocity.Sub(out.Mul(world.BoundaryPush))
	p.Position = station.Add(out.Mul(world.FieldRadius))
}

func (f *frame) exhaust(p *PlayerState) {
	back := p.Rotation + math.Pi + (f.rng.Float64()-0.5)*0.6
	f.spawnParticle(p.Position.Add(vmath.FromAngle(back, 8)), particleOpts{
		Velocity: p.Velocity.Add(vmath.FromAngle(back, 1.5+f.rng.Float64())),
		Life:     12,
		Color:    core.ColorOrange,
		Size:     1,
	})
}

// drift advances the passive entities: asteroids tumble, loot coasts and
// is drawn toward the craft, particles fade.
func (f *frame) drift() {
	world := f.e.cfg.World
	craft := f.w.Player.Position

	f.w.Asteroids.Each(func(_ ID, a *Asteroid) {
		a.Position = a.Position.Add(a.Velocity)
		a.Rotation = vmath.WrapAngle(a.Rotation + a.RotationSpeed)
	})

	f.w.Loot.Each(func(_ ID, l *Loot) {
		if d := vmath.Dist(l.Position, craft); d < world.MagnetRadius && d > 0 {
			l.Velocity = l.Velocity.Add(vmath.Dir(l.Position, craft).Mul(world.MagnetPull))
		}
		l.Velocity = l.Velocity.Mul(world.LootDrag)
		l.Position = l.Position.Add(l.Velocity)
		l.Life--
	})

	f.w.Particles.Each(func(_ ID, p *Particle) {
		p.Position = p.Position.Add(p.Velocity)
		p.Velocity = p.Velocity.Mul(0.96)
		p.Life--
	})
}
