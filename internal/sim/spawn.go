package sim

import (
	"math"

	"github.com/vovakirdan/prospector/internal/core"
	"github.com/vovakirdan/prospector/internal/vmath"
)

type particleOpts struct {
	Velocity vmath.Vec
	Life     int
	Color    core.Color
	Size     float64
	Text     string
}

// updatePools runs the spawn timers, advances passive entities and removes
// whatever expired.
func (f *frame) updatePools() {
	sp := f.e.cfg.Spawning
	w := f.w

	w.asteroidTimer--
	if w.asteroidTimer <= 0 {
		w.asteroidTimer = sp.AsteroidInterval
		for i := 0; i < sp.AsteroidsPerWave && w.Asteroids.Len() < sp.TargetAsteroids; i++ {
			f.spawnAsteroid()
		}
	}

	w.alienTimer--
	if w.alienTimer <= 0 {
		w.alienTimer = f.e.difficulty.SpawnInterval(f.e.cfg.Aliens.SpawnInterval, w.Difficulty)
		if w.Aliens.Len() < f.e.cfg.Aliens.MaxAlive {
			f.spawnAlien()
		}
	}

	f.drift()
	f.despawnExpired()
}

// spawnAsteroid places a new rock in a ring around the craft, inside the
// field.
func (f *frame) spawnAsteroid() {
	sp := f.e.cfg.Spawning
	world := f.e.cfg.World
	rng := f.rng

	var pos vmath.Vec
	placed := false
	for try := 0; try < 8 && !placed; try++ {
		dist := sp.MinDistance + rng.Float64()*(sp.MaxDistance-sp.MinDistance)
		pos = f.w.Player.Position.Add(vmath.FromAngle(rng.Float64()*2*math.Pi, dist))
		placed = vmath.Dist(f.e.station, pos) <= world.FieldRadius
	}
	if !placed {
		pos = f.e.station.Add(vmath.FromAngle(rng.Float64()*2*math.Pi, math.Sqrt(rng.Float64())*world.FieldRadius))
	}

	mineral := f.pickMineral()
	radius := sp.MinRadius + rng.Float64()*(sp.MaxRadius-sp.MinRadius)
	units := int(math.Round(radius * sp.HealthPerRadius * f.e.hardness[mineral] / float64(sp.HealthPerUnit)))
	if units < 1 {
		units = 1
	}
	health := float64(units * sp.HealthPerUnit)

	outline := make([]vmath.Vec, sp.OutlineVertices)
	for i := range outline {
		angle := float64(i) / float64(len(outline)) * 2 * math.Pi
		r := radius * (1 - sp.Jaggedness*rng.Float64())
		outline[i] = vmath.FromAngle(angle, r)
	}

	f.w.Asteroids.Spawn(Asteroid{
		Position:      pos,
		Velocity:      vmath.FromAngle(rng.Float64()*2*math.Pi, rng.Float64()*sp.MaxDrift),
		Radius:        radius,
		Outline:       outline,
		Mineral:       mineral,
		Health:        health,
		MaxHealth:     health,
		Rotation:      rng.Float64() * 2 * math.Pi,
		RotationSpeed: (rng.Float64()*2 - 1) * sp.MaxSpin,
	})
}

// pickMineral draws a mineral by the configured weights.
func (f *frame) pickMineral() core.Mineral {
	total := 0
	for _, w := range f.e.weights {
		total += max(w, 0)
	}
	if total == 0 {
		return core.Iron
	}
	n := f.rng.Intn(total)
	for i, w := range f.e.weights {
		if w <= 0 {
			continue
		}
		if n < w {
			return core.Mineral(i)
		}
		n -= w
	}
	return core.Iron
}

// spawnLoot drops a pickup at origin with a little scatter.
func (f *frame) spawnLoot(origin vmath.Vec, kind LootType, amount float64) {
	if amount <= 0 {
		return
	}
	f.w.Loot.Spawn(Loot{
		Position: origin,
		Velocity: vmath.FromAngle(f.rng.Float64()*2*math.Pi, 0.3+f.rng.Float64()*0.7),
		Kind:     kind,
		Amount:   amount,
		Life:     f.e.cfg.Spawning.LootLife,
	})
}

// spawnParticle adds a cosmetic particle unless the pool is full.
func (f *frame) spawnParticle(origin vmath.Vec, opts particleOpts) {
	if f.w.Particles.Len() >= f.e.cfg.Spawning.MaxParticles {
		return
	}
	life := max(opts.Life, 1)
	f.w.Particles.Spawn(Particle{
		Position: origin,
		Velocity: opts.Velocity,
		Life:     life,
		MaxLife:  life,
		Color:    opts.Color,
		Size:     opts.Size,
		Text:     opts.Text,
	})
}

// floatText is a label that rises from origin.
func (f *frame) floatText(origin vmath.Vec, text string, c core.Color) {
	f.spawnParticle(origin, particleOpts{
		Velocity: vmath.V(0, -0.6),
		Life:     50,
		Color:    c,
		Text:     text,
	})
}

// burst scatters n sparks around origin.
func (f *frame) burst(origin vmath.Vec, n int, speed float64, c core.Color) {
	for i := 0; i < n; i++ {
		f.spawnParticle(origin, particleOpts{
			Velocity: vmath.FromAngle(f.rng.Float64()*2*math.Pi, speed*(0.3+f.rng.Float64())),
			Life:     15 + f.rng.Intn(20),
			Color:    c,
			Size:     1,
		})
	}
}

// spawnAlien brings a hostile in from the edge of sensor range.
func (f *frame) spawnAlien() {
	a := f.e.cfg.Aliens
	pos := f.w.Player.Position.Add(vmath.FromAngle(f.rng.Float64()*2*math.Pi, a.SpawnDistance))
	id := f.w.Aliens.Spawn(Alien{
		Position:    pos,
		HP:          a.MaxHP,
		MaxHP:       a.MaxHP,
		State:       Chasing,
		WobbleAngle: f.rng.Float64() * 2 * math.Pi,
	})
	f.e.logger.Info("alien spawned", "id", id, "difficulty", f.w.Difficulty)
}

// despawnExpired frees every entity that is dead, faded or out of bounds in
// a single pass per pool.
func (f *frame) despawnExpired() {
	world := f.e.cfg.World
	station := f.e.station
	aliens := f.e.cfg.Aliens
	craft := f.w.Player.Position

	f.w.Asteroids.Sweep(func(a *Asteroid) bool {
		return a.Health <= 0 || vmath.Dist(station, a.Position) > world.DespawnRadius
	})
	f.w.Loot.Sweep(func(l *Loot) bool {
		return l.Life <= 0 || vmath.Dist(station, l.Position) > world.DespawnRadius
	})
	f.w.Particles.Sweep(func(p *Particle) bool {
		return p.Life <= 0
	})
	f.w.Aliens.Sweep(func(a *Alien) bool {
		if a.HP <= 0 {
			return true
		}
		if a.State != Fleeing {
			return false
		}
		return vmath.Dist(station, a.Position) > world.FieldRadius+aliens.EscapeDistance ||
			vmath.Dist(craft, a.Position) > aliens.SpawnDistance+aliens.EscapeDistance
	})
}
