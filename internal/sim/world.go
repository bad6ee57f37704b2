package sim

import (
	"time"

	"github.com/vovakirdan/prospector/internal/vmath"
)

// World is the mutable simulation state. The engine never mutates the
// published world in place: every tick works on a Clone.
type World struct {
	Player    PlayerState
	Asteroids Pool[Asteroid]
	Loot      Pool[Loot]
	Particles Pool[Particle]
	Aliens    Pool[Alien]

	Phase      Phase
	Tick       uint64
	Elapsed    time.Duration // current sortie
	RunTime    time.Duration // whole run
	Difficulty float64
	Beam       Beam

	asteroidTimer int
	alienTimer    int
}

// Clone returns a copy that shares no mutable memory with w.
func (w *World) Clone() *World {
	c := *w
	c.Asteroids = w.Asteroids.Clone()
	c.Loot = w.Loot.Clone()
	c.Particles = w.Particles.Clone()
	c.Aliens = w.Aliens.Clone()
	return &c
}

// draining returns the id of the alien currently draining the craft.
func (w *World) draining() ID {
	var found ID
	w.Aliens.Each(func(id ID, a *Alien) {
		if found == 0 && a.State == Draining {
			found = id
		}
	})
	return found
}

func (w *World) snapshot(station vmath.Vec) Snapshot {
	asteroids := w.Asteroids.Items()
	for i := range asteroids {
		asteroids[i].Outline = append([]vmath.Vec(nil), asteroids[i].Outline...)
	}
	return Snapshot{
		Tick:       w.Tick,
		Phase:      w.Phase,
		Elapsed:    w.Elapsed,
		Difficulty: w.Difficulty,
		Station:    station,
		Player:     w.Player,
		Beam:       w.Beam,
		Asteroids:  asteroids,
		Loot:       w.Loot.Items(),
		Particles:  w.Particles.Items(),
		Aliens:     w.Aliens.Items(),
	}
}
