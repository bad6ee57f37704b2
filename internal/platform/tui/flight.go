package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/prospector/internal/core"
	"github.com/vovakirdan/prospector/internal/sim"
	"github.com/vovakirdan/prospector/internal/vmath"
)

// World units covered by one terminal cell. Cells are about twice as tall
// as they are wide.
const (
	unitsPerCol = 10.0
	unitsPerRow = 20.0
)

// hudRows are reserved at the top and bottom of the flight view.
const hudRows = 1

// camera maps world positions to screen cells, centered on the craft.
type camera struct {
	center vmath.Vec
	w, h   int
}

func (c camera) project(p vmath.Vec) (int, int) {
	d := p.Sub(c.center)
	x := int(math.Floor(d.X()/unitsPerCol)) + c.w/2
	y := int(math.Floor(d.Y()/unitsPerRow)) + c.h/2
	return x, y
}

// visible reports whether a cell lies in the field view between the HUD rows.
func (c camera) visible(x, y int) bool {
	return core.NewRect(0, hudRows, c.w, c.h-2*hudRows).Contains(x, y)
}

// craftGlyphs indexes the craft's facing in eighths of a turn, starting
// east and going clockwise on screen.
var craftGlyphs = []rune{'>', '\\', 'v', '/', '<', '\\', '^', '/'}

func craftGlyph(rotation float64) rune {
	octant := int(math.Round(vmath.WrapAngle(rotation)/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return craftGlyphs[octant]
}

// DrawFlight renders a snapshot into the screen buffer. dockRadius is only
// used for the docking hint.
func DrawFlight(s *core.Screen, snap sim.Snapshot, dockRadius float64) {
	s.Clear()
	cam := camera{center: snap.Player.Position, w: s.Width(), h: s.Height()}

	drawStars(s, cam)
	drawStation(s, cam, snap.Station)

	for _, a := range snap.Asteroids {
		drawAsteroid(s, cam, a)
	}
	for _, l := range snap.Loot {
		x, y := cam.project(l.Position)
		if !cam.visible(x, y) {
			continue
		}
		if l.Kind.IsFuel() {
			s.SetColor(x, y, '+', core.ColorBrightCyan)
		} else if m, ok := l.Kind.Mineral(); ok {
			s.SetColor(x, y, '*', core.MineralColor(m))
		}
	}
	if snap.Beam.Active {
		drawBeam(s, cam, snap.Beam)
	}
	for _, a := range snap.Aliens {
		drawAlien(s, cam, a)
	}
	for _, p := range snap.Particles {
		x, y := cam.project(p.Position)
		if p.Text != "" {
			if y >= hudRows && y < cam.h-hudRows {
				s.DrawTextColor(x-len(p.Text)/2, y, p.Text, p.Color)
			}
			continue
		}
		if cam.visible(x, y) && s.Get(x, y) == ' ' {
			s.SetColor(x, y, '.', p.Color)
		}
	}

	cx, cy := cam.project(snap.Player.Position)
	s.SetColor(cx, cy, craftGlyph(snap.Player.Rotation), core.ColorBrightWhite)

	drawHUD(s, snap, dockRadius)
}

// drawStars scatters a fixed star field so motion is visible in empty space.
func drawStars(s *core.Screen, cam camera) {
	ox := int(math.Floor(cam.center.X() / unitsPerCol))
	oy := int(math.Floor(cam.center.Y() / unitsPerRow))
	for y := hudRows; y < cam.h-hudRows; y++ {
		for x := 0; x < cam.w; x++ {
			wx, wy := x+ox-cam.w/2, y+oy-cam.h/2
			h := uint32(wx)*73856093 ^ uint32(wy)*19349663
			if h%97 == 0 {
				s.SetColor(x, y, '.', core.ColorGray)
			}
		}
	}
}

func drawStation(s *core.Screen, cam camera, station vmath.Vec) {
	x, y := cam.project(station)
	rows := []string{"/===\\", "|[H]|", "\\===/"}
	for i, row := range rows {
		ry := y - 1 + i
		if ry < hudRows || ry >= cam.h-hudRows {
			continue
		}
		s.DrawTextColor(x-2, ry, row, core.ColorCyan)
	}
}

func drawAsteroid(s *core.Screen, cam camera, a sim.Asteroid) {
	x, y := cam.project(a.Position)
	reach := int(a.Radius/unitsPerCol) + 2
	if x < -reach || x >= cam.w+reach || y < -reach || y >= cam.h+reach {
		return
	}

	c := core.MineralColor(a.Mineral)
	glyph := '#'
	if a.Heating {
		c = core.ColorBrightRed
		glyph = '%'
	}
	n := len(a.Outline)
	for i := 0; i < n; i++ {
		p0 := a.Position.Add(vmath.Rotate(a.Outline[i], a.Rotation))
		p1 := a.Position.Add(vmath.Rotate(a.Outline[(i+1)%n], a.Rotation))
		x0, y0 := cam.project(p0)
		x1, y1 := cam.project(p1)
		drawLine(s, cam, x0, y0, x1, y1, glyph, c)
	}
	if cam.visible(x, y) && s.Get(x, y) == ' ' {
		s.SetColor(x, y, glyph, c)
	}
}

func drawAlien(s *core.Screen, cam camera, a sim.Alien) {
	x, y := cam.project(a.Position)
	c := core.ColorBrightGreen
	switch a.State {
	case sim.Draining:
		c = core.ColorBrightRed
	case sim.Fleeing:
		c = core.ColorPurple
	}
	for i, r := range "<@>" {
		if cam.visible(x-1+i, y) {
			s.SetColor(x-1+i, y, r, c)
		}
	}
}

func drawBeam(s *core.Screen, cam camera, b sim.Beam) {
	x0, y0 := cam.project(b.From)
	x1, y1 := cam.project(b.To)
	c := core.ColorYellow
	if b.Hit {
		c = core.ColorBrightYellow
	}
	drawLine(s, cam, x0, y0, x1, y1, ':', c)
}

// drawLine rasterizes a segment with Bresenham's algorithm, clipped to the
// visible area.
func drawLine(s *core.Screen, cam camera, x0, y0, x1, y1 int, r rune, c core.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		if cam.visible(x0, y0) {
			s.SetColor(x0, y0, r, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// bar renders a fixed-width gauge.
func bar(value, max float64, width int) string {
	if max <= 0 || width <= 0 {
		return ""
	}
	filled := int(math.Round(core.ClampF(value/max, 0, 1) * float64(width)))
	return strings.Repeat("=", filled) + strings.Repeat(" ", width-filled)
}

func drawHUD(s *core.Screen, snap sim.Snapshot, dockRadius float64) {
	p := snap.Player
	w, h := s.Width(), s.Height()

	fuelColor := core.ColorBrightGreen
	if p.CurrentFuel < p.Ship.MaxFuel*0.25 {
		fuelColor = core.ColorBrightRed
	}
	top := fmt.Sprintf("FUEL [%s] %5.1f", bar(p.CurrentFuel, p.Ship.MaxFuel, 12), p.CurrentFuel)
	s.DrawTextColor(0, 0, top, fuelColor)
	rest := fmt.Sprintf("  CARGO %d/%d  CR %d  SCORE %d", p.Cargo.Total(), p.Ship.MaxCargo, p.Credits, p.LifetimeEarnings)
	s.DrawTextColor(len([]rune(top)), 0, rest, core.ColorWhite)

	dist := vmath.Dist(p.Position, snap.Station)
	dir := vmath.Angle(snap.Station.Sub(p.Position))
	nav := fmt.Sprintf("STATION %c %.0fm", craftGlyph(dir), dist)
	if dist <= dockRadius {
		nav = "STATION IN RANGE - PRESS E TO DOCK"
	}
	s.DrawTextColor(0, h-1, nav, core.ColorCyan)

	var warn string
	switch {
	case p.CurrentFuel < p.Ship.MaxFuel*0.15:
		warn = "!! LOW FUEL !!"
	case draining(snap):
		warn = "!! CARGO DRAIN !!"
	case p.Cargo.Total() >= p.Ship.MaxCargo:
		warn = "HOLD FULL"
	}
	if warn != "" {
		s.DrawTextColor(w-len(warn), h-1, warn, core.ColorBrightRed)
	}
}

// drawBanner draws a boxed message in the middle of the screen.
func drawBanner(s *core.Screen, text string, c core.Color) {
	r := s.Bounds().Centered(len([]rune(text))+4, 3)
	s.DrawRect(r, ' ')
	s.DrawBox(r, c)
	s.DrawTextColor(r.X+2, r.Y+1, text, c)
}

func draining(snap sim.Snapshot) bool {
	for _, a := range snap.Aliens {
		if a.State == sim.Draining {
			return true
		}
	}
	return false
}
