package tui

import (
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/prospector/internal/config"
	"github.com/vovakirdan/prospector/internal/core"
	"github.com/vovakirdan/prospector/internal/sim"
	"github.com/vovakirdan/prospector/internal/vmath"
)

func TestCraftGlyph(t *testing.T) {
	tests := []struct {
		rot  float64
		want rune
	}{
		{0, '>'},
		{math.Pi / 2, 'v'},
		{-math.Pi / 2, '^'},
		{math.Pi, '<'},
		{-math.Pi, '<'},
		{math.Pi / 4, '\\'},
		{2*math.Pi - 0.01, '>'},
	}
	for _, tt := range tests {
		if got := craftGlyph(tt.rot); got != tt.want {
			t.Errorf("craftGlyph(%v) = %q, expected %q", tt.rot, got, tt.want)
		}
	}
}

func TestCameraProject(t *testing.T) {
	cam := camera{center: vmath.V(100, 100), w: 80, h: 24}
	tests := []struct {
		p      vmath.Vec
		wx, wy int
	}{
		{vmath.V(100, 100), 40, 12},
		{vmath.V(110, 100), 41, 12},
		{vmath.V(100, 120), 40, 13},
		{vmath.V(90, 80), 39, 11},
	}
	for _, tt := range tests {
		x, y := cam.project(tt.p)
		if x != tt.wx || y != tt.wy {
			t.Errorf("project(%v) = (%d, %d), expected (%d, %d)", tt.p, x, y, tt.wx, tt.wy)
		}
	}
	if cam.visible(10, 0) {
		t.Error("visible() on the HUD row = true, expected false")
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		value, max float64
		width      int
		want       string
	}{
		{5, 10, 4, "==  "},
		{10, 10, 3, "==="},
		{0, 10, 2, "  "},
		{20, 10, 2, "=="},
		{1, 0, 5, ""},
	}
	for _, tt := range tests {
		if got := bar(tt.value, tt.max, tt.width); got != tt.want {
			t.Errorf("bar(%v, %v, %d) = %q, expected %q", tt.value, tt.max, tt.width, got, tt.want)
		}
	}
}

func flightSnapshot() sim.Snapshot {
	ship := config.DefaultShipConfig()
	return sim.Snapshot{
		Phase:   sim.PhasePlaying,
		Station: vmath.V(0, 0),
		Player: sim.PlayerState{
			Ship:        ship,
			CurrentFuel: ship.MaxFuel,
			Position:    vmath.V(0, 0),
			Rotation:    -math.Pi / 2,
		},
	}
}

func screenRows(s *core.Screen) []string {
	return strings.Split(s.String(), "\n")
}

func TestDrawFlightCraftAndHUD(t *testing.T) {
	s := core.NewScreen(80, 24)
	snap := flightSnapshot()
	snap.Loot = []sim.Loot{
		{ID: 1, Position: vmath.V(50, 0), Kind: sim.LootFuel, Amount: 5},
		{ID: 2, Position: vmath.V(-50, 0), Kind: sim.MineralLoot(core.Gold), Amount: 1},
	}

	DrawFlight(s, snap, 90)

	if got := s.Get(40, 12); got != '^' {
		t.Errorf("craft cell = %q, expected '^'", got)
	}
	if got := s.Get(45, 12); got != '+' {
		t.Errorf("fuel canister cell = %q, expected '+'", got)
	}
	if got := s.Get(35, 12); got != '*' {
		t.Errorf("ore cell = %q, expected '*'", got)
	}

	rows := screenRows(s)
	if !strings.HasPrefix(rows[0], "FUEL [") {
		t.Errorf("HUD top row = %q, expected fuel gauge", rows[0])
	}
	if !strings.Contains(rows[23], "PRESS E TO DOCK") {
		t.Errorf("HUD bottom row = %q, expected dock hint at the station", rows[23])
	}
}

func TestDrawFlightStationBearing(t *testing.T) {
	s := core.NewScreen(80, 24)
	snap := flightSnapshot()
	snap.Player.Position = vmath.V(1000, 0)

	DrawFlight(s, snap, 90)

	rows := screenRows(s)
	if !strings.Contains(rows[23], "STATION < 1000m") {
		t.Errorf("HUD bottom row = %q, expected bearing west at 1000m", rows[23])
	}
}

func TestDrawFlightWarnings(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*sim.Snapshot)
		want string
	}{
		{"low fuel", func(s *sim.Snapshot) { s.Player.CurrentFuel = 1 }, "LOW FUEL"},
		{"drain", func(s *sim.Snapshot) {
			s.Aliens = []sim.Alien{{ID: 1, Position: vmath.V(0, 40), State: sim.Draining}}
		}, "CARGO DRAIN"},
		{"hold full", func(s *sim.Snapshot) { s.Player.Cargo[core.Iron] = s.Player.Ship.MaxCargo }, "HOLD FULL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := core.NewScreen(80, 24)
			snap := flightSnapshot()
			tt.mod(&snap)
			DrawFlight(s, snap, 90)
			if row := screenRows(s)[23]; !strings.Contains(row, tt.want) {
				t.Errorf("HUD bottom row = %q, expected %q", row, tt.want)
			}
		})
	}
}

func TestDrawFlightTinyScreen(t *testing.T) {
	// Must not panic when the terminal is smaller than the HUD.
	s := core.NewScreen(3, 2)
	snap := flightSnapshot()
	snap.Aliens = []sim.Alien{{ID: 1, Position: vmath.V(5, 5)}}
	snap.Beam = sim.Beam{Active: true, From: vmath.V(0, 0), To: vmath.V(500, 500)}
	DrawFlight(s, snap, 90)
}
