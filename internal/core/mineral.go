package core

import (
	"fmt"
	"strings"
)

// Mineral identifies one of the ore types found in the belt.
type Mineral int

const (
	Iron Mineral = iota
	Cobalt
	Silicon
	Titanium
	Gold
	Uranium
	Kronos
	MineralCount // Sentinel for sizing fixed tables
)

var mineralNames = [MineralCount]string{
	Iron:     "Iron",
	Cobalt:   "Cobalt",
	Silicon:  "Silicon",
	Titanium: "Titanium",
	Gold:     "Gold",
	Uranium:  "Uranium",
	Kronos:   "Kronos Crystal",
}

// Minerals lists every mineral in declaration order.
func Minerals() []Mineral {
	out := make([]Mineral, MineralCount)
	for i := range out {
		out[i] = Mineral(i)
	}
	return out
}

// Valid reports whether m is a known mineral.
func (m Mineral) Valid() bool {
	return m >= 0 && m < MineralCount
}

// String returns the display name of the mineral.
func (m Mineral) String() string {
	if !m.Valid() {
		return "Unknown"
	}
	return mineralNames[m]
}

// Key returns the lower-case config key ("iron", "kronos").
func (m Mineral) Key() string {
	if m == Kronos {
		return "kronos"
	}
	return strings.ToLower(m.String())
}

// ParseMineral resolves a config key or display name to a Mineral.
func ParseMineral(s string) (Mineral, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, m := range Minerals() {
		if s == m.Key() || s == strings.ToLower(m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mineral %q", s)
}

// Cargo is a count per mineral. Every mineral is always present, so the
// aggregate sum is a plain loop over a fixed array.
type Cargo [MineralCount]int

// Total returns the number of units across all minerals.
func (c Cargo) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Empty reports whether no units are held.
func (c Cargo) Empty() bool {
	return c.Total() == 0
}

// Add stores up to n units of m without letting the total exceed capacity.
// Returns how many units were accepted.
func (c *Cargo) Add(m Mineral, n, capacity int) int {
	if !m.Valid() || n <= 0 {
		return 0
	}
	room := capacity - c.Total()
	if room <= 0 {
		return 0
	}
	if n > room {
		n = room
	}
	c[m] += n
	return n
}

// Take removes up to n units of m. Returns how many units were removed.
func (c *Cargo) Take(m Mineral, n int) int {
	if !m.Valid() || n <= 0 {
		return 0
	}
	if n > c[m] {
		n = c[m]
	}
	c[m] -= n
	return n
}

// Largest returns the mineral with the highest count. Ties go to the
// earlier mineral. ok is false when the cargo is empty.
func (c Cargo) Largest() (m Mineral, ok bool) {
	best := 0
	for i, n := range c {
		if n > best {
			best = n
			m = Mineral(i)
			ok = true
		}
	}
	return m, ok
}

// PriceTable holds the credit value of one unit of each mineral.
type PriceTable [MineralCount]int

// Value returns the credit value of the cargo.
func (p PriceTable) Value(c Cargo) int {
	total := 0
	for i, n := range c {
		total += n * p[i]
	}
	return total
}
