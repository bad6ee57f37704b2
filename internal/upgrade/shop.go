// Package upgrade prices station purchases. Every function is pure: it takes
// the pilot's ship, levels and credits and returns the new values, leaving
// the caller to apply them.
package upgrade

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/prospector/internal/config"
)

var (
	ErrUnknownUpgrade      = errors.New("unknown upgrade")
	ErrMaxLevel            = errors.New("upgrade already at max level")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrTankFull            = errors.New("fuel tank already full")
)

// Levels maps an upgrade track id to the level bought so far.
type Levels map[string]int

// Clone returns a copy of l.
func (l Levels) Clone() Levels {
	out := make(Levels, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// Offer is one line of the station's upgrade menu.
type Offer struct {
	Track      config.UpgradeTrack
	Level      int                 // current level, 0 = stock
	Current    float64             // stat value now
	Next       *config.UpgradeCost // nil when maxed
	Affordable bool
}

// Maxed reports whether nothing more can be bought on this track.
func (o Offer) Maxed() bool {
	return o.Next == nil
}

// Purchase is the outcome of a successful Buy.
type Purchase struct {
	Ship    config.ShipConfig
	Levels  Levels
	Credits int
	Cost    int
}

// Shop sells upgrades and fuel.
type Shop struct {
	tracks     []config.UpgradeTrack
	refuelCost float64
}

// NewShop creates a shop over the configured tracks. refuelCost is the
// price of one unit of fuel.
func NewShop(tracks []config.UpgradeTrack, refuelCost float64) *Shop {
	return &Shop{tracks: tracks, refuelCost: refuelCost}
}

// Tracks returns the upgrade tracks in menu order.
func (s *Shop) Tracks() []config.UpgradeTrack {
	return s.tracks
}

func (s *Shop) track(id string) (config.UpgradeTrack, bool) {
	for _, t := range s.tracks {
		if t.ID == id {
			return t, true
		}
	}
	return config.UpgradeTrack{}, false
}

// next returns the cost entry after level, or nil.
func next(t config.UpgradeTrack, level int) *config.UpgradeCost {
	for i := range t.Levels {
		if t.Levels[i].Level == level+1 {
			c := t.Levels[i]
			return &c
		}
	}
	return nil
}

// Offers lists every track with its next level and whether it is affordable.
func (s *Shop) Offers(ship config.ShipConfig, levels Levels, credits int) []Offer {
	offers := make([]Offer, 0, len(s.tracks))
	for _, t := range s.tracks {
		cur, _ := ship.Stat(t.Stat)
		o := Offer{
			Track:   t,
			Level:   levels[t.ID],
			Current: cur,
			Next:    next(t, levels[t.ID]),
		}
		o.Affordable = o.Next != nil && o.Next.Cost <= credits
		offers = append(offers, o)
	}
	return offers
}

// Buy purchases the next level of a track.
func (s *Shop) Buy(trackID string, ship config.ShipConfig, levels Levels, credits int) (Purchase, error) {
	t, ok := s.track(trackID)
	if !ok {
		return Purchase{}, fmt.Errorf("%w: %q", ErrUnknownUpgrade, trackID)
	}
	n := next(t, levels[t.ID])
	if n == nil {
		return Purchase{}, fmt.Errorf("%s: %w", t.Name, ErrMaxLevel)
	}
	if n.Cost > credits {
		return Purchase{}, fmt.Errorf("%s costs %d, have %d: %w", t.Name, n.Cost, credits, ErrInsufficientCredits)
	}

	refit, err := ship.WithStat(t.Stat, n.Value)
	if err != nil {
		return Purchase{}, fmt.Errorf("%s: %w", t.Name, err)
	}
	newLevels := levels.Clone()
	newLevels[t.ID] = n.Level

	return Purchase{
		Ship:    refit,
		Levels:  newLevels,
		Credits: credits - n.Cost,
		Cost:    n.Cost,
	}, nil
}

// RefuelCost returns the price of filling the tank from fuel to max.
func (s *Shop) RefuelCost(fuel, max float64) int {
	missing := max - fuel
	if missing <= 0 {
		return 0
	}
	return int(math.Ceil(missing * s.refuelCost))
}

// Refuel buys as much fuel as credits allow, up to a full tank. It returns
// the new fuel level and the credits left.
func (s *Shop) Refuel(fuel, max float64, credits int) (float64, int, error) {
	if fuel >= max {
		return fuel, credits, ErrTankFull
	}
	cost := s.RefuelCost(fuel, max)
	if cost <= credits {
		return max, credits - cost, nil
	}
	if credits <= 0 {
		return fuel, credits, fmt.Errorf("refuel costs %d, have %d: %w", cost, credits, ErrInsufficientCredits)
	}
	return fuel + float64(credits)/s.refuelCost, 0, nil
}
