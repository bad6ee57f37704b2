package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/prospector/internal/core"
	"github.com/vovakirdan/prospector/internal/sim"
	"github.com/vovakirdan/prospector/internal/vmath"
)

// holdTicks is how long a key press counts as held. Terminals report key
// repeats but never releases, so a press keeps an action alive until the
// next repeat arrives.
const holdTicks = 8

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "w", "up", "k":
		return core.ActionUp, false
	case "s", "down", "j":
		return core.ActionDown, false
	case "a", "left", "h":
		return core.ActionLeft, false
	case "d", "right", "l":
		return core.ActionRight, false
	case " ", "x":
		return core.ActionMine, false
	case "e":
		return core.ActionDock, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	}
	return core.ActionNone, false
}

// Controls turns discrete key presses into the held state the simulation
// expects.
type Controls struct {
	held map[core.Action]int
}

// NewControls creates an idle control latch.
func NewControls() Controls {
	return Controls{held: make(map[core.Action]int)}
}

// Press latches an action. Docking is a one-tick request; everything else
// stays held for holdTicks.
func (c *Controls) Press(a core.Action) {
	if c.held == nil {
		c.held = make(map[core.Action]int)
	}
	switch a {
	case core.ActionNone, core.ActionQuit, core.ActionPause, core.ActionConfirm, core.ActionBack:
		return
	case core.ActionDock:
		c.held[a] = 1
	default:
		c.held[a] = holdTicks
	}
}

// Release drops every held action.
func (c *Controls) Release() {
	for k := range c.held {
		delete(c.held, k)
	}
}

// Frame returns the actions held this tick and ages the latch.
func (c *Controls) Frame() core.InputFrame {
	frame := core.NewInputFrame()
	for a, n := range c.held {
		if n <= 0 {
			delete(c.held, a)
			continue
		}
		frame.Set(a)
		c.held[a] = n - 1
	}
	return frame
}

// InputFromFrame converts held actions into a simulation input. Any
// direction key both turns the craft toward that direction and burns the
// engine.
func InputFromFrame(frame core.InputFrame) sim.Input {
	in := sim.Input{
		Mine: frame.Has(core.ActionMine),
		Dock: frame.Has(core.ActionDock),
	}
	if x, y := frame.Axis(); x != 0 || y != 0 {
		in.Heading = vmath.V(float64(x), float64(y))
		in.Thrust = 1
	}
	return in
}
