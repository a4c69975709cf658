package system

import "tilequest/internal/world"

// ApplyInvisibility starts an invisibility window. A shorter window never
// replaces a longer one that is already running.
func ApplyInvisibility(p *world.Player, ticks int) {
	if ticks > p.Invisible {
		p.Invisible = ticks
	}
}

// ApplyStun sets the stun counter, keeping the longer of the two.
func ApplyStun(p *world.Player, ticks int) {
	if ticks > p.Stun {
		p.Stun = ticks
	}
}

// TickInvisibility counts one turn off the invisibility window.
func TickInvisibility(p *world.Player) {
	if p.Invisible > 0 {
		p.Invisible--
	}
}
