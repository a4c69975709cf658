package world

import (
	"math/rand"

	"tilequest/internal/grid"
)

// Boss is the capability surface of the boss encounter. The simulation never
// sees the boss's internals; it only asks these questions.
type Boss interface {
	// CanHit reports whether the boss in room is currently targetable and
	// whether p lands on it.
	CanHit(p, room grid.Position) (targetable, hit bool)
	// Damage applies amount to the boss in room.
	Damage(amount int, room grid.Position)
	// Contains reports whether p is inside the boss hitbox in room.
	Contains(p, room grid.Position) bool
	// Nearest returns the hitbox cell closest to p when the boss is alive
	// in room.
	Nearest(p, room grid.Position) (grid.Position, bool)
	// Advance runs the boss's own turn. The boss never moves onto a cell
	// for which blocked reports true.
	Advance(room grid.Position, rng *rand.Rand, blocked func(grid.Position) bool)
}
