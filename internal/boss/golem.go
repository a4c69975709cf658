// Package boss provides the stock boss: a stone golem that drifts around
// the boss arena and raises a shield on a fixed rhythm.
package boss

import (
	"math/rand"

	"tilequest/internal/component"
	"tilequest/internal/grid"
)

const (
	GolemSize        = 4
	GolemHealth      = 500
	GolemShieldEvery = 4 // shielded on every Nth turn
)

// Golem implements world.Boss for a single room.
type Golem struct {
	Room     grid.Position
	Arena    grid.Bounds
	Hitbox   grid.Bounds
	Health   component.Health
	Shielded bool
	turn     int
}

// NewGolem centres a golem inside arena of room.
func NewGolem(room grid.Position, arena grid.Bounds) *Golem {
	x := arena.Min.X + (arena.Width()-GolemSize)/2
	y := arena.Min.Y + (arena.Height()-GolemSize)/2
	return &Golem{
		Room:   room,
		Arena:  arena,
		Hitbox: grid.Bounds{Min: grid.Pos(x, y), Max: grid.Pos(x+GolemSize, y+GolemSize)},
		Health: component.NewHealth(GolemHealth),
	}
}

// Dead reports whether the golem has fallen.
func (g *Golem) Dead() bool { return g.Health.Dead() }

// CanHit reports whether the golem can be damaged right now and whether p
// lies on it.
func (g *Golem) CanHit(p, room grid.Position) (targetable, hit bool) {
	if room != g.Room || g.Dead() {
		return false, false
	}
	return !g.Shielded, g.Hitbox.Contains(p)
}

// Damage hurts the golem unless it is shielded.
func (g *Golem) Damage(amount int, room grid.Position) {
	if room != g.Room || g.Shielded {
		return
	}
	g.Health.Damage(amount)
}

// Contains reports whether p is inside the living golem's hitbox.
func (g *Golem) Contains(p, room grid.Position) bool {
	return room == g.Room && !g.Dead() && g.Hitbox.Contains(p)
}

// Nearest returns the hitbox cell closest to p, if the golem is alive in room.
func (g *Golem) Nearest(p, room grid.Position) (grid.Position, bool) {
	if room != g.Room || g.Dead() {
		return grid.Position{}, false
	}
	x := max(g.Hitbox.Min.X, min(p.X, g.Hitbox.Max.X-1))
	y := max(g.Hitbox.Min.Y, min(p.Y, g.Hitbox.Max.Y-1))
	return grid.Pos(x, y), true
}

// Advance takes the golem's turn: update the shield and drift at most one
// tile in each axis, staying inside the arena. A drift that would cover a
// blocked cell is skipped.
func (g *Golem) Advance(room grid.Position, rng *rand.Rand, blocked func(grid.Position) bool) {
	if room != g.Room || g.Dead() {
		return
	}
	g.turn++
	g.Shielded = g.turn%GolemShieldEvery == 0
	dx, dy := rng.Intn(3)-1, rng.Intn(3)-1
	minX := max(g.Arena.Min.X, min(g.Hitbox.Min.X+dx, g.Arena.Max.X-GolemSize))
	minY := max(g.Arena.Min.Y, min(g.Hitbox.Min.Y+dy, g.Arena.Max.Y-GolemSize))
	next := grid.Bounds{Min: grid.Pos(minX, minY), Max: grid.Pos(minX+GolemSize, minY+GolemSize)}
	if blocked != nil && g.covers(next, blocked) {
		return
	}
	g.Hitbox = next
}

// covers reports whether next takes in a blocked cell the current hitbox
// does not already hold.
func (g *Golem) covers(next grid.Bounds, blocked func(grid.Position) bool) bool {
	for y := next.Min.Y; y < next.Max.Y; y++ {
		for x := next.Min.X; x < next.Max.X; x++ {
			p := grid.Pos(x, y)
			if !g.Hitbox.Contains(p) && blocked(p) {
				return true
			}
		}
	}
	return false
}
