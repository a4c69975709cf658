// Package system holds the turn rules that mutate a world.World: collision
// resolution, combat, projectile flight, enemy AI and the end-of-turn update.
package system

import (
	"tilequest/internal/ecs"
	"tilequest/internal/gamemap"
	"tilequest/internal/grid"
	"tilequest/internal/world"
)

// MoveResult describes the outcome of a TryMovePlayer call.
type MoveResult uint8

const (
	MoveOK          MoveResult = iota // position updated
	MoveAtBound                       // clamped candidate equals origin
	MoveStunned                       // stun counter consumed instead
	MoveBlocked                       // a layer holds a non-permissible tile
	MoveBossBlocked                   // candidate inside the boss hitbox
)

func (r MoveResult) String() string {
	switch r {
	case MoveOK:
		return "ok"
	case MoveAtBound:
		return "at-bound"
	case MoveStunned:
		return "stunned"
	case MoveBlocked:
		return "blocked"
	case MoveBossBlocked:
		return "boss-blocked"
	}
	return "unknown"
}

// TryMovePlayer steps the player speed tiles in dir inside the active room.
// Checks run in a fixed order and stop at the first failure.
func TryMovePlayer(w *world.World, dir grid.Direction) MoveResult {
	p := w.Player
	room := w.ActiveRoom()
	cand := grid.Step(p.Pos, dir, p.Speed, room.Board)

	if cand == p.Pos {
		return MoveAtBound
	}
	if p.Stun > 0 {
		p.Stun--
		return MoveStunned
	}
	if !cellOpen(room, cand, nil) {
		return MoveBlocked
	}
	if bossBlocks(w, room.Coord, cand) {
		return MoveBossBlocked
	}
	Relocate(room, p.Pos, cand)
	p.Pos = cand
	return MoveOK
}

// Passable reports whether a mover could enter p in room, without side
// effects. It applies the layer and boss checks of TryMovePlayer.
func Passable(w *world.World, room, p grid.Position) bool {
	r, ok := w.Rooms.Room(room)
	if !ok || !r.Board.Contains(p) {
		return false
	}
	return cellOpen(r, p, nil) && !bossBlocks(w, room, p)
}

// Relocate moves the entity-layer entry at from to to. The destination must
// be free; a taken destination is bookkeeping corruption and panics.
func Relocate(r *gamemap.Room, from, to grid.Position) {
	o, ok := r.Entities.Get(from)
	if !ok {
		return
	}
	r.Entities.Remove(from)
	r.MustInsertEntity(to, o)
}

// cellOpen applies the layer occupancy rule. An entity-layer entry equal to
// self is ignored so multi-cell movers can slide over their own cells.
func cellOpen(r *gamemap.Room, p grid.Position, self *gamemap.Occupant) bool {
	if t, ok := r.Terrain.Get(p); ok && !gamemap.Permissible(t) {
		return false
	}
	if o, ok := r.Entities.Get(p); ok {
		if self == nil || o != *self {
			if !gamemap.Permissible(o.Tile) {
				return false
			}
		}
	}
	if t, ok := r.Atmosphere.Get(p); ok && !gamemap.Permissible(t) {
		return false
	}
	return true
}

func bossBlocks(w *world.World, room, p grid.Position) bool {
	return w.Boss != nil && w.Rooms.IsBossRoom(room) && w.Boss.Contains(p, room)
}

// AdvanceBoss runs the boss's turn if the active room is the boss room.
// The boss only drifts onto cells a mover could enter.
func AdvanceBoss(w *world.World) {
	if !w.InBossRoom() {
		return
	}
	r := w.ActiveRoom()
	w.Boss.Advance(w.Rooms.ActiveCoord(), w.Rand, func(p grid.Position) bool {
		return !cellOpen(r, p, nil)
	})
}

// moveEnemy shifts every cell of the enemy one tile in dir. The move is
// all-or-nothing: any cell leaving the board or hitting a blocker cancels it.
func moveEnemy(w *world.World, room grid.Position, id ecs.EntityID, e *world.Enemy, dir grid.Direction) bool {
	r, ok := w.Rooms.Room(room)
	if !ok {
		return false
	}
	self := gamemap.Occupant{Tile: e.Tile, Kind: gamemap.EntityEnemy, ID: id}
	dx, dy := dir.Delta()
	next := make([]grid.Position, len(e.Cells))
	for i, c := range e.Cells {
		n := c.Add(dx, dy)
		if !r.Board.Contains(n) || !cellOpen(r, n, &self) || bossBlocks(w, room, n) {
			return false
		}
		next[i] = n
	}
	for _, c := range e.Cells {
		r.Entities.Remove(c)
	}
	for _, n := range next {
		r.MustInsertEntity(n, self)
	}
	e.Cells = next
	e.Facing = dir
	return true
}
