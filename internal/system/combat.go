package system

import (
	"go.uber.org/zap"

	"tilequest/internal/ecs"
	"tilequest/internal/grid"
	"tilequest/internal/world"
)

// AttackResult holds the outcome of one strike.
type AttackResult struct {
	Enemies []ecs.EntityID // enemies damaged, each at most once
	Killed  int            // how many of them dropped to zero health
	Boss    bool           // the boss took damage
	Damage  int
}

// Hit reports whether anything was damaged.
func (r AttackResult) Hit() bool { return len(r.Enemies) > 0 || r.Boss }

// Strike damages whatever stands on the given cells of room: every enemy
// covering at least one cell is hit once, and the boss is hit once if any
// cell is a targetable hit. Dead enemies stay registered until SweepDead.
func Strike(w *world.World, room grid.Position, cells []grid.Position, dmg int) AttackResult {
	res := AttackResult{Damage: dmg}
	seen := make(map[ecs.EntityID]bool)
	for _, c := range cells {
		id, e, ok := w.EnemyAt(room, c)
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		res.Enemies = append(res.Enemies, id)
		if e.Health.Damage(dmg) {
			res.Killed++
		}
	}
	for _, c := range cells {
		if strikeBoss(w, room, c, dmg) {
			res.Boss = true
			break
		}
	}
	if res.Hit() {
		w.Log.Debug("strike",
			zap.Int("damage", dmg), zap.Int("enemies", len(res.Enemies)),
			zap.Int("killed", res.Killed), zap.Bool("boss", res.Boss))
	}
	return res
}

// Melee hits the single cell ahead of the player.
func Melee(w *world.World, dmg int) AttackResult {
	p := w.Player
	room := w.ActiveRoom()
	target := grid.Step(p.Pos, p.Facing, 1, room.Board)
	if target == p.Pos {
		return AttackResult{Damage: dmg}
	}
	return Strike(w, room.Coord, []grid.Position{target}, dmg)
}

// Slam hits the 3×3 neighbourhood around center.
func Slam(w *world.World, center grid.Position, dmg int) AttackResult {
	room := w.ActiveRoom()
	return Strike(w, room.Coord, grid.Neighborhood(center, room.Board), dmg)
}

// strikeBoss damages the boss when p is a targetable hit in a boss room.
func strikeBoss(w *world.World, room, p grid.Position, dmg int) bool {
	if w.Boss == nil || !w.Rooms.IsBossRoom(room) {
		return false
	}
	targetable, hit := w.Boss.CanHit(p, room)
	if !targetable || !hit {
		return false
	}
	w.Boss.Damage(dmg, room)
	return true
}

// HitPlayer applies an enemy hit and its stun.
func HitPlayer(w *world.World, dmg, stun int) {
	p := w.Player
	if !p.Alive {
		return
	}
	p.Damage(dmg)
	ApplyStun(p, stun)
	if !p.Alive {
		w.Log.Info("player died", zap.Int("turn", w.Turn))
	}
}

// SweepDead removes every dead enemy of the active room.
func SweepDead(w *world.World) int {
	return w.SweepDeadEnemies(w.Rooms.ActiveCoord())
}
