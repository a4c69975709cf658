package system

import (
	"go.uber.org/zap"

	"tilequest/internal/component"
	"tilequest/internal/ecs"
	"tilequest/internal/grid"
	"tilequest/internal/world"
)

// EnemyHitResult records one enemy attack on the player.
type EnemyHitResult struct {
	AttackerID ecs.EntityID
	Damage     int
	Stun       int
}

// ProcessAI runs one turn for every live enemy of the active room and
// returns the attacks made against the player. Enemies ignore an invisible
// or dead player.
func ProcessAI(w *world.World) []EnemyHitResult {
	p := w.Player
	if !p.Alive || !p.Visible() {
		return nil
	}
	room := w.ActiveRoom()
	reg := w.Enemies(room.Coord)

	var hits []EnemyHitResult
	for _, id := range reg.IDs() {
		e, ok := reg.Get(id)
		if !ok || e.Health.Dead() {
			continue
		}
		from, dist := nearestCell(e, p.Pos)
		if dist > e.AI.SightRange || !CanSee(room, from, p.Pos, e.AI.SightRange) {
			continue
		}
		if dist <= 1 {
			HitPlayer(w, e.AI.Attack, e.AI.Stun)
			hits = append(hits, EnemyHitResult{AttackerID: id, Damage: e.AI.Attack, Stun: e.AI.Stun})
			w.Log.Debug("enemy hit player",
				zap.Uint64("id", uint64(id)), zap.Int("damage", e.AI.Attack), zap.Int("health", p.Health.Current))
			if !p.Alive {
				break
			}
			continue
		}
		switch e.AI.Behavior {
		case component.BehaviorStationary:
			// never moves
		default:
			chaseMove(w, room.Coord, id, e, from, p.Pos)
		}
	}
	return hits
}

// nearestCell returns the enemy cell closest to target and its distance.
func nearestCell(e *world.Enemy, target grid.Position) (grid.Position, int) {
	best, bestDist := e.Anchor(), -1
	for _, c := range e.Cells {
		if d := grid.Chebyshev(c, target); bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist
}

// chaseMove steps one tile toward target, trying the horizontal axis first
// and falling back to the vertical one.
func chaseMove(w *world.World, room grid.Position, id ecs.EntityID, e *world.Enemy, from, target grid.Position) bool {
	dx, dy := target.X-from.X, target.Y-from.Y
	if dx != 0 {
		dir := grid.East
		if dx < 0 {
			dir = grid.West
		}
		if moveEnemy(w, room, id, e, dir) {
			return true
		}
	}
	if dy != 0 {
		dir := grid.South
		if dy < 0 {
			dir = grid.North
		}
		return moveEnemy(w, room, id, e, dir)
	}
	return false
}
