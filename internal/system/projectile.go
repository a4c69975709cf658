package system

import (
	"go.uber.org/zap"

	"tilequest/internal/ecs"
	"tilequest/internal/gamemap"
	"tilequest/internal/grid"
	"tilequest/internal/world"
)

// CanSpawnAt reports whether a projectile may be created at p in the active
// room. Enemies and the boss do not prevent a spawn; the projectile resolves
// against them on the next update.
func CanSpawnAt(w *world.World, p grid.Position) bool {
	r := w.ActiveRoom()
	if !r.Board.Contains(p) || p == w.Player.Pos {
		return false
	}
	if t, ok := r.Terrain.Get(p); ok && !gamemap.Permissible(t) {
		return false
	}
	return !r.Atmosphere.Contains(p)
}

// StepProjectiles advances every projectile of the active room and returns
// how many resolved this tick. Projectiles in other rooms are frozen.
func StepProjectiles(w *world.World) int {
	active := w.Rooms.ActiveCoord()
	resolved := 0
	for _, id := range w.Projectiles.IDs() {
		pr, ok := w.Projectiles.Get(id)
		if !ok || pr.Room != active {
			continue
		}
		if stepProjectile(w, id, pr) {
			w.RemoveProjectile(id)
			resolved++
		}
	}
	return resolved
}

// stepProjectile moves one projectile and reports whether it is spent.
func stepProjectile(w *world.World, id ecs.EntityID, pr *world.Projectile) bool {
	if pr.Kind == world.ProjectileLightning {
		res := Strike(w, pr.Room, []grid.Position{pr.Pos}, pr.Damage)
		w.Log.Debug("lightning struck", zap.Stringer("pos", pr.Pos), zap.Bool("hit", res.Hit()))
		return true
	}
	if impact(w, pr, pr.Pos) {
		return true
	}
	if pr.Kind == world.ProjectileTracking {
		aim(w, pr)
	}
	r, ok := w.Rooms.Room(pr.Room)
	if !ok {
		return true
	}
	for i := 0; i < max(1, pr.Speed); i++ {
		next := grid.Step(pr.Pos, pr.Dir, 1, r.Board)
		if next == pr.Pos {
			return true
		}
		if impact(w, pr, next) {
			return true
		}
		if !cellOpen(r, next, nil) || !w.MoveProjectile(id, next) {
			return true
		}
	}
	return false
}

// impact resolves a projectile against the mover or boss at p. It reports
// whether the projectile is spent.
func impact(w *world.World, pr *world.Projectile, p grid.Position) bool {
	r, ok := w.Rooms.Room(pr.Room)
	if !ok {
		return true
	}
	if o, ok := r.Entities.Get(p); ok {
		switch {
		case o.Kind == gamemap.EntityEnemy && pr.Owner == gamemap.EntityPlayer:
			Strike(w, pr.Room, []grid.Position{p}, pr.Damage)
		case o.Kind == gamemap.EntityPlayer && pr.Owner == gamemap.EntityEnemy:
			HitPlayer(w, pr.Damage, 0)
		}
		return true
	}
	if strikeBoss(w, pr.Room, p, pr.Damage) {
		return true
	}
	return bossBlocks(w, pr.Room, p)
}

// aim turns a tracking projectile toward the nearest enemy cell of its room,
// counting the boss hitbox in the boss room.
func aim(w *world.World, pr *world.Projectile) {
	best, found := grid.Position{}, false
	bestDist := 0
	w.Enemies(pr.Room).Each(func(_ ecs.EntityID, e *world.Enemy) {
		if e.Health.Dead() {
			return
		}
		for _, c := range e.Cells {
			d := grid.Chebyshev(pr.Pos, c)
			if !found || d < bestDist {
				best, bestDist, found = c, d, true
			}
		}
	})
	if w.Boss != nil && w.Rooms.IsBossRoom(pr.Room) {
		if c, ok := w.Boss.Nearest(pr.Pos, pr.Room); ok {
			if d := grid.Chebyshev(pr.Pos, c); !found || d < bestDist {
				best, found = c, true
			}
		}
	}
	if !found {
		return
	}
	if dir, ok := grid.Toward(pr.Pos, best); ok {
		pr.Dir = dir
	}
}
