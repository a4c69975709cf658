// Package world owns the whole simulation state: the room index with its
// three layers per room, the player, the per-room enemy registries and the
// global projectile registry. Every method that creates or destroys an
// entity updates the registry and the layer together.
package world

import (
	"errors"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"tilequest/internal/ecs"
	"tilequest/internal/gamemap"
	"tilequest/internal/grid"
)

var (
	// ErrCellTaken is returned when a spawn targets an occupied cell.
	ErrCellTaken = errors.New("cell taken")
	// ErrOutOfBoard is returned when a spawn targets a cell off the board.
	ErrOutOfBoard = errors.New("out of board")
)

// World is the simulation state. It is owned by a single goroutine.
type World struct {
	Rooms       *gamemap.Index
	Player      *Player
	Projectiles *ecs.Registry[Projectile]
	Boss        Boss
	Rand        *rand.Rand
	Log         *zap.Logger
	Turn        int

	enemies map[grid.Position]*ecs.Registry[Enemy]
}

// New wraps rooms in a World. The player still has to be placed.
func New(rooms *gamemap.Index, rng *rand.Rand, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		Rooms:       rooms,
		Player:      NewPlayer(grid.Position{}),
		Projectiles: ecs.NewRegistry[Projectile](),
		Rand:        rng,
		Log:         log,
		enemies:     make(map[grid.Position]*ecs.Registry[Enemy]),
	}
}

// ActiveRoom returns the room currently simulated.
func (w *World) ActiveRoom() *gamemap.Room { return w.Rooms.Active() }

// InBossRoom reports whether the active room has boss rules and a boss is
// attached.
func (w *World) InBossRoom() bool {
	return w.Boss != nil && w.Rooms.IsBossRoom(w.Rooms.ActiveCoord())
}

// Enemies returns the enemy registry of room, creating it on first use.
func (w *World) Enemies(room grid.Position) *ecs.Registry[Enemy] {
	reg, ok := w.enemies[room]
	if !ok {
		reg = ecs.NewRegistry[Enemy]()
		w.enemies[room] = reg
	}
	return reg
}

// PlacePlayer puts the player at pos in room and makes room active.
func (w *World) PlacePlayer(room, pos grid.Position) error {
	r, ok := w.Rooms.Room(room)
	if !ok {
		return fmt.Errorf("place player: %w", gamemap.ErrUnknownRoom)
	}
	if !r.Board.Contains(pos) {
		return fmt.Errorf("place player at %v: %w", pos, ErrOutOfBoard)
	}
	if r.Entities.Contains(pos) {
		return fmt.Errorf("place player at %v: %w", pos, ErrCellTaken)
	}
	if cur := w.ActiveRoom(); cur != nil {
		if o, ok := cur.Entities.Get(w.Player.Pos); ok && o.Kind == gamemap.EntityPlayer {
			cur.Entities.Remove(w.Player.Pos)
		}
	}
	if err := w.Rooms.Select(room); err != nil {
		return err
	}
	r.MustInsertEntity(pos, gamemap.Occupant{Tile: gamemap.TilePlayer, Kind: gamemap.EntityPlayer})
	w.Player.Pos = pos
	w.Log.Info("player placed", zap.Stringer("room", room), zap.Stringer("pos", pos))
	return nil
}

// AddEnemy registers e in room and claims all its cells on the entity layer.
// Cells must be on the board, free of entities and free of blocking terrain.
func (w *World) AddEnemy(room grid.Position, e *Enemy) (ecs.EntityID, error) {
	r, ok := w.Rooms.Room(room)
	if !ok {
		return ecs.NilEntity, fmt.Errorf("add enemy: %w", gamemap.ErrUnknownRoom)
	}
	for _, c := range e.Cells {
		if !r.Board.Contains(c) {
			return ecs.NilEntity, fmt.Errorf("add enemy at %v: %w", c, ErrOutOfBoard)
		}
		if r.Entities.Contains(c) || r.Atmosphere.Contains(c) {
			return ecs.NilEntity, fmt.Errorf("add enemy at %v: %w", c, ErrCellTaken)
		}
		if t, ok := r.Terrain.Get(c); ok && !gamemap.Permissible(t) {
			return ecs.NilEntity, fmt.Errorf("add enemy at %v on %v: %w", c, t, ErrCellTaken)
		}
	}
	e.Room = room
	id := w.Enemies(room).Add(e)
	for _, c := range e.Cells {
		r.MustInsertEntity(c, gamemap.Occupant{Tile: e.Tile, Kind: gamemap.EntityEnemy, ID: id})
	}
	return id, nil
}

// RemoveEnemy deletes the enemy and clears every cell it held.
func (w *World) RemoveEnemy(room grid.Position, id ecs.EntityID) bool {
	reg := w.Enemies(room)
	e, ok := reg.Get(id)
	if !ok {
		return false
	}
	if r, ok := w.Rooms.Room(room); ok {
		clearEnemyCells(r, id, e)
	}
	reg.Remove(id)
	return true
}

func clearEnemyCells(r *gamemap.Room, id ecs.EntityID, e *Enemy) {
	for _, c := range e.Cells {
		if o, ok := r.Entities.Get(c); ok && o.Kind == gamemap.EntityEnemy && o.ID == id {
			r.Entities.Remove(c)
		}
	}
}

// EnemyAt resolves the enemy occupying p in room through the entity layer.
// A layer entry without a matching registry entry is bookkeeping corruption
// and panics.
func (w *World) EnemyAt(room, p grid.Position) (ecs.EntityID, *Enemy, bool) {
	r, ok := w.Rooms.Room(room)
	if !ok {
		return ecs.NilEntity, nil, false
	}
	o, ok := r.Entities.Get(p)
	if !ok || o.Kind != gamemap.EntityEnemy {
		return ecs.NilEntity, nil, false
	}
	e, ok := w.Enemies(room).Get(o.ID)
	if !ok {
		panic(fmt.Sprintf("world: entity layer of room %v names enemy %d at %v but the registry has no such enemy", room, o.ID, p))
	}
	if !e.Occupies(p) {
		panic(fmt.Sprintf("world: entity layer of room %v puts enemy %d at %v but its cells are %v", room, o.ID, p, e.Cells))
	}
	return o.ID, e, true
}

// SweepDeadEnemies removes every dead enemy of room in reverse registry
// order and returns how many were removed.
func (w *World) SweepDeadEnemies(room grid.Position) int {
	r, ok := w.Rooms.Room(room)
	if !ok {
		return 0
	}
	removed := w.Enemies(room).Sweep(
		func(_ ecs.EntityID, e *Enemy) bool { return e.Health.Dead() },
		func(id ecs.EntityID, e *Enemy) { clearEnemyCells(r, id, e) },
	)
	for _, id := range removed {
		w.Log.Info("enemy died", zap.Stringer("room", room), zap.Uint64("id", uint64(id)))
	}
	return len(removed)
}

// SpawnProjectile registers pr and drops its marker on the atmosphere layer
// of pr.Room. The spawn fails when the cell already carries a marker.
func (w *World) SpawnProjectile(pr *Projectile) (ecs.EntityID, error) {
	r, ok := w.Rooms.Room(pr.Room)
	if !ok {
		return ecs.NilEntity, fmt.Errorf("spawn projectile: %w", gamemap.ErrUnknownRoom)
	}
	if !r.Board.Contains(pr.Pos) {
		return ecs.NilEntity, fmt.Errorf("spawn projectile at %v: %w", pr.Pos, ErrOutOfBoard)
	}
	if !r.Atmosphere.Insert(pr.Pos, pr.Tile) {
		return ecs.NilEntity, fmt.Errorf("spawn projectile at %v: %w", pr.Pos, ErrCellTaken)
	}
	id := w.Projectiles.Add(pr)
	w.Log.Debug("projectile spawned",
		zap.Stringer("kind", pr.Kind), zap.Stringer("pos", pr.Pos), zap.Stringer("dir", pr.Dir))
	return id, nil
}

// RemoveProjectile destroys a projectile and clears its marker.
func (w *World) RemoveProjectile(id ecs.EntityID) bool {
	pr, ok := w.Projectiles.Get(id)
	if !ok {
		return false
	}
	if r, ok := w.Rooms.Room(pr.Room); ok {
		r.Atmosphere.Remove(pr.Pos)
	}
	w.Projectiles.Remove(id)
	return true
}

// MoveProjectile shifts a projectile's marker to dest. It fails when dest
// already carries a marker.
func (w *World) MoveProjectile(id ecs.EntityID, dest grid.Position) bool {
	pr, ok := w.Projectiles.Get(id)
	if !ok {
		return false
	}
	r, ok := w.Rooms.Room(pr.Room)
	if !ok || !r.Board.Contains(dest) || r.Atmosphere.Contains(dest) {
		return false
	}
	r.Atmosphere.Remove(pr.Pos)
	r.MustInsertAtmosphere(dest, pr.Tile)
	pr.Pos = dest
	return true
}

// SwitchRoom moves the player to pos in another room. The switch only
// repoints the active room.
func (w *World) SwitchRoom(room, pos grid.Position) error {
	if err := w.PlacePlayer(room, pos); err != nil {
		return fmt.Errorf("switch room: %w", err)
	}
	return nil
}
