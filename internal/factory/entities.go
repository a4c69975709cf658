// Package factory turns spawn plans and ability effects into world entities.
package factory

import (
	"tilequest/internal/component"
	"tilequest/internal/gamemap"
	"tilequest/internal/generate"
	"tilequest/internal/grid"
	"tilequest/internal/world"
)

// EnemyTable is the stock roster handed to the populator.
func EnemyTable() []generate.EnemySpawnEntry {
	return []generate.EnemySpawnEntry{
		{Name: "slime", MaxHP: 60, Attack: 5, SightRange: 6, Behavior: component.BehaviorChase},
		{Name: "wolf", MaxHP: 40, Attack: 8, SightRange: 8, Behavior: component.BehaviorChase},
		{Name: "ogre", Large: true, MaxHP: 150, Attack: 12, SightRange: 5, Stun: 2, Behavior: component.BehaviorChase},
		{Name: "totem", Large: true, MaxHP: 200, Attack: 15, SightRange: 3, Stun: 1, Behavior: component.BehaviorStationary},
	}
}

// NewEnemy builds an enemy from a spawn entry. Large entries take the tile
// of a large enemy on every cell.
func NewEnemy(sp generate.EnemySpawn) *world.Enemy {
	tile := gamemap.TileEnemy
	if sp.Entry.Large {
		tile = gamemap.TileLargeEnemy
	}
	return &world.Enemy{
		Cells:  append([]grid.Position(nil), sp.Cells...),
		Facing: grid.South,
		Health: component.NewHealth(sp.Entry.MaxHP),
		Tile:   tile,
		AI: component.AI{
			Behavior:   sp.Entry.Behavior,
			SightRange: sp.Entry.SightRange,
			Attack:     sp.Entry.Attack,
			Stun:       sp.Entry.Stun,
		},
	}
}

// ProjectileStats are the flight parameters of one projectile kind.
type ProjectileStats struct {
	Damage int
	Speed  int
	Tile   gamemap.Tile
}

var projectileStats = map[world.ProjectileKind]ProjectileStats{
	world.ProjectilePlain:     {Damage: 10, Speed: 1, Tile: gamemap.TileProjectile},
	world.ProjectileTracking:  {Damage: 50, Speed: 1, Tile: gamemap.TileTrackingProjectile},
	world.ProjectileFire:      {Damage: 40, Speed: 1, Tile: gamemap.TileFire},
	world.ProjectileLightning: {Damage: 40, Speed: 0, Tile: gamemap.TileLightning},
}

// Stats returns the flight parameters of kind.
func Stats(kind world.ProjectileKind) ProjectileStats { return projectileStats[kind] }

// NewProjectile builds a projectile of kind at pos in room.
func NewProjectile(kind world.ProjectileKind, pos grid.Position, dir grid.Direction, room grid.Position, owner gamemap.EntityKind) *world.Projectile {
	st := Stats(kind)
	return &world.Projectile{
		Pos:    pos,
		Dir:    dir,
		Speed:  st.Speed,
		Damage: st.Damage,
		Room:   room,
		Kind:   kind,
		Owner:  owner,
		Tile:   st.Tile,
	}
}
