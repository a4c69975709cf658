package world

import (
	"tilequest/internal/component"
	"tilequest/internal/gamemap"
	"tilequest/internal/grid"
)

// Enemy is a hostile mover. Large enemies span several cells.
type Enemy struct {
	Cells  []grid.Position
	Facing grid.Direction
	Health component.Health
	Room   grid.Position
	Tile   gamemap.Tile
	AI     component.AI
}

// Occupies reports whether p is one of the enemy's cells.
func (e *Enemy) Occupies(p grid.Position) bool {
	for _, c := range e.Cells {
		if c == p {
			return true
		}
	}
	return false
}

// Anchor returns the enemy's first cell.
func (e *Enemy) Anchor() grid.Position {
	if len(e.Cells) == 0 {
		return grid.Position{}
	}
	return e.Cells[0]
}

// ProjectileKind selects how a projectile travels and resolves.
type ProjectileKind uint8

const (
	ProjectilePlain ProjectileKind = iota
	ProjectileTracking
	ProjectileFire
	ProjectileLightning
)

func (k ProjectileKind) String() string {
	switch k {
	case ProjectilePlain:
		return "plain"
	case ProjectileTracking:
		return "tracking"
	case ProjectileFire:
		return "fire"
	case ProjectileLightning:
		return "lightning"
	}
	return "unknown"
}

// Projectile is an in-flight effect tracked on the atmosphere layer.
type Projectile struct {
	Pos    grid.Position
	Dir    grid.Direction
	Speed  int
	Damage int
	Room   grid.Position
	Kind   ProjectileKind
	Owner  gamemap.EntityKind
	Tile   gamemap.Tile
}
