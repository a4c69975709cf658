package gamemap

// Tile identifies what occupies or decorates one cell of a layer.
type Tile uint8

const (
	TileNone Tile = iota
	TileGrass
	TileWater
	TileWall
	TilePortal
	TileStructure
	TilePlayer
	TileEnemy
	TileLargeEnemy
	TileProjectile
	TileTrackingProjectile
	TileFire
	TileLightning
)

var tileNames = [...]string{
	TileNone:               "none",
	TileGrass:              "grass",
	TileWater:              "water",
	TileWall:               "wall",
	TilePortal:             "portal",
	TileStructure:          "structure",
	TilePlayer:             "player",
	TileEnemy:              "enemy",
	TileLargeEnemy:         "large-enemy",
	TileProjectile:         "projectile",
	TileTrackingProjectile: "tracking-projectile",
	TileFire:               "fire",
	TileLightning:          "lightning",
}

func (t Tile) String() string {
	if int(t) < len(tileNames) {
		return tileNames[t]
	}
	return "unknown"
}

// permissible lists the tiles that occupy a cell without blocking movement.
var permissible = map[Tile]bool{
	TileGrass: true,
}

// Permissible reports whether t lets movers onto its cell.
func Permissible(t Tile) bool { return permissible[t] }

// EntityKind tags an entity-layer occupant.
type EntityKind uint8

const (
	EntityPlayer EntityKind = iota
	EntityEnemy
)

func (k EntityKind) String() string {
	if k == EntityPlayer {
		return "player"
	}
	return "enemy"
}
