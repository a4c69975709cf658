package system

import (
	"tilequest/internal/gamemap"
	"tilequest/internal/grid"
)

// octant transform matrices for recursive shadowcasting:
//
//	worldX = cx + dx*xx + dy*xy
//	worldY = cy + dx*yx + dy*yy
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// Opaque reports whether p blocks line of sight in r. Walls and built
// structures block; water, grass and other movers do not.
func Opaque(r *gamemap.Room, p grid.Position) bool {
	if !r.Board.Contains(p) {
		return true
	}
	if t, ok := r.Terrain.Get(p); ok && t == gamemap.TileWall {
		return true
	}
	if t, ok := r.Atmosphere.Get(p); ok && t == gamemap.TileStructure {
		return true
	}
	return false
}

// Sight returns the set of cells of r visible from origin within radius.
func Sight(r *gamemap.Room, origin grid.Position, radius int) map[grid.Position]bool {
	seen := make(map[grid.Position]bool)
	if !r.Board.Contains(origin) {
		return seen
	}
	seen[origin] = true
	for _, m := range octants {
		castLight(r, seen, origin, 1, 1.0, 0.0, radius, m[0], m[1], m[2], m[3])
	}
	return seen
}

// CanSee reports whether to is visible from from within radius.
func CanSee(r *gamemap.Room, from, to grid.Position, radius int) bool {
	if grid.Chebyshev(from, to) > radius {
		return false
	}
	return Sight(r, from, radius)[to]
}

func castLight(r *gamemap.Room, seen map[grid.Position]bool, c grid.Position, row int, start, end float64, radius, xx, xy, yx, yy int) {
	if start < end {
		return
	}
	radiusSq := float64(radius * radius)
	newStart := start

	for j := row; j <= radius; j++ {
		dy := -j
		blocked := false

		for dx := -j; dx <= 0; dx++ {
			p := grid.Pos(c.X+dx*xx+dy*xy, c.Y+dx*yx+dy*yy)
			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			if float64(dx*dx+dy*dy) <= radiusSq && r.Board.Contains(p) {
				seen[p] = true
			}

			opaque := Opaque(r, p)
			if blocked {
				if opaque {
					newStart = rSlope
				} else {
					blocked = false
					start = newStart
				}
			} else if opaque && j < radius {
				blocked = true
				castLight(r, seen, c, j+1, start, lSlope, radius, xx, xy, yx, yy)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}
