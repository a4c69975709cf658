package generate

import (
	"tilequest/internal/gamemap"
	"tilequest/internal/grid"
)

const (
	BossRingSize   = 8
	BossPortalSize = 2
)

// BossArena returns the square the boss ring encloses, walls included. It
// depends only on the board size.
func BossArena(board grid.Bounds) grid.Bounds {
	x := board.Width()/2 - 1 - 3
	y := board.Height()/2 - 1 - 3
	return grid.Bounds{Min: grid.Pos(x, y), Max: grid.Pos(x+BossRingSize, y+BossRingSize)}
}

// BossInterior is the open square inside the ring walls.
func BossInterior(board grid.Bounds) grid.Bounds {
	a := BossArena(board)
	return grid.Bounds{Min: a.Min.Add(1, 1), Max: a.Max.Add(-1, -1)}
}

// BossPortal returns the portal cluster at the centre of the arena.
func BossPortal(board grid.Bounds) grid.Bounds {
	x, y := board.Width()/2-1, board.Height()/2-1
	return grid.Bounds{Min: grid.Pos(x, y), Max: grid.Pos(x+BossPortalSize, y+BossPortalSize)}
}

// CarveBossRoom paints the wall ring and the portal cluster. Both overwrite
// any terrain already there. The result is fixed for a given board size.
func CarveBossRoom(room *gamemap.Room) {
	arena := BossArena(room.Board)
	for y := arena.Min.Y; y < arena.Max.Y; y++ {
		for x := arena.Min.X; x < arena.Max.X; x++ {
			if x == arena.Min.X || x == arena.Max.X-1 || y == arena.Min.Y || y == arena.Max.Y-1 {
				room.PaintTerrain(grid.Pos(x, y), gamemap.TileWall)
			}
		}
	}
	portal := BossPortal(room.Board)
	for y := portal.Min.Y; y < portal.Max.Y; y++ {
		for x := portal.Min.X; x < portal.Max.X; x++ {
			room.PaintTerrain(grid.Pos(x, y), gamemap.TilePortal)
		}
	}
}
