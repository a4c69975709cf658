package generate

import (
	"tilequest/internal/gamemap"
	"tilequest/internal/grid"
)

// Ruins lays cfg.RuinCount short wall runs between random points. Walls only
// go on cells that have no terrain yet.
func Ruins(room *gamemap.Room, cfg *Config) int {
	w, h := room.Board.Width(), room.Board.Height()
	if w < 3 || h < 3 || cfg.RuinLength <= 0 {
		return 0
	}
	painted := 0
	for range cfg.RuinCount {
		x1, y1 := 1+cfg.Rand.Intn(w-2), 1+cfg.Rand.Intn(h-2)
		x2 := clampInt(x1+cfg.Rand.Intn(2*cfg.RuinLength+1)-cfg.RuinLength, 1, w-2)
		y2 := clampInt(y1+cfg.Rand.Intn(2*cfg.RuinLength+1)-cfg.RuinLength, 1, h-2)
		painted += layRun(room, x1, y1, x2, y2, cfg)
	}
	return painted
}

// layRun draws one wall run between (x1,y1) and (x2,y2).
func layRun(room *gamemap.Room, x1, y1, x2, y2 int, cfg *Config) int {
	switch cfg.RuinStyle {
	case RuinZShaped:
		return layZShaped(room, x1, y1, x2, y2)
	case RuinStraight:
		return layH(room, x1, x2, y1) + layV(room, y1, y2, x2)
	default:
		if cfg.Rand.Intn(2) == 0 {
			return layH(room, x1, x2, y1) + layV(room, y1, y2, x2)
		}
		return layV(room, y1, y2, x1) + layH(room, x1, x2, y2)
	}
}

func layH(room *gamemap.Room, x1, x2, y int) int {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	n := 0
	for x := x1; x <= x2; x++ {
		n += layWall(room, grid.Pos(x, y))
	}
	return n
}

func layV(room *gamemap.Room, y1, y2, x int) int {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	n := 0
	for y := y1; y <= y2; y++ {
		n += layWall(room, grid.Pos(x, y))
	}
	return n
}

func layZShaped(room *gamemap.Room, x1, y1, x2, y2 int) int {
	midY := (y1 + y2) / 2
	return layV(room, y1, midY, x1) + layH(room, x1, x2, midY) + layV(room, midY, y2, x2)
}

func layWall(room *gamemap.Room, p grid.Position) int {
	if !room.Board.Contains(p) || room.Terrain.Contains(p) {
		return 0
	}
	room.Terrain.Insert(p, gamemap.TileWall)
	return 1
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
