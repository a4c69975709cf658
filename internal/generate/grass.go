package generate

import (
	"tilequest/internal/gamemap"
	"tilequest/internal/grid"
)

// Grass scatters walkable grass over cells that have no terrain yet.
func Grass(room *gamemap.Room, cfg *Config) int {
	if cfg.GrassDensity <= 0 {
		return 0
	}
	n := 0
	for y := room.Board.Min.Y; y < room.Board.Max.Y; y++ {
		for x := room.Board.Min.X; x < room.Board.Max.X; x++ {
			p := grid.Pos(x, y)
			if room.Terrain.Contains(p) {
				continue
			}
			if cfg.Rand.Float64() < cfg.GrassDensity {
				room.Terrain.Insert(p, gamemap.TileGrass)
				n++
			}
		}
	}
	return n
}
