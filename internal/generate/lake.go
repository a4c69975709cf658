package generate

import (
	"tilequest/internal/gamemap"
	"tilequest/internal/grid"
)

type lakeCell struct {
	pos   grid.Position
	depth int
}

// Lakes floods cfg.LakeCount lakes into room and returns how many water
// tiles were painted.
func Lakes(room *gamemap.Room, cfg *Config) int {
	w, h := room.Board.Width(), room.Board.Height()
	spanX, spanY := w-2*cfg.LakeMargin, h-2*cfg.LakeMargin
	if spanX <= 0 || spanY <= 0 {
		return 0
	}
	painted := 0
	for range cfg.LakeCount {
		seed := grid.Pos(cfg.LakeMargin+cfg.Rand.Intn(spanX), cfg.LakeMargin+cfg.Rand.Intn(spanY))
		painted += flood(room, seed, cfg)
	}
	return painted
}

// flood grows one lake breadth-first from seed. A neighbour joins the
// frontier with probability 1 - decay*depth of the cell it spreads from.
// Each cell is visited at most once per lake.
func flood(room *gamemap.Room, seed grid.Position, cfg *Config) int {
	visited := map[grid.Position]bool{seed: true}
	queue := []lakeCell{{pos: seed}}
	painted := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if !room.Terrain.Contains(cur.pos) {
			room.Terrain.Insert(cur.pos, gamemap.TileWater)
			painted++
		}
		chance := max(0, 1-cfg.LakeDecay*float64(cur.depth))
		for _, d := range lakeOrder {
			dx, dy := d.Delta()
			n := cur.pos.Add(dx, dy)
			if !room.Board.Contains(n) || visited[n] {
				continue
			}
			if cfg.Rand.Float64() < chance {
				visited[n] = true
				queue = append(queue, lakeCell{pos: n, depth: cur.depth + 1})
			}
		}
	}
	return painted
}

var lakeOrder = [4]grid.Direction{grid.East, grid.West, grid.South, grid.North}
