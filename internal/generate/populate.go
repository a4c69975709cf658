package generate

import (
	"tilequest/internal/gamemap"
	"tilequest/internal/grid"
)

// EnemySpawn describes one enemy to create and the cells it claims.
type EnemySpawn struct {
	Entry EnemySpawnEntry
	Cells []grid.Position
}

// PopulateResult is returned by Populate with entity spawn data.
type PopulateResult struct {
	Enemies []EnemySpawn
}

// Populate picks spawn cells for cfg.EnemyCount small and cfg.LargeCount
// large enemies. Spawns never overlap blocking terrain, existing entities,
// each other, the boss arena, or the clearing around any reserved cell.
func Populate(room *gamemap.Room, cfg *Config, reserved ...grid.Position) PopulateResult {
	var result PopulateResult
	small, large := splitTable(cfg.EnemyTable)

	occupied := make(map[grid.Position]bool)
	free := func(p grid.Position) bool {
		if !room.Board.Contains(p) || occupied[p] {
			return false
		}
		if t, ok := room.Terrain.Get(p); ok && !gamemap.Permissible(t) {
			return false
		}
		if room.Entities.Contains(p) || room.Atmosphere.Contains(p) {
			return false
		}
		if room.Boss && BossArena(room.Board).Contains(p) {
			return false
		}
		for _, r := range reserved {
			if grid.Chebyshev(p, r) <= cfg.SpawnClear {
				return false
			}
		}
		return true
	}

	place := func(table []EnemySpawnEntry, count int, footprint []grid.Position) {
		if len(table) == 0 {
			return
		}
		for range count {
			entry := table[cfg.Rand.Intn(len(table))]
			cells, ok := pickFree(room, cfg, footprint, free)
			if !ok {
				continue
			}
			for _, c := range cells {
				occupied[c] = true
			}
			result.Enemies = append(result.Enemies, EnemySpawn{Entry: entry, Cells: cells})
		}
	}
	place(small, cfg.EnemyCount, smallFootprint)
	place(large, cfg.LargeCount, largeFootprint)
	return result
}

var (
	smallFootprint = []grid.Position{{X: 0, Y: 0}}
	largeFootprint = []grid.Position{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
)

// pickFree tries up to 50 random anchors and returns the first whose whole
// footprint is free.
func pickFree(room *gamemap.Room, cfg *Config, footprint []grid.Position, free func(grid.Position) bool) ([]grid.Position, bool) {
	const maxAttempts = 50
	w, h := room.Board.Width(), room.Board.Height()
	if w <= 0 || h <= 0 {
		return nil, false
	}
	for range maxAttempts {
		anchor := grid.Pos(cfg.Rand.Intn(w), cfg.Rand.Intn(h))
		cells := make([]grid.Position, 0, len(footprint))
		ok := true
		for _, off := range footprint {
			c := anchor.Add(off.X, off.Y)
			if !free(c) {
				ok = false
				break
			}
			cells = append(cells, c)
		}
		if ok {
			return cells, true
		}
	}
	return nil, false
}

func splitTable(table []EnemySpawnEntry) (small, large []EnemySpawnEntry) {
	for _, e := range table {
		if e.Large {
			large = append(large, e)
		} else {
			small = append(small, e)
		}
	}
	return small, large
}
