package generate

import (
	"tilequest/internal/gamemap"
	"tilequest/internal/grid"
)

// Room paints a full room and returns its spawn plan. Boss rooms get the
// ring and portal and no lakes or ruins. reserved cells (the player start)
// are kept clear of terrain and enemies.
func Room(room *gamemap.Room, cfg *Config, reserved ...grid.Position) PopulateResult {
	if room.Boss {
		CarveBossRoom(room)
	} else {
		Lakes(room, cfg)
		Ruins(room, cfg)
	}
	for _, r := range reserved {
		if t, ok := room.Terrain.Get(r); ok && !gamemap.Permissible(t) {
			room.Terrain.Remove(r)
		}
	}
	Grass(room, cfg)
	return Populate(room, cfg, reserved...)
}
