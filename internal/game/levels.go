package game

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"tilequest/internal/boss"
	"tilequest/internal/factory"
	"tilequest/internal/gamemap"
	"tilequest/internal/generate"
	"tilequest/internal/grid"
	"tilequest/internal/world"
)

// Layout describes the room grid of a new world.
type Layout struct {
	RoomsWide  int
	RoomsHigh  int
	RoomWidth  int
	RoomHeight int
	Boss       grid.Position // room coordinate holding the boss
	Start      grid.Position // room coordinate the player starts in
}

// DefaultLayout is a 3×3 grid of 50×50 rooms with the boss in the middle.
func DefaultLayout() Layout {
	return Layout{
		RoomsWide:  3,
		RoomsHigh:  3,
		RoomWidth:  50,
		RoomHeight: 50,
		Boss:       grid.Pos(1, 1),
		Start:      grid.Pos(0, 0),
	}
}

// StartPos is where the player enters the start room.
func (l Layout) StartPos() grid.Position {
	return grid.Pos(l.RoomWidth/2, l.RoomHeight/2)
}

// NewWorld generates every room of layout, fills it with enemies, attaches
// the golem to the boss room and places the player.
func NewWorld(layout Layout, rng *rand.Rand, log *zap.Logger) (*world.World, error) {
	rooms := gamemap.NewIndex(layout.RoomWidth, layout.RoomHeight, layout.Boss)
	w := world.New(rooms, rng, log)
	start := layout.StartPos()

	for y := 0; y < layout.RoomsHigh; y++ {
		for x := 0; x < layout.RoomsWide; x++ {
			coord := grid.Pos(x, y)
			room := rooms.Create(coord)
			cfg := generate.DefaultConfig(rng)
			cfg.EnemyTable = factory.EnemyTable()

			var reserved []grid.Position
			if coord == layout.Start {
				reserved = append(reserved, start)
			}
			res := generate.Room(room, cfg, reserved...)
			for _, sp := range res.Enemies {
				if _, err := w.AddEnemy(coord, factory.NewEnemy(sp)); err != nil {
					return nil, fmt.Errorf("populate room %v: %w", coord, err)
				}
			}
			if room.Boss {
				w.Boss = boss.NewGolem(coord, generate.BossInterior(room.Board))
			}
		}
	}

	if err := w.PlacePlayer(layout.Start, start); err != nil {
		return nil, fmt.Errorf("new world: %w", err)
	}
	w.Log.Info("world generated",
		zap.Int("rooms", len(rooms.Coords())), zap.Stringer("boss", layout.Boss))
	return w, nil
}

// attachBoss gives a restored world a fresh golem for its boss room.
func attachBoss(w *world.World) {
	for _, coord := range w.Rooms.BossCoords() {
		if room, ok := w.Rooms.Room(coord); ok {
			w.Boss = boss.NewGolem(coord, generate.BossInterior(room.Board))
			return
		}
	}
}
