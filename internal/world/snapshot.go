package world

import (
	"fmt"
	"math/rand"
	"sort"

	"go.uber.org/zap"

	"tilequest/internal/component"
	"tilequest/internal/ecs"
	"tilequest/internal/gamemap"
	"tilequest/internal/grid"
)

// Snapshot is the persisted form of a World. The boss and the random source
// are not part of it; the caller re-attaches them on restore.
type Snapshot struct {
	RoomWidth   int                  `json:"room_width"`
	RoomHeight  int                  `json:"room_height"`
	BossRooms   []grid.Position      `json:"boss_rooms"`
	Active      grid.Position        `json:"active"`
	Turn        int                  `json:"turn"`
	Player      PlayerSnapshot       `json:"player"`
	Rooms       []RoomSnapshot       `json:"rooms"`
	Projectiles []ProjectileSnapshot `json:"projectiles"`
}

type PlayerSnapshot struct {
	Pos       grid.Position  `json:"pos"`
	Facing    grid.Direction `json:"facing"`
	Speed     int            `json:"speed"`
	Health    int            `json:"health"`
	Energy    int            `json:"energy"`
	Queued    *grid.Position `json:"queued,omitempty"`
	Invisible int            `json:"invisible"`
	Stun      int            `json:"stun"`
	Alive     bool           `json:"alive"`
	Cooldowns map[string]int `json:"cooldowns"`
}

type TileEntry struct {
	Pos  grid.Position `json:"pos"`
	Tile gamemap.Tile  `json:"tile"`
}

type RoomSnapshot struct {
	Coord      grid.Position   `json:"coord"`
	Terrain    []TileEntry     `json:"terrain"`
	Atmosphere []TileEntry     `json:"atmosphere"`
	Enemies    []EnemySnapshot `json:"enemies"`
}

type EnemySnapshot struct {
	ID       ecs.EntityID         `json:"id"`
	Cells    []grid.Position      `json:"cells"`
	Facing   grid.Direction       `json:"facing"`
	Health   int                  `json:"health"`
	Max      int                  `json:"max_health"`
	Tile     gamemap.Tile         `json:"tile"`
	Behavior component.AIBehavior `json:"behavior"`
	Sight    int                  `json:"sight"`
	Attack   int                  `json:"attack"`
	Stun     int                  `json:"stun,omitempty"`
}

type ProjectileSnapshot struct {
	ID     ecs.EntityID       `json:"id"`
	Pos    grid.Position      `json:"pos"`
	Dir    grid.Direction     `json:"dir"`
	Speed  int                `json:"speed"`
	Damage int                `json:"damage"`
	Room   grid.Position      `json:"room"`
	Kind   ProjectileKind     `json:"kind"`
	Owner  gamemap.EntityKind `json:"owner"`
	Tile   gamemap.Tile       `json:"tile"`
}

// Snapshot captures the world's state. Projectile markers are not stored
// separately from their projectiles.
func (w *World) Snapshot() Snapshot {
	width, height := w.Rooms.RoomSize()
	s := Snapshot{
		RoomWidth:  width,
		RoomHeight: height,
		BossRooms:  w.Rooms.BossCoords(),
		Active:     w.Rooms.ActiveCoord(),
		Turn:       w.Turn,
		Player:     w.snapshotPlayer(),
	}

	projectileCells := make(map[grid.Position]map[grid.Position]bool)
	w.Projectiles.Each(func(id ecs.EntityID, pr *Projectile) {
		cells, ok := projectileCells[pr.Room]
		if !ok {
			cells = make(map[grid.Position]bool)
			projectileCells[pr.Room] = cells
		}
		cells[pr.Pos] = true
		s.Projectiles = append(s.Projectiles, ProjectileSnapshot{
			ID: id, Pos: pr.Pos, Dir: pr.Dir, Speed: pr.Speed, Damage: pr.Damage,
			Room: pr.Room, Kind: pr.Kind, Owner: pr.Owner, Tile: pr.Tile,
		})
	})

	for _, coord := range w.Rooms.Coords() {
		r, _ := w.Rooms.Room(coord)
		rs := RoomSnapshot{Coord: coord}
		r.Terrain.Within(r.Board, func(p grid.Position, t gamemap.Tile) {
			rs.Terrain = append(rs.Terrain, TileEntry{Pos: p, Tile: t})
		})
		r.Atmosphere.Within(r.Board, func(p grid.Position, t gamemap.Tile) {
			if !projectileCells[coord][p] {
				rs.Atmosphere = append(rs.Atmosphere, TileEntry{Pos: p, Tile: t})
			}
		})
		w.Enemies(coord).Each(func(id ecs.EntityID, e *Enemy) {
			rs.Enemies = append(rs.Enemies, EnemySnapshot{
				ID: id, Cells: append([]grid.Position(nil), e.Cells...), Facing: e.Facing,
				Health: e.Health.Current, Max: e.Health.Max, Tile: e.Tile,
				Behavior: e.AI.Behavior, Sight: e.AI.SightRange, Attack: e.AI.Attack, Stun: e.AI.Stun,
			})
		})
		s.Rooms = append(s.Rooms, rs)
	}
	return s
}

func (w *World) snapshotPlayer() PlayerSnapshot {
	p := w.Player
	ps := PlayerSnapshot{
		Pos: p.Pos, Facing: p.Facing, Speed: p.Speed,
		Health: p.Health.Current, Energy: p.Energy.Current,
		Invisible: p.Invisible, Stun: p.Stun, Alive: p.Alive,
		Cooldowns: make(map[string]int),
	}
	if t, ok := p.Target(); ok {
		ps.Queued = &t
	}
	for _, a := range component.Abilities {
		if n := p.Cooldowns.Remaining(a); n > 0 {
			ps.Cooldowns[a.String()] = n
		}
	}
	return ps
}

// Restore rebuilds a World from s. Entity ids are preserved so the entity
// layer and the registries line up exactly as they did when captured.
func Restore(s Snapshot, rng *rand.Rand, log *zap.Logger) (*World, error) {
	rooms := gamemap.NewIndex(s.RoomWidth, s.RoomHeight, s.BossRooms...)
	w := New(rooms, rng, log)
	w.Turn = s.Turn

	for _, rs := range s.Rooms {
		r := rooms.Create(rs.Coord)
		for _, te := range rs.Terrain {
			r.PaintTerrain(te.Pos, te.Tile)
		}
		for _, te := range rs.Atmosphere {
			if !r.Atmosphere.Insert(te.Pos, te.Tile) {
				return nil, fmt.Errorf("restore room %v: duplicate atmosphere at %v", rs.Coord, te.Pos)
			}
		}
		reg := w.Enemies(rs.Coord)
		for _, es := range rs.Enemies {
			e := &Enemy{
				Cells:  es.Cells,
				Facing: es.Facing,
				Health: component.Health{Current: es.Health, Max: es.Max},
				Room:   rs.Coord,
				Tile:   es.Tile,
				AI:     component.AI{Behavior: es.Behavior, SightRange: es.Sight, Attack: es.Attack, Stun: es.Stun},
			}
			if !reg.Restore(es.ID, e) {
				return nil, fmt.Errorf("restore room %v: bad enemy id %d", rs.Coord, es.ID)
			}
			for _, c := range e.Cells {
				if !r.Entities.Insert(c, gamemap.Occupant{Tile: e.Tile, Kind: gamemap.EntityEnemy, ID: es.ID}) {
					return nil, fmt.Errorf("restore room %v: enemy %d overlaps at %v", rs.Coord, es.ID, c)
				}
			}
		}
	}

	sort.Slice(s.Projectiles, func(i, j int) bool { return s.Projectiles[i].ID < s.Projectiles[j].ID })
	for _, ps := range s.Projectiles {
		r, ok := rooms.Room(ps.Room)
		if !ok {
			return nil, fmt.Errorf("restore projectile %d: %w", ps.ID, gamemap.ErrUnknownRoom)
		}
		pr := &Projectile{
			Pos: ps.Pos, Dir: ps.Dir, Speed: ps.Speed, Damage: ps.Damage,
			Room: ps.Room, Kind: ps.Kind, Owner: ps.Owner, Tile: ps.Tile,
		}
		if !r.Atmosphere.Insert(pr.Pos, pr.Tile) || !w.Projectiles.Restore(ps.ID, pr) {
			return nil, fmt.Errorf("restore projectile %d at %v: %w", ps.ID, ps.Pos, ErrCellTaken)
		}
	}

	if err := w.PlacePlayer(s.Active, s.Player.Pos); err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	p := w.Player
	p.Facing = s.Player.Facing
	p.Speed = s.Player.Speed
	p.Health.Current = s.Player.Health
	p.Energy.Current = s.Player.Energy
	p.Invisible = s.Player.Invisible
	p.Stun = s.Player.Stun
	p.Alive = s.Player.Alive
	if s.Player.Queued != nil {
		p.QueueTarget(*s.Player.Queued)
	}
	for _, a := range component.Abilities {
		p.Cooldowns.Set(a, s.Player.Cooldowns[a.String()])
	}
	return w, nil
}
