package generate

import (
	"math/rand"
	"testing"

	"tilequest/internal/component"
	"tilequest/internal/gamemap"
	"tilequest/internal/grid"
)

func testConfig(seed int64) *Config {
	cfg := DefaultConfig(rand.New(rand.NewSource(seed)))
	cfg.EnemyTable = []EnemySpawnEntry{
		{Name: "slime", MaxHP: 60, Attack: 5, SightRange: 6, Behavior: component.BehaviorChase},
		{Name: "golem", Large: true, MaxHP: 120, Attack: 10, SightRange: 4, Stun: 2, Behavior: component.BehaviorStationary},
	}
	return cfg
}

func terrainOf(room *gamemap.Room, want gamemap.Tile) map[grid.Position]bool {
	out := make(map[grid.Position]bool)
	room.Terrain.Within(room.Board, func(p grid.Position, t gamemap.Tile) {
		if t == want {
			out[p] = true
		}
	})
	return out
}

func TestCarveBossRoomExactPositions(t *testing.T) {
	room := gamemap.NewRoom(grid.Pos(1, 1), 50, 50)
	CarveBossRoom(room)

	walls := terrainOf(room, gamemap.TileWall)
	if len(walls) != 4*(BossRingSize-1) {
		t.Fatalf("wall count = %d; want %d", len(walls), 4*(BossRingSize-1))
	}
	for _, p := range []grid.Position{grid.Pos(21, 21), grid.Pos(28, 21), grid.Pos(21, 28), grid.Pos(28, 28), grid.Pos(24, 21)} {
		if !walls[p] {
			t.Errorf("expected wall at %v", p)
		}
	}
	if walls[grid.Pos(22, 22)] {
		t.Error("ring interior must stay open")
	}

	portals := terrainOf(room, gamemap.TilePortal)
	want := []grid.Position{grid.Pos(24, 24), grid.Pos(25, 24), grid.Pos(24, 25), grid.Pos(25, 25)}
	if len(portals) != len(want) {
		t.Fatalf("portal count = %d; want 4", len(portals))
	}
	for _, p := range want {
		if !portals[p] {
			t.Errorf("expected portal at %v", p)
		}
	}
}

func TestCarveBossRoomDeterministic(t *testing.T) {
	a := gamemap.NewRoom(grid.Pos(0, 0), 40, 30)
	b := gamemap.NewRoom(grid.Pos(0, 0), 40, 30)
	b.PaintTerrain(grid.Pos(16, 11), gamemap.TileWater) // on the ring, gets overwritten
	CarveBossRoom(a)
	CarveBossRoom(b)
	pa, pb := a.Terrain.Positions(), b.Terrain.Positions()
	if len(pa) != len(pb) {
		t.Fatalf("terrain sizes differ: %d vs %d", len(pa), len(pb))
	}
	for i := range pa {
		ta, _ := a.Terrain.Get(pa[i])
		tb, _ := b.Terrain.Get(pb[i])
		if pa[i] != pb[i] || ta != tb {
			t.Fatalf("mismatch at %d: %v/%v vs %v/%v", i, pa[i], ta, pb[i], tb)
		}
	}
}

func TestLakesReproducible(t *testing.T) {
	gen := func(seed int64) map[grid.Position]bool {
		room := gamemap.NewRoom(grid.Pos(0, 0), 50, 50)
		Lakes(room, testConfig(seed))
		return terrainOf(room, gamemap.TileWater)
	}
	a, b := gen(7), gen(7)
	if len(a) == 0 {
		t.Fatal("expected some water")
	}
	if len(a) != len(b) {
		t.Fatalf("same seed gave %d and %d water tiles", len(a), len(b))
	}
	for p := range a {
		if !b[p] {
			t.Fatalf("water at %v missing from second run", p)
		}
	}
}

func TestLakesRespectExistingTerrain(t *testing.T) {
	room := gamemap.NewRoom(grid.Pos(0, 0), 50, 50)
	CarveBossRoom(room)
	walls := len(terrainOf(room, gamemap.TileWall))
	cfg := testConfig(3)
	cfg.LakeCount = 20
	Lakes(room, cfg)
	if got := len(terrainOf(room, gamemap.TileWall)); got != walls {
		t.Fatalf("lakes replaced walls: %d -> %d", walls, got)
	}
	room.Terrain.Within(grid.Bounds{Max: grid.Pos(1000, 1000)}, func(p grid.Position, _ gamemap.Tile) {
		if !room.Board.Contains(p) {
			t.Fatalf("terrain outside the board at %v", p)
		}
	})
}

func TestLakeSpreadIsBounded(t *testing.T) {
	// With decay 0.1 spread stops at depth 10, so a single lake fits in a
	// 21×21 box around its seed.
	for seed := int64(0); seed < 5; seed++ {
		cfg := testConfig(seed)
		cfg.LakeCount = 1
		room := gamemap.NewRoom(grid.Pos(0, 0), 50, 50)
		Lakes(room, cfg)
		const limit = 21
		b := grid.Bounds{Min: grid.Pos(50, 50)}
		for p := range terrainOf(room, gamemap.TileWater) {
			b.Min = grid.Pos(min(b.Min.X, p.X), min(b.Min.Y, p.Y))
			b.Max = grid.Pos(max(b.Max.X, p.X+1), max(b.Max.Y, p.Y+1))
		}
		if b.Width() > limit || b.Height() > limit {
			t.Fatalf("seed %d: lake spans %dx%d; limit %d", seed, b.Width(), b.Height(), limit)
		}
	}
}

func TestLakesSkipTinyBoards(t *testing.T) {
	room := gamemap.NewRoom(grid.Pos(0, 0), 8, 8)
	if n := Lakes(room, testConfig(1)); n != 0 {
		t.Fatalf("painted %d tiles on a board smaller than the margins", n)
	}
}

func TestGrassOnlyOnFreeCells(t *testing.T) {
	room := gamemap.NewRoom(grid.Pos(0, 0), 20, 20)
	room.PaintTerrain(grid.Pos(3, 3), gamemap.TileWall)
	cfg := testConfig(5)
	cfg.GrassDensity = 1
	n := Grass(room, cfg)
	if n != 20*20-1 {
		t.Fatalf("grass = %d; want %d", n, 20*20-1)
	}
	if tile, _ := room.Terrain.Get(grid.Pos(3, 3)); tile != gamemap.TileWall {
		t.Fatal("grass overwrote a wall")
	}
}

func TestRuinsStyles(t *testing.T) {
	for _, style := range []RuinStyle{RuinLShaped, RuinZShaped, RuinStraight} {
		room := gamemap.NewRoom(grid.Pos(0, 0), 30, 30)
		cfg := testConfig(2)
		cfg.RuinStyle = style
		n := Ruins(room, cfg)
		if n == 0 || n != len(terrainOf(room, gamemap.TileWall)) {
			t.Errorf("style %d: painted %d walls", style, n)
		}
	}
}

func TestLayHStopsAtSegmentEnds(t *testing.T) {
	room := gamemap.NewRoom(grid.Pos(0, 0), 20, 20)
	layH(room, 8, 3, 5)
	walls := terrainOf(room, gamemap.TileWall)
	if len(walls) != 6 || !walls[grid.Pos(3, 5)] || !walls[grid.Pos(8, 5)] {
		t.Fatalf("walls = %v", walls)
	}
}

func TestPopulateAvoidsBlockersAndReserved(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		room := gamemap.NewRoom(grid.Pos(0, 0), 50, 50)
		cfg := testConfig(seed)
		start := grid.Pos(25, 25)
		res := Room(room, cfg, start)

		seen := make(map[grid.Position]bool)
		larges := 0
		for _, sp := range res.Enemies {
			if sp.Entry.Large {
				larges++
				if len(sp.Cells) != 4 {
					t.Fatalf("seed %d: large enemy with %d cells", seed, len(sp.Cells))
				}
			}
			for _, c := range sp.Cells {
				if seen[c] {
					t.Fatalf("seed %d: two spawns share %v", seed, c)
				}
				seen[c] = true
				if tile, ok := room.Terrain.Get(c); ok && !gamemap.Permissible(tile) {
					t.Fatalf("seed %d: spawn on %v at %v", seed, tile, c)
				}
				if grid.Chebyshev(c, start) <= cfg.SpawnClear {
					t.Fatalf("seed %d: spawn %v inside the start clearing", seed, c)
				}
			}
		}
		if larges > cfg.LargeCount || len(res.Enemies) > cfg.EnemyCount+cfg.LargeCount {
			t.Fatalf("seed %d: too many spawns", seed)
		}
		if tile, ok := room.Terrain.Get(start); ok && !gamemap.Permissible(tile) {
			t.Fatalf("seed %d: start cell blocked by %v", seed, tile)
		}
	}
}

func TestPopulateBossRoomKeepsArenaClear(t *testing.T) {
	room := gamemap.NewRoom(grid.Pos(1, 1), 50, 50)
	room.Boss = true
	cfg := testConfig(4)
	cfg.EnemyCount = 30
	res := Room(room, cfg)
	arena := BossArena(room.Board)
	for _, sp := range res.Enemies {
		for _, c := range sp.Cells {
			if arena.Contains(c) {
				t.Fatalf("spawn %v inside the boss arena", c)
			}
		}
	}
	if len(terrainOf(room, gamemap.TileWater)) != 0 {
		t.Fatal("boss rooms get no lakes")
	}
}

func TestPopulateEmptyTable(t *testing.T) {
	room := gamemap.NewRoom(grid.Pos(0, 0), 20, 20)
	cfg := DefaultConfig(rand.New(rand.NewSource(1)))
	if res := Populate(room, cfg); len(res.Enemies) != 0 {
		t.Fatalf("expected no spawns without a table, got %d", len(res.Enemies))
	}
}

func TestBossInteriorInsideRing(t *testing.T) {
	board := grid.Board(50, 50)
	in := BossInterior(board)
	if in.Min != grid.Pos(22, 22) || in.Max != grid.Pos(28, 28) {
		t.Fatalf("interior = %+v", in)
	}
	if !in.Contains(BossPortal(board).Min) {
		t.Error("portal should sit inside the interior")
	}
}
