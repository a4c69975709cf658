package boss

import (
	"math/rand"
	"testing"

	"tilequest/internal/grid"
	"tilequest/internal/world"
)

var _ world.Boss = (*Golem)(nil)

func newGolem() *Golem {
	arena := grid.Bounds{Min: grid.Pos(21, 21), Max: grid.Pos(29, 29)}
	return NewGolem(grid.Pos(1, 1), arena)
}

func TestGolemCentred(t *testing.T) {
	g := newGolem()
	want := grid.Bounds{Min: grid.Pos(23, 23), Max: grid.Pos(27, 27)}
	if g.Hitbox != want {
		t.Fatalf("hitbox = %v; want %v", g.Hitbox, want)
	}
}

func TestGolemCanHit(t *testing.T) {
	g := newGolem()
	cases := []struct {
		name       string
		p, room    grid.Position
		targetable bool
		hit        bool
	}{
		{"inside", grid.Pos(24, 24), grid.Pos(1, 1), true, true},
		{"outside", grid.Pos(10, 10), grid.Pos(1, 1), true, false},
		{"other room", grid.Pos(24, 24), grid.Pos(0, 0), false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			targetable, hit := g.CanHit(tc.p, tc.room)
			if targetable != tc.targetable || hit != tc.hit {
				t.Errorf("CanHit = %v,%v; want %v,%v", targetable, hit, tc.targetable, tc.hit)
			}
		})
	}
}

func TestGolemShieldRhythm(t *testing.T) {
	g := newGolem()
	rng := rand.New(rand.NewSource(1))
	for i := 1; i <= 2*GolemShieldEvery; i++ {
		g.Advance(g.Room, rng, nil)
		if want := i%GolemShieldEvery == 0; g.Shielded != want {
			t.Fatalf("turn %d: shielded = %v; want %v", i, g.Shielded, want)
		}
	}
	g.Shielded = true
	g.Damage(100, g.Room)
	if g.Health.Current != GolemHealth {
		t.Fatal("shielded golem took damage")
	}
}

func TestGolemStaysInArena(t *testing.T) {
	g := newGolem()
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 200; i++ {
		g.Advance(g.Room, rng, nil)
		if g.Hitbox.Intersect(g.Arena) != g.Hitbox {
			t.Fatalf("turn %d: hitbox %v left arena %v", i, g.Hitbox, g.Arena)
		}
	}
}

func TestGolemNeverCoversBlockedCell(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g := newGolem()
		// the player waits in the arena corner, next to the hitbox
		player := g.Arena.Min
		blocked := func(p grid.Position) bool { return p == player }
		rng := rand.New(rand.NewSource(seed))
		for i := 0; i < 100; i++ {
			g.Advance(g.Room, rng, blocked)
			if g.Contains(player, g.Room) {
				t.Fatalf("seed %d turn %d: hitbox %v covers %v", seed, i, g.Hitbox, player)
			}
		}
	}
}

func TestGolemShieldsWhileBoxedIn(t *testing.T) {
	g := newGolem()
	start := g.Hitbox
	everything := func(grid.Position) bool { return true }
	rng := rand.New(rand.NewSource(3))
	for i := 1; i <= GolemShieldEvery; i++ {
		g.Advance(g.Room, rng, everything)
	}
	if g.Hitbox != start {
		t.Fatalf("boxed-in golem moved to %v", g.Hitbox)
	}
	if !g.Shielded {
		t.Fatal("shield rhythm must not depend on movement")
	}
}

func TestGolemNearest(t *testing.T) {
	g := newGolem() // hitbox (23,23)-(27,27)
	cases := []struct {
		name    string
		p, room grid.Position
		want    grid.Position
		ok      bool
	}{
		{"north-west", grid.Pos(10, 10), g.Room, grid.Pos(23, 23), true},
		{"east", grid.Pos(40, 25), g.Room, grid.Pos(26, 25), true},
		{"inside", grid.Pos(24, 25), g.Room, grid.Pos(24, 25), true},
		{"other room", grid.Pos(10, 10), grid.Pos(0, 0), grid.Position{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := g.Nearest(tc.p, tc.room)
			if got != tc.want || ok != tc.ok {
				t.Errorf("Nearest = %v,%v; want %v,%v", got, ok, tc.want, tc.ok)
			}
		})
	}
	g.Damage(GolemHealth, g.Room)
	if _, ok := g.Nearest(grid.Pos(10, 10), g.Room); ok {
		t.Error("a dead golem has no nearest cell")
	}
}

func TestGolemDeath(t *testing.T) {
	g := newGolem()
	g.Damage(GolemHealth, g.Room)
	if !g.Dead() {
		t.Fatal("golem should be dead")
	}
	if g.Contains(grid.Pos(24, 24), g.Room) {
		t.Fatal("a dead golem must not block movement")
	}
	if targetable, _ := g.CanHit(grid.Pos(24, 24), g.Room); targetable {
		t.Fatal("a dead golem is not targetable")
	}
}
