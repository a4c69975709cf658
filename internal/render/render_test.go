package render

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"tilequest/internal/component"
	"tilequest/internal/gamemap"
	"tilequest/internal/grid"
	"tilequest/internal/world"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	ss.SetSize(80, 24)
	if err := ss.Init(); err != nil {
		t.Fatalf("SimulationScreen.Init: %v", err)
	}
	t.Cleanup(ss.Fini)
	return ss
}

func newRenderWorld(t *testing.T, at grid.Position) *world.World {
	t.Helper()
	rooms := gamemap.NewIndex(50, 50)
	rooms.Create(grid.Pos(0, 0))
	w := world.New(rooms, rand.New(rand.NewSource(1)), nil)
	if err := w.PlacePlayer(grid.Pos(0, 0), at); err != nil {
		t.Fatalf("PlacePlayer: %v", err)
	}
	return w
}

func TestCameraCenterClamps(t *testing.T) {
	board := grid.Board(50, 50)
	cases := []struct {
		name   string
		p      grid.Position
		wantOX int
		wantOY int
	}{
		{"top left", grid.Pos(0, 0), 0, 0},
		{"middle", grid.Pos(25, 25), 5, 15},
		{"bottom right", grid.Pos(49, 49), 10, 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCamera(80, 20) // 40 tiles by 20 rows
			c.Center(tc.p, board)
			if c.OffsetX != tc.wantOX || c.OffsetY != tc.wantOY {
				t.Fatalf("offset = (%d,%d); want (%d,%d)", c.OffsetX, c.OffsetY, tc.wantOX, tc.wantOY)
			}
		})
	}
}

func TestCameraSmallBoardPinsOrigin(t *testing.T) {
	c := NewCamera(80, 20)
	c.Center(grid.Pos(3, 3), grid.Board(10, 10))
	if c.OffsetX != 0 || c.OffsetY != 0 {
		t.Fatalf("offset = (%d,%d); want origin", c.OffsetX, c.OffsetY)
	}
	if v := c.Viewport(grid.Board(10, 10)); v != grid.Board(10, 10) {
		t.Fatalf("viewport = %+v; want the whole board", v)
	}
}

func TestScreenToWorldRoundTrip(t *testing.T) {
	c := NewCamera(80, 20)
	c.OffsetX, c.OffsetY = 7, 3
	p := grid.Pos(12, 9)
	sx, sy, visible := c.WorldToScreen(p)
	if !visible {
		t.Fatalf("%v should be on screen", p)
	}
	if sx != 10 || sy != 6 {
		t.Fatalf("WorldToScreen = (%d,%d); want (10,6)", sx, sy)
	}
	// both columns of a wide glyph map back to the same tile
	for _, col := range []int{sx, sx + 1} {
		if got := c.ScreenToWorld(col, sy); got != p {
			t.Errorf("ScreenToWorld(%d,%d) = %v; want %v", col, sy, got, p)
		}
	}
	if _, _, visible := c.WorldToScreen(grid.Pos(2, 9)); visible {
		t.Error("tile left of the offset should be off screen")
	}
}

func TestDrawFramePlacesPlayer(t *testing.T) {
	ss := newSimScreen(t)
	w := newRenderWorld(t, grid.Pos(25, 25))
	w.ActiveRoom().PaintTerrain(grid.Pos(26, 25), gamemap.TileWall)

	r := NewRenderer(ss)
	r.CenterOn(w.Player.Pos, w.ActiveRoom().Board)
	r.DrawFrame(w)
	ss.Show()

	sx, sy, ok := r.Camera().WorldToScreen(w.Player.Pos)
	if !ok {
		t.Fatal("player should be on screen after centering")
	}
	if mainc, _, _, _ := ss.GetContent(sx, sy); mainc != '🧙' {
		t.Errorf("cell (%d,%d) = %q; want player glyph", sx, sy, mainc)
	}
	if mainc, _, _, _ := ss.GetContent(sx+2, sy); mainc != '🧱' {
		t.Errorf("cell (%d,%d) = %q; want wall glyph", sx+2, sy, mainc)
	}
}

func TestDrawFrameInvisiblePlayer(t *testing.T) {
	ss := newSimScreen(t)
	w := newRenderWorld(t, grid.Pos(5, 5))
	w.Player.Invisible = 3

	r := NewRenderer(ss)
	r.CenterOn(w.Player.Pos, w.ActiveRoom().Board)
	r.DrawFrame(w)
	ss.Show()

	sx, sy, _ := r.Camera().WorldToScreen(w.Player.Pos)
	if mainc, _, _, _ := ss.GetContent(sx, sy); mainc != '👻' {
		t.Errorf("cell = %q; want invisible glyph", mainc)
	}
}

func TestDrawHUDShowsCounters(t *testing.T) {
	ss := newSimScreen(t)
	w := newRenderWorld(t, grid.Pos(5, 5))
	w.Player.Health.Current = 42

	r := NewRenderer(ss)
	r.DrawHUD(w, []string{"old", "hello", "world"})

	_, h := ss.Size()
	var line strings.Builder
	for x := 0; x < 40; x++ {
		mainc, _, _, _ := ss.GetContent(x, h-HUDRows+1)
		line.WriteRune(mainc)
	}
	if !strings.Contains(line.String(), "42/100") {
		t.Errorf("status line %q does not show health", line.String())
	}
}

func TestCooldownLine(t *testing.T) {
	var cd component.Cooldowns
	cd.Start(component.AbilitySlam, 4)
	got := CooldownLine(&cd)
	if !strings.Contains(got, "slam:4") || !strings.Contains(got, "projectile:ok") {
		t.Fatalf("CooldownLine = %q", got)
	}
}

func TestBar(t *testing.T) {
	cases := []struct {
		cur, total int
		want       string
	}{
		{10, 10, "█████"},
		{0, 10, "░░░░░"},
		{5, 10, "██░░░"},
		{3, 0, "░░░░░"},
	}
	for _, tc := range cases {
		if got := bar(tc.cur, tc.total, 5); got != tc.want {
			t.Errorf("bar(%d,%d) = %q; want %q", tc.cur, tc.total, got, tc.want)
		}
	}
}
