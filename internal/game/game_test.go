package game

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap/zaptest"

	"tilequest/internal/boss"
	"tilequest/internal/generate"
	"tilequest/internal/grid"
	"tilequest/internal/save"
	"tilequest/internal/world"
)

func TestNewWorldDefaultLayout(t *testing.T) {
	layout := DefaultLayout()
	w, err := NewWorld(layout, rand.New(rand.NewSource(7)), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	if got := len(w.Rooms.Coords()); got != 9 {
		t.Fatalf("rooms = %d; want 9", got)
	}
	if w.Rooms.ActiveCoord() != layout.Start || w.Player.Pos != grid.Pos(25, 25) {
		t.Fatalf("player in room %v at %v", w.Rooms.ActiveCoord(), w.Player.Pos)
	}
	if !w.Rooms.IsBossRoom(layout.Boss) {
		t.Error("boss room not flagged")
	}
	gol, ok := w.Boss.(*boss.Golem)
	if !ok {
		t.Fatalf("boss = %T; want *boss.Golem", w.Boss)
	}
	room, _ := w.Rooms.Room(layout.Boss)
	interior := generate.BossInterior(room.Board)
	if gol.Hitbox.Intersect(interior) != gol.Hitbox {
		t.Errorf("golem hitbox %v leaves the arena %v", gol.Hitbox, interior)
	}
}

func TestNewWorldIsDeterministic(t *testing.T) {
	build := func() *world.World {
		w, err := NewWorld(DefaultLayout(), rand.New(rand.NewSource(99)), nil)
		if err != nil {
			t.Fatalf("NewWorld: %v", err)
		}
		return w
	}
	a, b := build(), build()
	for _, coord := range a.Rooms.Coords() {
		ra, _ := a.Rooms.Room(coord)
		rb, _ := b.Rooms.Room(coord)
		if ra.Terrain.Len() != rb.Terrain.Len() || ra.Entities.Len() != rb.Entities.Len() {
			t.Errorf("room %v differs between runs with the same seed", coord)
		}
		if a.Enemies(coord).Len() != b.Enemies(coord).Len() {
			t.Errorf("room %v enemy count differs", coord)
		}
	}
}

func TestTurnRejectionAddsMessage(t *testing.T) {
	w := newControllerWorld(t)
	g := newTestGame(t, w)

	if _, err := g.Turn(ActionNone); !errors.Is(err, ErrNoAction) {
		t.Fatalf("Turn(none) = %v", err)
	}
	if len(g.messages) != 0 {
		t.Errorf("unbound key logged %q", g.messages)
	}

	g.Turn(ActionTeleport)
	if len(g.messages) != 1 || g.messages[0] != "No target queued." {
		t.Errorf("messages = %q", g.messages)
	}
}

func TestTurnMarksDeath(t *testing.T) {
	data := t.TempDir()
	t.Setenv("XDG_DATA_HOME", data)
	w := newControllerWorld(t)
	g := newTestGame(t, w)
	w.Player.Health.Current = 5
	id := placeEnemy(t, w, 50, grid.Pos(5, 6))
	e, _ := w.Enemies(homeRoom).Get(id)
	e.AI.Attack = 10

	if _, err := g.Turn(ActionFaceE); err != nil {
		t.Fatalf("Turn: %v", err)
	}
	if g.State() != StateDead || !g.runLog.Died {
		t.Fatalf("state = %v died = %v", g.State(), g.runLog.Died)
	}
	if g.runLog.DamageTaken != 10 {
		t.Errorf("damage taken = %d", g.runLog.DamageTaken)
	}
	g.finishRun()
	raw, err := os.ReadFile(filepath.Join(data, "tilequest", "runs.jsonl"))
	if err != nil {
		t.Fatalf("run log not written: %v", err)
	}
	if !strings.Contains(string(raw), `"died":true`) {
		t.Errorf("run log = %s", raw)
	}
}

func TestHandleEventKeysAndMouse(t *testing.T) {
	w := newControllerWorld(t)
	g := newTestGame(t, w)

	g.handleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	if w.Player.Pos != grid.Pos(6, 5) || w.Turn != 1 {
		t.Fatalf("after right arrow pos %v turn %d", w.Player.Pos, w.Turn)
	}

	// the 20-wide board fits the view, so the camera sits at the origin
	g.handleEvent(tcell.NewEventMouse(14, 7, tcell.Button1, tcell.ModNone))
	if target, ok := w.Player.Target(); !ok || target != grid.Pos(7, 7) {
		t.Fatalf("queued target = %v, %v; want (7,7)", target, ok)
	}

	g.handleEvent(tcell.NewEventMouse(70, 3, tcell.Button1, tcell.ModNone))
	if target, _ := w.Player.Target(); target != grid.Pos(7, 7) {
		t.Errorf("off-board click replaced the target with %v", target)
	}
	if w.Turn != 1 {
		t.Errorf("clicking used a turn")
	}

	g.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	if g.State() != StateQuit {
		t.Errorf("state = %v; want quit", g.State())
	}
}

func TestSessionSavedAndRestored(t *testing.T) {
	store, err := save.NewJSONStore(filepath.Join(t.TempDir(), "saves.json"))
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	opts := Options{Seed: 11, Store: store, SaveKey: "alice", Log: zaptest.NewLogger(t)}

	first := newScreenGame(t, opts)
	for i := 0; i < 3; i++ {
		first.Turn(ActionMoveS)
	}
	first.finishRun()
	want := first.World()

	second := newScreenGame(t, opts)
	got := second.World()
	if got.Turn != want.Turn || got.Player.Pos != want.Player.Pos {
		t.Fatalf("restored turn %d pos %v; want %d %v", got.Turn, got.Player.Pos, want.Turn, want.Player.Pos)
	}
	if !strings.HasPrefix(second.messages[0], "Welcome back") {
		t.Errorf("first message = %q", second.messages[0])
	}
	if _, ok := got.Boss.(*boss.Golem); !ok {
		t.Error("restored world has no golem")
	}
}

func TestDeadSessionIsNotRestored(t *testing.T) {
	store, err := save.NewJSONStore(filepath.Join(t.TempDir(), "saves.json"))
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	w, err := NewWorld(DefaultLayout(), rand.New(rand.NewSource(3)), nil)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	w.Turn = 40
	w.Player.Damage(world.MaxPlayerHealth)
	if err := store.Save("bob", w.Snapshot()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	g := newScreenGame(t, Options{Seed: 3, Store: store, SaveKey: "bob"})
	if g.World().Turn != 0 || !g.World().Player.Alive {
		t.Errorf("dead session came back: turn %d alive %v", g.World().Turn, g.World().Player.Alive)
	}
}

func newScreenGame(t *testing.T, opts Options) *Game {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	if err := ss.Init(); err != nil {
		t.Fatalf("SimulationScreen.Init: %v", err)
	}
	t.Cleanup(ss.Fini)
	ss.SetSize(100, 40)
	g, err := NewWithScreen(ss, opts)
	if err != nil {
		t.Fatalf("NewWithScreen: %v", err)
	}
	return g
}
