package save

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"tilequest/internal/component"
	"tilequest/internal/gamemap"
	"tilequest/internal/grid"
	"tilequest/internal/world"
)

func sampleSnapshot(t *testing.T) world.Snapshot {
	t.Helper()
	rooms := gamemap.NewIndex(20, 20, grid.Pos(1, 0))
	rooms.Create(grid.Pos(0, 0))
	rooms.Create(grid.Pos(1, 0))
	w := world.New(rooms, rand.New(rand.NewSource(1)), nil)
	if err := w.PlacePlayer(grid.Pos(0, 0), grid.Pos(4, 4)); err != nil {
		t.Fatalf("PlacePlayer: %v", err)
	}
	w.ActiveRoom().PaintTerrain(grid.Pos(7, 7), gamemap.TileWater)
	if _, err := w.AddEnemy(grid.Pos(0, 0), &world.Enemy{
		Cells:  []grid.Position{grid.Pos(10, 10)},
		Health: component.NewHealth(60),
		Tile:   gamemap.TileEnemy,
	}); err != nil {
		t.Fatalf("AddEnemy: %v", err)
	}
	w.Player.Cooldowns.Start(component.AbilitySlam, 6)
	w.Turn = 12
	return w.Snapshot()
}

func TestJSONStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saves.json")
	store, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	snap := sampleSnapshot(t)
	if err := store.Save("alice", snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// a second store on the same file sees the snapshot
	reopened, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := reopened.Load("alice")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Turn != 12 || got.Player.Pos != grid.Pos(4, 4) {
		t.Errorf("loaded turn %d pos %v", got.Turn, got.Player.Pos)
	}
	if got.Player.Cooldowns["slam"] != 6 {
		t.Errorf("slam cooldown = %d; want 6", got.Player.Cooldowns["slam"])
	}

	w, err := world.Restore(got, rand.New(rand.NewSource(1)), nil)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if _, _, ok := w.EnemyAt(grid.Pos(0, 0), grid.Pos(10, 10)); !ok {
		t.Error("restored world lost its enemy")
	}
}

func TestJSONStoreMissingKey(t *testing.T) {
	store, err := NewJSONStore(filepath.Join(t.TempDir(), "saves.json"))
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	if _, err := store.Load("nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load = %v; want ErrNotFound", err)
	}
}

func TestJSONStoreRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saves.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewJSONStore(path); err == nil {
		t.Fatal("expected a decode error")
	}
}

// TestPostgresStore runs only against a real database named by
// TILEQUEST_PG_DSN.
func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("TILEQUEST_PG_DSN")
	if dsn == "" {
		t.Skip("TILEQUEST_PG_DSN not set")
	}
	store, err := NewPostgresStore(dsn)
	if err != nil {
		t.Fatalf("NewPostgresStore: %v", err)
	}
	defer store.Close()

	snap := sampleSnapshot(t)
	key := "test-" + t.Name()
	if err := store.Save(key, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.Load(key)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Turn != snap.Turn {
		t.Errorf("turn = %d; want %d", got.Turn, snap.Turn)
	}
	if _, err := store.Load("missing-" + t.Name()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load missing = %v; want ErrNotFound", err)
	}
}

func TestOpenPicksBackend(t *testing.T) {
	store, err := Open("", "")
	if err != nil || store != nil {
		t.Fatalf("Open with nothing = %v, %v; want nil, nil", store, err)
	}
	store, err = Open(filepath.Join(t.TempDir(), "saves.json"), "")
	if err != nil {
		t.Fatalf("Open json: %v", err)
	}
	if _, ok := store.(*JSONStore); !ok {
		t.Errorf("Open json = %T", store)
	}
}

var (
	_ Storage = (*JSONStore)(nil)
	_ Storage = (*PostgresStore)(nil)
)
