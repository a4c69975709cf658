package gamemap

import (
	"fmt"

	"tilequest/internal/grid"
)

// LayerID selects one of the three per-room layers.
type LayerID uint8

const (
	LayerTerrain LayerID = iota
	LayerEntity
	LayerAtmosphere
)

func (l LayerID) String() string {
	switch l {
	case LayerTerrain:
		return "terrain"
	case LayerEntity:
		return "entity"
	case LayerAtmosphere:
		return "atmosphere"
	}
	return "unknown"
}

// Room is one cell of the room grid and owns its three layers.
type Room struct {
	Coord      grid.Position
	Board      grid.Bounds
	Boss       bool
	Terrain    *Layer[Tile]
	Entities   *Layer[Occupant]
	Atmosphere *Layer[Tile]
}

// NewRoom creates an empty w×h room at coord.
func NewRoom(coord grid.Position, w, h int) *Room {
	return &Room{
		Coord:      coord,
		Board:      grid.Board(w, h),
		Terrain:    NewLayer[Tile](),
		Entities:   NewLayer[Occupant](),
		Atmosphere: NewLayer[Tile](),
	}
}

// Get returns the tile descriptor at p on the given layer. For the entity
// layer the occupant's tile is returned.
func (r *Room) Get(layer LayerID, p grid.Position) (Tile, bool) {
	switch layer {
	case LayerTerrain:
		return r.Terrain.Get(p)
	case LayerEntity:
		o, ok := r.Entities.Get(p)
		return o.Tile, ok
	case LayerAtmosphere:
		return r.Atmosphere.Get(p)
	}
	return TileNone, false
}

// Contains reports whether layer holds an entry at p.
func (r *Room) Contains(layer LayerID, p grid.Position) bool {
	_, ok := r.Get(layer, p)
	return ok
}

// Occupied reports whether any layer holds an entry at p.
func (r *Room) Occupied(p grid.Position) bool {
	return r.Terrain.Contains(p) || r.Entities.Contains(p) || r.Atmosphere.Contains(p)
}

// PaintTerrain writes t at p, replacing whatever terrain was there. Only the
// generator paints terrain.
func (r *Room) PaintTerrain(p grid.Position, t Tile) {
	if !r.Board.Contains(p) {
		return
	}
	r.Terrain.Remove(p)
	r.Terrain.Insert(p, t)
}

// MustInsertEntity places o at p and panics if the cell is already taken.
// The entity layer doubles as the collision index, so a double insert means
// the registries and layers have drifted apart.
func (r *Room) MustInsertEntity(p grid.Position, o Occupant) {
	if !r.Entities.Insert(p, o) {
		prev, _ := r.Entities.Get(p)
		panic(fmt.Sprintf("gamemap: room %v entity layer already holds %v/%v at %v (inserting %v/%v)",
			r.Coord, prev.Kind, prev.ID, p, o.Kind, o.ID))
	}
}

// MustInsertAtmosphere places t at p and panics if the cell is taken.
func (r *Room) MustInsertAtmosphere(p grid.Position, t Tile) {
	if !r.Atmosphere.Insert(p, t) {
		prev, _ := r.Atmosphere.Get(p)
		panic(fmt.Sprintf("gamemap: room %v atmosphere already holds %v at %v (inserting %v)", r.Coord, prev, p, t))
	}
}
