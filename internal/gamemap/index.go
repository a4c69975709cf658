package gamemap

import (
	"errors"
	"fmt"
	"sort"

	"tilequest/internal/grid"
)

// ErrUnknownRoom is returned when a room coordinate has no room.
var ErrUnknownRoom = errors.New("unknown room")

// Index is the arena of rooms keyed by room coordinate plus the selector of
// the room currently being simulated.
type Index struct {
	rooms      map[grid.Position]*Room
	active     grid.Position
	width      int
	height     int
	bossCoords map[grid.Position]bool
}

// NewIndex creates an empty index whose rooms are w×h tiles. Rooms at any
// of bossRooms are flagged as boss rooms when created.
func NewIndex(w, h int, bossRooms ...grid.Position) *Index {
	idx := &Index{
		rooms:      make(map[grid.Position]*Room),
		width:      w,
		height:     h,
		bossCoords: make(map[grid.Position]bool, len(bossRooms)),
	}
	for _, c := range bossRooms {
		idx.bossCoords[c] = true
	}
	return idx
}

// RoomSize returns the board dimensions shared by every room.
func (idx *Index) RoomSize() (int, int) { return idx.width, idx.height }

// Create adds an empty room at coord, or returns the existing one.
func (idx *Index) Create(coord grid.Position) *Room {
	if r, ok := idx.rooms[coord]; ok {
		return r
	}
	r := NewRoom(coord, idx.width, idx.height)
	r.Boss = idx.bossCoords[coord]
	idx.rooms[coord] = r
	return r
}

// Room returns the room at coord.
func (idx *Index) Room(coord grid.Position) (*Room, bool) {
	r, ok := idx.rooms[coord]
	return r, ok
}

// Remove tears down the room at coord. The active room cannot be removed.
func (idx *Index) Remove(coord grid.Position) error {
	if _, ok := idx.rooms[coord]; !ok {
		return fmt.Errorf("remove %v: %w", coord, ErrUnknownRoom)
	}
	if coord == idx.active {
		return fmt.Errorf("remove %v: room is active", coord)
	}
	delete(idx.rooms, coord)
	return nil
}

// Select makes coord the active room. Nothing is copied.
func (idx *Index) Select(coord grid.Position) error {
	if _, ok := idx.rooms[coord]; !ok {
		return fmt.Errorf("select %v: %w", coord, ErrUnknownRoom)
	}
	idx.active = coord
	return nil
}

// ActiveCoord returns the coordinate of the active room.
func (idx *Index) ActiveCoord() grid.Position { return idx.active }

// Active returns the active room, or nil when no room exists there yet.
func (idx *Index) Active() *Room { return idx.rooms[idx.active] }

// IsBossRoom reports whether coord is a designated boss room.
func (idx *Index) IsBossRoom(coord grid.Position) bool { return idx.bossCoords[coord] }

// BossCoords returns the designated boss-room coordinates, sorted.
func (idx *Index) BossCoords() []grid.Position {
	out := make([]grid.Position, 0, len(idx.bossCoords))
	for c := range idx.bossCoords {
		out = append(out, c)
	}
	sortPositions(out)
	return out
}

// Coords returns every room coordinate in row-major order.
func (idx *Index) Coords() []grid.Position {
	out := make([]grid.Position, 0, len(idx.rooms))
	for c := range idx.rooms {
		out = append(out, c)
	}
	sortPositions(out)
	return out
}

func sortPositions(ps []grid.Position) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Y != ps[j].Y {
			return ps[i].Y < ps[j].Y
		}
		return ps[i].X < ps[j].X
	})
}
