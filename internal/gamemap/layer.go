package gamemap

import (
	"sort"

	"tilequest/internal/ecs"
	"tilequest/internal/grid"
)

// Occupant is an entity-layer entry. ID points into the room's enemy
// registry and is NilEntity for the player.
type Occupant struct {
	Tile Tile
	Kind EntityKind
	ID   ecs.EntityID
}

// Layer is a sparse mapping from position to value. Insert never overwrites.
type Layer[V any] struct {
	cells map[grid.Position]V
}

// NewLayer creates an empty layer.
func NewLayer[V any]() *Layer[V] {
	return &Layer[V]{cells: make(map[grid.Position]V)}
}

// Get returns the value at p.
func (l *Layer[V]) Get(p grid.Position) (V, bool) {
	v, ok := l.cells[p]
	return v, ok
}

// Contains reports whether p holds a value.
func (l *Layer[V]) Contains(p grid.Position) bool {
	_, ok := l.cells[p]
	return ok
}

// Insert stores v at p and returns true, or returns false without writing
// when p is already taken.
func (l *Layer[V]) Insert(p grid.Position, v V) bool {
	if _, ok := l.cells[p]; ok {
		return false
	}
	l.cells[p] = v
	return true
}

// Remove deletes the value at p, reporting whether one was present.
func (l *Layer[V]) Remove(p grid.Position) bool {
	if _, ok := l.cells[p]; !ok {
		return false
	}
	delete(l.cells, p)
	return true
}

// Len returns the number of occupied cells.
func (l *Layer[V]) Len() int { return len(l.cells) }

// Within calls fn for every entry inside b in row-major order. When the
// window is smaller than the layer it scans the window, otherwise it sorts
// the entries.
func (l *Layer[V]) Within(b grid.Bounds, fn func(grid.Position, V)) {
	if b.Width() <= 0 || b.Height() <= 0 {
		return
	}
	if b.Width() <= len(l.cells) && b.Height() <= len(l.cells)/b.Width() {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				p := grid.Pos(x, y)
				if v, ok := l.cells[p]; ok {
					fn(p, v)
				}
			}
		}
		return
	}
	keys := make([]grid.Position, 0, len(l.cells))
	for p := range l.cells {
		if b.Contains(p) {
			keys = append(keys, p)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Y != keys[j].Y {
			return keys[i].Y < keys[j].Y
		}
		return keys[i].X < keys[j].X
	})
	for _, p := range keys {
		fn(p, l.cells[p])
	}
}

// Positions returns every occupied position in row-major order.
func (l *Layer[V]) Positions() []grid.Position {
	var out []grid.Position
	l.Within(grid.Bounds{Max: grid.Pos(maxInt, maxInt)}, func(p grid.Position, _ V) {
		out = append(out, p)
	})
	return out
}

const maxInt = int(^uint(0) >> 1)
