// Package grid holds the integer coordinate primitives shared by every layer
// of the simulation.
package grid

import "fmt"

// Position is a non-negative tile coordinate. It is comparable and used as the
// key of every sparse layer.
type Position struct {
	X, Y int
}

// Pos is shorthand for Position{X: x, Y: y}.
func Pos(x, y int) Position { return Position{X: x, Y: y} }

// Add returns p offset by (dx, dy). The result may be outside any board.
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Chebyshev returns the king-move distance between a and b.
func Chebyshev(a, b Position) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y))
}

// Neighborhood returns p and its eight neighbours that lie inside b.
func Neighborhood(p Position, b Bounds) []Position {
	out := make([]Position, 0, 9)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			n := p.Add(dx, dy)
			if b.Contains(n) {
				out = append(out, n)
			}
		}
	}
	return out
}

// Bounds is the half-open rectangle [Min, Max).
type Bounds struct {
	Min, Max Position
}

// Board returns the bounds of a w×h board anchored at the origin.
func Board(w, h int) Bounds {
	return Bounds{Max: Position{X: w, Y: h}}
}

// Width returns the horizontal extent of b.
func (b Bounds) Width() int { return b.Max.X - b.Min.X }

// Height returns the vertical extent of b.
func (b Bounds) Height() int { return b.Max.Y - b.Min.Y }

// Contains reports whether p lies inside b.
func (b Bounds) Contains(p Position) bool {
	return p.X >= b.Min.X && p.X < b.Max.X && p.Y >= b.Min.Y && p.Y < b.Max.Y
}

// Clamp pulls p component-wise into b.
func (b Bounds) Clamp(p Position) Position {
	return Position{
		X: clamp(p.X, b.Min.X, b.Max.X-1),
		Y: clamp(p.Y, b.Min.Y, b.Max.Y-1),
	}
}

// Intersect returns the overlap of b and o. The result is empty (zero width
// or height) when they do not overlap.
func (b Bounds) Intersect(o Bounds) Bounds {
	r := Bounds{
		Min: Position{X: max(b.Min.X, o.Min.X), Y: max(b.Min.Y, o.Min.Y)},
		Max: Position{X: min(b.Max.X, o.Max.X), Y: min(b.Max.Y, o.Max.Y)},
	}
	if r.Max.X < r.Min.X {
		r.Max.X = r.Min.X
	}
	if r.Max.Y < r.Min.Y {
		r.Max.Y = r.Min.Y
	}
	return r
}

// Step moves speed tiles from origin in dir and clamps the result to b. It
// never wraps; a mover already at an edge gets origin back.
func Step(origin Position, dir Direction, speed int, b Bounds) Position {
	dx, dy := dir.Delta()
	return b.Clamp(origin.Add(dx*speed, dy*speed))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
