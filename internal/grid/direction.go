package grid

// Direction is one of the four orthogonal facings.
type Direction uint8

const (
	North Direction = iota
	South
	East
	West
)

// Directions lists every facing in a fixed order.
var Directions = [4]Direction{North, South, East, West}

// Delta converts a direction to a unit (dx, dy). Y grows southwards.
func (d Direction) Delta() (int, int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	}
	return 0, 0
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	}
	return "unknown"
}

// Toward returns the facing that best closes the gap from a to b, preferring
// the axis with the larger distance. ok is false when a == b.
func Toward(a, b Position) (dir Direction, ok bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	if dx == 0 && dy == 0 {
		return North, false
	}
	if abs(dx) >= abs(dy) {
		if dx > 0 {
			return East, true
		}
		return West, true
	}
	if dy > 0 {
		return South, true
	}
	return North, true
}
