package render

import "tilequest/internal/grid"

// Camera translates between world coordinates and screen coordinates.
// World X is multiplied by 2 because emoji occupy 2 terminal columns.
type Camera struct {
	OffsetX    int
	OffsetY    int
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// NewCamera creates a camera with the given view size at the origin.
func NewCamera(viewW, viewH int) *Camera {
	return &Camera{ViewWidth: viewW, ViewHeight: viewH}
}

// TilesWide returns how many world tiles fit across the view.
func (c *Camera) TilesWide() int { return c.ViewWidth / 2 }

// Center repositions the camera so that p is as close to the middle as the
// board allows. The view never scrolls past the board edges.
func (c *Camera) Center(p grid.Position, board grid.Bounds) {
	c.OffsetX = clampOffset(p.X-c.TilesWide()/2, board.Min.X, board.Max.X-c.TilesWide())
	c.OffsetY = clampOffset(p.Y-c.ViewHeight/2, board.Min.Y, board.Max.Y-c.ViewHeight)
}

// Viewport returns the world window on screen, clipped to board.
func (c *Camera) Viewport(board grid.Bounds) grid.Bounds {
	view := grid.Bounds{
		Min: grid.Pos(c.OffsetX, c.OffsetY),
		Max: grid.Pos(c.OffsetX+c.TilesWide(), c.OffsetY+c.ViewHeight),
	}
	return view.Intersect(board)
}

// WorldToScreen converts world p to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(p grid.Position) (sx, sy int, visible bool) {
	sx = (p.X - c.OffsetX) * 2
	sy = p.Y - c.OffsetY
	visible = sx >= 0 && sx < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// ScreenToWorld converts screen (sx, sy) to a world position.
func (c *Camera) ScreenToWorld(sx, sy int) grid.Position {
	return grid.Pos(sx/2+c.OffsetX, sy+c.OffsetY)
}

// clampOffset keeps an offset in [lo, hi]; a board narrower than the view
// pins the offset to lo.
func clampOffset(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
