// Package render draws a world.World onto a tcell screen. It only reads the
// simulation state.
package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"tilequest/internal/gamemap"
	"tilequest/internal/grid"
	"tilequest/internal/world"
)

// HUDRows is the number of rows reserved at the bottom of the screen.
const HUDRows = 5

// Renderer draws the game world onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	r := &Renderer{screen: screen, camera: NewCamera(0, 0)}
	r.Resize()
	return r
}

// Resize refits the camera to the current screen size.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera.ViewWidth = w
	r.camera.ViewHeight = max(0, h-HUDRows)
}

// Camera exposes the camera for mouse translation.
func (r *Renderer) Camera() *Camera { return r.camera }

// CenterOn recenters the camera on p within board.
func (r *Renderer) CenterOn(p grid.Position, board grid.Bounds) { r.camera.Center(p, board) }

// DrawFrame renders the active room: terrain, then atmosphere, then movers.
func (r *Renderer) DrawFrame(w *world.World) {
	r.screen.Clear()
	room := w.ActiveRoom()
	if room == nil {
		return
	}
	view := r.camera.Viewport(room.Board)
	bg := tcell.StyleDefault.Background(tcell.ColorBlack)

	room.Terrain.Within(view, func(p grid.Position, t gamemap.Tile) {
		r.drawTile(p, GlyphFor(t), bg)
	})
	room.Atmosphere.Within(view, func(p grid.Position, t gamemap.Tile) {
		r.drawTile(p, GlyphFor(t), bg)
	})
	room.Entities.Within(view, func(p grid.Position, o gamemap.Occupant) {
		g := GlyphFor(o.Tile)
		if o.Kind == gamemap.EntityPlayer && !w.Player.Visible() {
			g = InvisibleGlyph
		}
		r.drawTile(p, g, bg)
	})
}

func (r *Renderer) drawTile(p grid.Position, g Glyph, base tcell.Style) {
	sx, sy, onScreen := r.camera.WorldToScreen(p)
	if !onScreen {
		return
	}
	r.putGlyph(sx, sy, g.Text, base.Foreground(g.Color))
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	// pad the second column first so the wide glyph owns it
	if runewidth.StringWidth(glyph) == 2 {
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
	r.screen.SetContent(x, y, mainc, combc, style)
}
