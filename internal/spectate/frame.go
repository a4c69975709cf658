// Package spectate streams read-only views of a running game to WebSocket
// clients.
package spectate

import (
	"strings"

	"tilequest/internal/gamemap"
	"tilequest/internal/grid"
	"tilequest/internal/render"
	"tilequest/internal/world"
)

// Frame is one rendered viewport, built between turns.
type Frame struct {
	Session string        `json:"session,omitempty"`
	Turn    int           `json:"turn"`
	Room    grid.Position `json:"room"`
	Origin  grid.Position `json:"origin"`
	Rows    []string      `json:"rows"`
	Health  int           `json:"health"`
	Energy  int           `json:"energy"`
	Alive   bool          `json:"alive"`
}

// NewFrame renders view of the active room to glyph rows. Movers hide
// atmosphere, which hides terrain; empty cells are two spaces.
func NewFrame(session string, w *world.World, view grid.Bounds) Frame {
	room := w.ActiveRoom()
	view = view.Intersect(room.Board)
	cells := make(map[grid.Position]string, view.Width()*view.Height())
	room.Terrain.Within(view, func(p grid.Position, t gamemap.Tile) {
		cells[p] = render.GlyphFor(t).Text
	})
	room.Atmosphere.Within(view, func(p grid.Position, t gamemap.Tile) {
		cells[p] = render.GlyphFor(t).Text
	})
	room.Entities.Within(view, func(p grid.Position, o gamemap.Occupant) {
		g := render.GlyphFor(o.Tile)
		if o.Kind == gamemap.EntityPlayer && !w.Player.Visible() {
			g = render.InvisibleGlyph
		}
		cells[p] = g.Text
	})

	rows := make([]string, 0, view.Height())
	for y := view.Min.Y; y < view.Max.Y; y++ {
		var b strings.Builder
		for x := view.Min.X; x < view.Max.X; x++ {
			if s, ok := cells[grid.Pos(x, y)]; ok {
				b.WriteString(s)
			} else {
				b.WriteString("  ")
			}
		}
		rows = append(rows, b.String())
	}
	return Frame{
		Session: session,
		Turn:    w.Turn,
		Room:    room.Coord,
		Origin:  view.Min,
		Rows:    rows,
		Health:  w.Player.Health.Current,
		Energy:  w.Player.Energy.Current,
		Alive:   w.Player.Alive,
	}
}
