package render

import (
	"github.com/gdamore/tcell/v2"

	"tilequest/internal/gamemap"
)

// Glyph is how one tile kind is drawn.
type Glyph struct {
	Text  string
	Color tcell.Color
}

// Glyphs maps every tile kind to its glyph.
var Glyphs = map[gamemap.Tile]Glyph{
	gamemap.TileGrass:              {"🟩", tcell.ColorGreen},
	gamemap.TileWater:              {"🟦", tcell.ColorBlue},
	gamemap.TileWall:               {"🧱", tcell.ColorGray},
	gamemap.TilePortal:             {"🌀", tcell.ColorPurple},
	gamemap.TileStructure:          {"🪵", tcell.ColorOlive},
	gamemap.TilePlayer:             {"🧙", tcell.ColorYellow},
	gamemap.TileEnemy:              {"👾", tcell.ColorRed},
	gamemap.TileLargeEnemy:         {"👹", tcell.ColorRed},
	gamemap.TileProjectile:         {"🔸", tcell.ColorOrange},
	gamemap.TileTrackingProjectile: {"🎯", tcell.ColorFuchsia},
	gamemap.TileFire:               {"🔥", tcell.ColorOrangeRed},
	gamemap.TileLightning:          {"⚡", tcell.ColorYellow},
}

// InvisibleGlyph replaces the player glyph while invisible.
var InvisibleGlyph = Glyph{"👻", tcell.ColorSilver}

// GlyphFor returns the glyph of t, or a plain dot for unknown tiles.
func GlyphFor(t gamemap.Tile) Glyph {
	if g, ok := Glyphs[t]; ok {
		return g
	}
	return Glyph{"·", tcell.ColorWhite}
}
