package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"tilequest/internal/component"
	"tilequest/internal/world"
)

// DrawHUD renders the status lines and message log at the bottom of the screen.
func (r *Renderer) DrawHUD(w *world.World, messages []string) {
	_, screenH := r.screen.Size()
	hudY := screenH - HUDRows
	if hudY < 0 {
		return
	}
	r.drawHLine(hudY, tcell.ColorGray)

	p := w.Player
	white := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	status := fmt.Sprintf("HP %s %d/%d  EN %s %d/%d  Room %v  Turn %d",
		bar(p.Health.Current, p.Health.Max, 10), p.Health.Current, p.Health.Max,
		bar(p.Energy.Current, p.Energy.Max, 10), p.Energy.Current, p.Energy.Max,
		w.Rooms.ActiveCoord(), w.Turn)
	if w.InBossRoom() {
		status += "  BOSS"
	}
	if p.Invisible > 0 {
		status += fmt.Sprintf("  invisible:%d", p.Invisible)
	}
	if p.Stun > 0 {
		status += fmt.Sprintf("  stunned:%d", p.Stun)
	}
	r.drawText(0, hudY+1, status, white)
	r.drawText(0, hudY+2, CooldownLine(&p.Cooldowns), tcell.StyleDefault.Foreground(tcell.ColorAqua))

	start := max(0, len(messages)-2)
	for i, msg := range messages[start:] {
		r.drawText(0, hudY+3+i, msg, tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}
	r.screen.Show()
}

// CooldownLine lists every ability with its remaining ticks, or "ok".
func CooldownLine(cd *component.Cooldowns) string {
	parts := make([]string, 0, len(component.Abilities))
	for _, a := range component.Abilities {
		if n := cd.Remaining(a); n > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", a, n))
		} else {
			parts = append(parts, a.String()+":ok")
		}
	}
	return strings.Join(parts, " ")
}

// bar draws a width-cell gauge of cur out of max.
func bar(cur, total, width int) string {
	if total <= 0 {
		return strings.Repeat("░", width)
	}
	filled := cur * width / total
	filled = min(width, filled)
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += max(1, runewidth.RuneWidth(ch))
	}
}
