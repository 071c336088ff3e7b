package laserhop

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/laserhop/internal/core"
	"github.com/vovakirdan/laserhop/internal/games/laserhop/engine"
)

const footerHint = "arrows/hjkl yubn move  space hop  r restart  esc menu"

// tileColors maps cells to their display colour.
var tileColors = map[engine.Cell]core.Color{
	engine.CellNeutral: core.ColorBlue,
	engine.CellTarget:  core.ColorBrightGreen,
	engine.CellCleared: core.ColorGray,
	engine.CellHazard:  core.ColorRed,
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.layout.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst)
	g.renderLaser(dst)
	g.renderFooter(dst)

	if g.showNotice {
		g.renderNotice(dst)
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorBrightYellow)
	w, h := layouts[len(layouts)-1].gridSize()
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", w+2, h+hudHeight+footerHeight), core.ColorDefault)
}

// renderHUD draws title, level, score and the stamina bar.
func (g *Game) renderHUD(dst *core.Screen) {
	b := g.layout.bounds()

	dst.DrawTextColor(b.X, 0, "LASER HOP", core.ColorBrightRed)

	level := fmt.Sprintf("Level %d", g.state.Level)
	if g.IsEndlessLevel() {
		level = "Level ∞"
	}
	dst.DrawTextCentered(0, level, core.ColorBrightWhite)

	score := fmt.Sprintf("Score: %d", g.state.Score)
	dst.DrawTextColor(b.Right()-len(score), 0, score, core.ColorBrightYellow)

	g.renderStamina(dst, b.X, 1, b.W)
}

// renderStamina draws "Stamina [████····] 3.2" across width columns.
func (g *Game) renderStamina(dst *core.Screen, x, y, width int) {
	maxStamina := g.eng.RulesFor(g.state).MaxStamina
	ratio := 0.0
	if maxStamina > 0 {
		ratio = core.ClampF(g.state.Stamina/maxStamina, 0, 1)
	}

	label := "Stamina "
	value := fmt.Sprintf(" %.1f", g.state.Stamina)
	barW := width - len(label) - len(value) - 2
	if barW < 1 {
		barW = 1
	}
	filled := int(math.Round(ratio * float64(barW)))

	color := core.ColorBrightGreen
	switch {
	case ratio <= 0.25:
		color = core.ColorBrightRed
	case ratio <= 0.5:
		color = core.ColorYellow
	}

	dst.DrawTextColor(x, y, label, core.ColorDefault)
	x += len(label)
	dst.SetCell(x, y, '[', core.ColorDefault)
	dst.DrawHLine(x+1, y, filled, '█', color)
	dst.DrawHLine(x+1+filled, y, barW-filled, '·', core.ColorDarkGray)
	dst.SetCell(x+1+barW, y, ']', core.ColorDefault)
	dst.DrawTextColor(x+2+barW, y, value, color)
}

// renderBoard draws tiles, the last visited marker and the cursor.
func (g *Game) renderBoard(dst *core.Screen) {
	l := g.layout
	for i, c := range g.state.Board {
		r := l.tileRect(i)
		color := tileColors[c]
		for dy := range r.H {
			ch := '█'
			if l.tileH > 1 && dy == r.H-1 {
				ch = '▀'
			}
			dst.DrawHLine(r.X, r.Y+dy, r.W, ch, color)
		}
	}

	if g.state.HasLast() {
		r := l.tileRect(g.state.Last)
		for dy := range r.H {
			dst.SetCell(r.X-1, r.Y+dy, '[', core.ColorBrightYellow)
			dst.SetCell(r.Right(), r.Y+dy, ']', core.ColorBrightYellow)
		}
	}

	if g.state.Active() {
		r := l.tileRect(g.cursor)
		dst.SetCell(r.X+r.W/2, r.Y, '◆', core.ColorBrightWhite)
	}
}

// renderLaser paints the lines under the sweep band plus arrows at both edges.
func (g *Game) renderLaser(dst *core.Screen) {
	b := g.layout.bounds()
	arrow := '▼'
	if g.sweep.Direction(g.clock) < 0 {
		arrow = '▲'
	}
	for y := b.Y; y < b.Bottom(); y++ {
		if !g.sweep.Covers(g.layout.rowAt(y), g.clock) {
			continue
		}
		dst.DrawHLine(b.X, y, b.W, '░', core.ColorBrightRed)
		dst.SetCell(b.X-1, y, arrow, core.ColorBrightRed)
		dst.SetCell(b.Right(), y, arrow, core.ColorBrightRed)
	}
}

func (g *Game) renderFooter(dst *core.Screen) {
	y := g.layout.bounds().Bottom() + 1
	dst.DrawTextCentered(y, footerHint, core.ColorDarkGray)
}

// renderNotice draws the modal box over the centre of the grid.
func (g *Game) renderNotice(dst *core.Screen) {
	lines := strings.Split(g.notice.Body, "\n")
	button := "[ " + g.notice.Action + " ]"
	if g.outcome.Kind != engine.OutcomeRejectedTooFar {
		button = "[ Enter: " + g.notice.Action + " ]"
	}

	w := len([]rune(g.notice.Title))
	for _, s := range append(lines, button) {
		w = max(w, len([]rune(s)))
	}
	w += 4
	h := len(lines) + 5

	box := g.layout.bounds().Centered(w, h)

	color := core.ColorBrightYellow
	switch g.outcome.Kind {
	case engine.OutcomeGameOver:
		color = core.ColorBrightRed
	case engine.OutcomeLevelClear, engine.OutcomeEndlessAdvance:
		color = core.ColorBrightGreen
	}

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, color)
	centered := func(y int, s string, c core.Color) {
		dst.DrawTextColor(box.X+(box.W-len([]rune(s)))/2, y, s, c)
	}
	centered(box.Y+1, g.notice.Title, color)
	for i, s := range lines {
		centered(box.Y+2+i, s, core.ColorBrightWhite)
	}
	centered(box.Bottom()-2, button, core.ColorBrightYellow)
}
