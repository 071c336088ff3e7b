package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/laserhop/internal/core"
)

// palette holds one lipgloss style per core.Color, indexed by the color.
var palette = [...]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          fg("1"),
	core.ColorGreen:        fg("2"),
	core.ColorYellow:       fg("3"),
	core.ColorBlue:         fg("33"),
	core.ColorWhite:        fg("7"),
	core.ColorBrightRed:    fg("9").Bold(true),
	core.ColorBrightGreen:  fg("10"),
	core.ColorBrightYellow: fg("11"),
	core.ColorBrightWhite:  fg("15"),
	core.ColorGray:         fg("245"),
	core.ColorDarkGray:     fg("238"),
}

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

func styleOf(c core.Color) lipgloss.Style {
	if int(c) < len(palette) {
		return palette[c]
	}
	return palette[core.ColorDefault]
}

// RenderScreen turns the frame buffer into the string Bubble Tea prints.
// Each row is cut into spans of one color so a tile costs a single escape
// sequence rather than one per character.
func RenderScreen(s *core.Screen) string {
	w, h := s.Width(), s.Height()
	rows := make([]string, h)

	var row, span strings.Builder
	for y := range h {
		row.Reset()
		for x := 0; x < w; {
			color := s.GetCell(x, y).Color
			span.Reset()
			for ; x < w; x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				span.WriteRune(cell.Rune)
			}
			row.WriteString(styleOf(color).Render(span.String()))
		}
		rows[y] = row.String()
	}
	return strings.Join(rows, "\n")
}
