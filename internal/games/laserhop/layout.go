package laserhop

import (
	"github.com/vovakirdan/laserhop/internal/core"
	"github.com/vovakirdan/laserhop/internal/games/laserhop/engine"
)

// hudHeight is the number of lines above the grid.
const hudHeight = 3

// footerHeight is the number of lines below the grid.
const footerHeight = 2

// layout places the grid on screen. Tiles are tileW wide and tileH tall,
// repeated every pitchX columns and pitchY rows.
type layout struct {
	tileW, tileH   int
	pitchX, pitchY int
	left, top      int
	tooSmall       bool
}

// Layout presets, largest first.
var layouts = []layout{
	{tileW: 5, tileH: 2, pitchX: 6, pitchY: 2},
	{tileW: 3, tileH: 1, pitchX: 4, pitchY: 1},
}

// computeLayout picks the largest preset that fits the screen.
func computeLayout(screenW, screenH int) layout {
	for _, l := range layouts {
		gridW, gridH := l.gridSize()
		if gridW+2 <= screenW && gridH+hudHeight+footerHeight <= screenH {
			l.left = (screenW - gridW) / 2
			l.top = hudHeight
			return l
		}
	}
	small := layouts[len(layouts)-1]
	small.tooSmall = true
	return small
}

// gridSize returns the grid footprint in characters.
func (l layout) gridSize() (w, h int) {
	return engine.Cols*l.pitchX - (l.pitchX - l.tileW), engine.Rows * l.pitchY
}

// bounds returns the grid rectangle on screen.
func (l layout) bounds() core.Rect {
	w, h := l.gridSize()
	return core.NewRect(l.left, l.top, w, h)
}

// tileRect returns the screen rectangle of the tile at index.
func (l layout) tileRect(index int) core.Rect {
	row, col := engine.RowCol(index)
	return core.NewRect(l.left+col*l.pitchX, l.top+row*l.pitchY, l.tileW, l.tileH)
}

// cellAt maps a screen position to a board index and the fractional grid
// row of the point. Positions in the gaps between tiles miss.
func (l layout) cellAt(x, y int) (index int, row float64, ok bool) {
	if l.tooSmall || !l.bounds().Contains(x, y) {
		return engine.NoCell, 0, false
	}
	dx, dy := x-l.left, y-l.top
	col := dx / l.pitchX
	if dx%l.pitchX >= l.tileW {
		return engine.NoCell, 0, false
	}
	r := dy / l.pitchY
	row = (float64(dy) + 0.5) / float64(l.pitchY)
	return engine.Index(r, col), row, true
}

// rowAt returns the fractional grid row at the centre of screen line y.
func (l layout) rowAt(y int) float64 {
	return (float64(y-l.top) + 0.5) / float64(l.pitchY)
}
