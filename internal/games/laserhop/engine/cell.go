package engine

import "strings"

// Cell is the state of one tile on the board.
type Cell uint8

const (
	CellNeutral Cell = iota // blue, safe to stand on
	CellTarget              // green, clear it for a point
	CellCleared             // gray, revisiting costs a point
	CellHazard              // red, ends the run
	cellCount
)

// String returns the palette name of the cell.
func (c Cell) String() string {
	switch c {
	case CellNeutral:
		return "blue"
	case CellTarget:
		return "green"
	case CellCleared:
		return "gray"
	case CellHazard:
		return "red"
	default:
		return "unknown"
	}
}

// Char returns the single character used in board literals and ASCII dumps.
func (c Cell) Char() rune {
	switch c {
	case CellNeutral:
		return '.'
	case CellTarget:
		return 'G'
	case CellCleared:
		return '+'
	case CellHazard:
		return 'X'
	default:
		return '?'
	}
}

// ParseCell converts a palette name to a Cell.
// Both "gray" and "grey" map to CellCleared.
func ParseCell(s string) (Cell, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "blue", "b", "neutral":
		return CellNeutral, true
	case "green", "g", "target":
		return CellTarget, true
	case "gray", "grey", "cleared":
		return CellCleared, true
	case "red", "r", "hazard":
		return CellHazard, true
	default:
		return CellNeutral, false
	}
}

// ParseCellChar converts a board literal character to a Cell.
func ParseCellChar(r rune) (Cell, bool) {
	for c := CellNeutral; c < cellCount; c++ {
		if c.Char() == r {
			return c, true
		}
	}
	return CellNeutral, false
}
