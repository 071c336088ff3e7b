package engine

import (
	"fmt"
	"math/rand"
	"strings"
)

// Board dimensions.
const (
	Cols  = 6
	Rows  = 9
	Cells = Rows * Cols
)

// NoCell marks the absence of a last visited index.
const NoCell = -1

// Board is the grid in row-major order. Being an array, assigning a Board
// copies it, so a returned board never aliases a level template.
type Board [Cells]Cell

// InBounds reports whether index addresses a board cell.
func InBounds(index int) bool {
	return index >= 0 && index < Cells
}

// RowCol splits a board index into row and column.
func RowCol(index int) (row, col int) {
	return index / Cols, index % Cols
}

// Index joins a row and column into a board index.
func Index(row, col int) int {
	return row*Cols + col
}

// Distance returns the Chebyshev distance between two board indices,
// the number of king moves needed to get from one to the other.
func Distance(a, b int) int {
	ar, ac := RowCol(a)
	br, bc := RowCol(b)
	return max(abs(ar-br), abs(ac-bc))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Count returns how many cells hold the given variant.
func (b Board) Count(c Cell) int {
	n := 0
	for _, cell := range b {
		if cell == c {
			n++
		}
	}
	return n
}

// Targets returns the number of green cells left to clear.
func (b Board) Targets() int {
	return b.Count(CellTarget)
}

// String renders the board as Rows lines of Cols characters.
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow(Cells + Rows)
	for row := 0; row < Rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < Cols; col++ {
			sb.WriteRune(b[Index(row, col)].Char())
		}
	}
	return sb.String()
}

// ParseBoard builds a board from Rows strings of Cols cell characters.
func ParseBoard(rows ...string) (Board, error) {
	var b Board
	if len(rows) != Rows {
		return b, fmt.Errorf("board: expected %d rows, got %d", Rows, len(rows))
	}
	for row, line := range rows {
		runes := []rune(line)
		if len(runes) != Cols {
			return b, fmt.Errorf("board: row %d has %d cells, expected %d", row, len(runes), Cols)
		}
		for col, r := range runes {
			cell, ok := ParseCellChar(r)
			if !ok {
				return b, fmt.Errorf("board: row %d col %d: unknown cell %q", row, col, r)
			}
			b[Index(row, col)] = cell
		}
	}
	return b, nil
}

// MustParseBoard is ParseBoard for static layouts; it panics on malformed input.
func MustParseBoard(rows ...string) Board {
	b, err := ParseBoard(rows...)
	if err != nil {
		panic(err)
	}
	return b
}

// RandomBoard draws every cell independently and uniformly from the four variants.
func RandomBoard(rng *rand.Rand) Board {
	var b Board
	for i := range b {
		b[i] = Cell(rng.Intn(int(cellCount)))
	}
	return b
}
