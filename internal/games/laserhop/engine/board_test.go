package engine

import (
	"math/rand"
	"strings"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b int
		want int
	}{
		{Index(0, 0), Index(0, 0), 0},
		{Index(0, 0), Index(0, 1), 1},
		{Index(0, 0), Index(1, 1), 1},
		{Index(0, 0), Index(0, 3), 3},
		{Index(4, 2), Index(3, 3), 1},
		{Index(4, 2), Index(6, 3), 2},
		{Index(0, 5), Index(1, 0), 5},
		{Index(8, 0), Index(0, 5), 8},
	}

	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); got != tt.want {
			t.Errorf("Distance(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := Distance(tt.b, tt.a); got != tt.want {
			t.Errorf("Distance(%d, %d) = %d, want %d (symmetry)", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestRowColIndex(t *testing.T) {
	for i := 0; i < Cells; i++ {
		row, col := RowCol(i)
		if row < 0 || row >= Rows || col < 0 || col >= Cols {
			t.Fatalf("RowCol(%d) = (%d, %d) outside the grid", i, row, col)
		}
		if Index(row, col) != i {
			t.Errorf("Index(RowCol(%d)) = %d", i, Index(row, col))
		}
	}
	if InBounds(-1) || InBounds(Cells) {
		t.Error("InBounds accepted an index outside [0, Cells)")
	}
}

func TestParseCell(t *testing.T) {
	tests := []struct {
		in   string
		want Cell
		ok   bool
	}{
		{"blue", CellNeutral, true},
		{"green", CellTarget, true},
		{"gray", CellCleared, true},
		{"grey", CellCleared, true},
		{" Grey ", CellCleared, true},
		{"red", CellHazard, true},
		{"purple", CellNeutral, false},
		{"", CellNeutral, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCell(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseCell(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParseBoardRoundTrip(t *testing.T) {
	lvl := BuiltinLevels()[0]
	rows := strings.Split(lvl.Board.String(), "\n")

	b, err := ParseBoard(rows...)
	if err != nil {
		t.Fatalf("ParseBoard() failed: %v", err)
	}
	if b != lvl.Board {
		t.Errorf("board changed after String/ParseBoard:\n%s\nvs\n%s", b, lvl.Board)
	}
}

func TestParseBoardErrors(t *testing.T) {
	valid := strings.Repeat("......\n", Rows-1) + "......"

	tests := []struct {
		name string
		rows []string
	}{
		{"too few rows", strings.Split(valid, "\n")[:Rows-1]},
		{"short row", append(strings.Split(valid, "\n")[:Rows-1], ".....")},
		{"unknown char", append(strings.Split(valid, "\n")[:Rows-1], "....?.")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseBoard(tt.rows...); err == nil {
				t.Error("ParseBoard() should fail")
			}
		})
	}
}

func TestRandomBoardSeeded(t *testing.T) {
	b1 := RandomBoard(rand.New(rand.NewSource(7)))
	b2 := RandomBoard(rand.New(rand.NewSource(7)))
	if b1 != b2 {
		t.Error("same seed produced different boards")
	}

	for i, c := range b1 {
		if c >= cellCount {
			t.Fatalf("cell %d has invalid variant %d", i, c)
		}
	}
}

func TestRandomBoardUsesAllVariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seen := make(map[Cell]bool)
	for i := 0; i < 20; i++ {
		for _, c := range RandomBoard(rng) {
			seen[c] = true
		}
	}
	for c := CellNeutral; c < cellCount; c++ {
		if !seen[c] {
			t.Errorf("variant %s never drawn", c)
		}
	}
}

func TestBuiltinLevels(t *testing.T) {
	levels := BuiltinLevels()
	if len(levels) != 3 {
		t.Fatalf("expected 3 campaign levels, got %d", len(levels))
	}
	for i, lvl := range levels {
		if lvl.ID != i+1 {
			t.Errorf("level %d has ID %d", i+1, lvl.ID)
		}
		if lvl.Board.Targets() == 0 {
			t.Errorf("level %d has no green cells", lvl.ID)
		}
	}

	// BuiltinLevels must hand out copies.
	levels[0].Board[0] = CellHazard
	if BuiltinLevels()[0].Board[0] == CellHazard {
		t.Error("mutating BuiltinLevels() result changed the stock campaign")
	}
}
