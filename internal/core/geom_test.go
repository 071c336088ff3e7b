package core

import "testing"

func TestRectContains(t *testing.T) {
	// A 3x2 tile at (10, 4).
	tile := NewRect(10, 4, 3, 2)

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"top-left corner", 10, 4, true},
		{"bottom-right cell", 12, 5, true},
		{"right edge is exclusive", 13, 4, false},
		{"bottom edge is exclusive", 10, 6, false},
		{"left of tile", 9, 4, false},
		{"above tile", 11, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tile.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}

	if NewRect(0, 0, 0, 0).Contains(0, 0) {
		t.Error("empty rect should contain nothing")
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 7, 4, 3)
	if r.Right() != 9 {
		t.Errorf("Right() = %d, want 9", r.Right())
	}
	if r.Bottom() != 10 {
		t.Errorf("Bottom() = %d, want 10", r.Bottom())
	}
}

func TestRectCentered(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		w, h int
		want Rect
	}{
		{"even fit", NewRect(0, 0, 10, 10), 4, 2, NewRect(3, 4, 4, 2)},
		{"odd leftover", NewRect(2, 1, 9, 6), 4, 3, NewRect(4, 2, 4, 3)},
		{"same size", NewRect(3, 3, 5, 5), 5, 5, NewRect(3, 3, 5, 5)},
		{"larger than outer", NewRect(10, 10, 4, 4), 8, 6, NewRect(8, 9, 8, 6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Centered(tt.w, tt.h); got != tt.want {
				t.Errorf("Centered(%d, %d) = %+v, want %+v", tt.w, tt.h, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, want int
	}{
		{5, 0, 8, 5},
		{-1, 0, 8, 0},
		{9, 0, 8, 8},
		{8, 0, 8, 8},
	}
	for _, tt := range tests {
		if got := Clamp(tt.val, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.val, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, lo, hi, want float64
	}{
		{2.5, 0, 5, 2.5},
		{-0.05, 0, 5, 0},
		{5.1, 0, 5, 5},
	}
	for _, tt := range tests {
		if got := ClampF(tt.val, tt.lo, tt.hi); got != tt.want {
			t.Errorf("ClampF(%v, %v, %v) = %v, want %v", tt.val, tt.lo, tt.hi, got, tt.want)
		}
	}
}
