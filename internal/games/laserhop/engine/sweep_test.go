package engine

import (
	"math"
	"testing"
	"time"
)

func TestSweepPosition(t *testing.T) {
	s := DefaultSweep()

	tests := []struct {
		elapsed time.Duration
		want    float64
	}{
		{0, 2},
		{1250 * time.Millisecond, 5.5},
		{2500 * time.Millisecond, 9},
		{3750 * time.Millisecond, 5.5},
		{5000 * time.Millisecond, 2},
		{6250 * time.Millisecond, 5.5},
		{-time.Second, 2},
	}

	for _, tt := range tests {
		got := s.Position(tt.elapsed)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Position(%v) = %v, want %v", tt.elapsed, got, tt.want)
		}
	}
}

func TestSweepDirection(t *testing.T) {
	s := DefaultSweep()
	if s.Direction(time.Second) != 1 {
		t.Error("line should move down during the first leg")
	}
	if s.Direction(3*time.Second) != -1 {
		t.Error("line should move up during the second leg")
	}
}

func TestSweepCovers(t *testing.T) {
	s := DefaultSweep()

	// At t=0 the line sits at row 2 and covers [1, 2).
	if !s.Covers(1.0, 0) || !s.Covers(1.9, 0) {
		t.Error("band [1, 2) should be covered at t=0")
	}
	if s.Covers(2.0, 0) || s.Covers(0.5, 0) {
		t.Error("rows outside [1, 2) should be clear at t=0")
	}

	if !s.Covers(8.5, 2500*time.Millisecond) {
		t.Error("bottom row should be under the line at the turn")
	}
}

func TestSweepStatic(t *testing.T) {
	s := Sweep{From: 4, To: 9}
	if s.Position(time.Hour) != 4 {
		t.Error("a zero leg should keep the line parked")
	}
	if s.Direction(time.Second) != 0 {
		t.Error("a parked line has no direction")
	}
}
