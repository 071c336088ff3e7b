package engine

import "time"

// Sweep defaults: the line travels from row 2 to the bottom edge and back,
// 2.5 seconds each way.
const (
	DefaultSweepFrom = 2.0
	DefaultSweepTo   = float64(Rows)
	DefaultSweepLeg  = 2500 * time.Millisecond
)

// Sweep describes the laser line that bounces over the grid. Positions are
// measured in rows from the top edge of the grid; the line is one row thick
// and occupies the band [pos-1, pos).
//
// The sweep runs on its own clock and never stops, whatever the game state.
type Sweep struct {
	From float64
	To   float64
	Leg  time.Duration // time for one pass in one direction
}

// DefaultSweep returns the stock sweep.
func DefaultSweep() Sweep {
	return Sweep{From: DefaultSweepFrom, To: DefaultSweepTo, Leg: DefaultSweepLeg}
}

// Position returns the line position after elapsed time.
// A non-positive Leg keeps the line parked at From.
func (s Sweep) Position(elapsed time.Duration) float64 {
	if s.Leg <= 0 {
		return s.From
	}
	if elapsed < 0 {
		elapsed = 0
	}
	span := s.To - s.From
	t := elapsed % (2 * s.Leg)
	if t < s.Leg {
		return s.From + span*float64(t)/float64(s.Leg)
	}
	return s.To - span*float64(t-s.Leg)/float64(s.Leg)
}

// Band returns the rows covered by the line: top inclusive, bottom exclusive.
func (s Sweep) Band(elapsed time.Duration) (top, bottom float64) {
	pos := s.Position(elapsed)
	return pos - 1, pos
}

// Covers reports whether a point at the given fractional row is under the line.
func (s Sweep) Covers(row float64, elapsed time.Duration) bool {
	top, bottom := s.Band(elapsed)
	return row >= top && row < bottom
}

// Direction returns +1 while the line moves down and -1 on the way back.
func (s Sweep) Direction(elapsed time.Duration) int {
	if s.Leg <= 0 {
		return 0
	}
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed%(2*s.Leg) < s.Leg {
		return 1
	}
	return -1
}
