package laserhop

import (
	"fmt"
	"hash/fnv"
	"math"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick         uint64
	Mode         string
	Level        int
	Score        int
	StaminaMilli int // stamina in thousandths, avoids float comparisons
	Last         int
	Cursor       int
	Reason       string
	Board        string
	ClockMs      int64
	Notice       bool
	State        GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.layout.tooSmall:
		state = StatePausedSmall
	case g.state.Over:
		state = StateGameOver
	case g.state.Pending:
		state = StateLevelCleared
	}

	return Snapshot{
		Tick:         g.tick,
		Mode:         string(g.mode),
		Level:        g.state.Level,
		Score:        g.state.Score,
		StaminaMilli: int(math.Round(g.state.Stamina * 1000)),
		Last:         g.state.Last,
		Cursor:       g.cursor,
		Reason:       string(g.state.Reason),
		Board:        g.state.Board.String(),
		ClockMs:      g.clock.Milliseconds(),
		Notice:       g.showNotice,
		State:        state,
	}
}

// Hash returns an FNV-1a hash of the snapshot.
func (snap Snapshot) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d;%s;%d;%d;%d;%d;%d;%s;%d;%v;%s;",
		snap.Tick, snap.Mode, snap.Level, snap.Score, snap.StaminaMilli,
		snap.Last, snap.Cursor, snap.Reason, snap.ClockMs, snap.Notice, snap.State)
	fmt.Fprint(h, snap.Board)
	return h.Sum64()
}
