package core

// RuntimeConfig is what a game learns about its host when it starts: the
// terminal size to lay the board out in, the frame rate and the RNG seed.
type RuntimeConfig struct {
	ScreenW  int   // terminal columns
	ScreenH  int   // terminal rows
	TickRate int   // frames per second
	Seed     int64 // 0 lets the platform pick a time based seed
}

// DefaultConfig is an 80x24 terminal at 60 frames per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// WithSize returns a copy of c sized to a w by h terminal. Non-positive
// dimensions keep the current value.
func (c RuntimeConfig) WithSize(w, h int) RuntimeConfig {
	if w > 0 {
		c.ScreenW = w
	}
	if h > 0 {
		c.ScreenH = h
	}
	return c
}

// GameState is the slice of a run the platform needs: the HUD numbers and
// whether the run is over, for saving it to the scoreboard.
type GameState struct {
	Score     int    // current score
	Level     int    // 1-based
	GameOver  bool   // the run has ended
	EndReason string // empty while playing
}

// StepResult is returned by Game.Step after every frame.
type StepResult struct {
	State GameState
}
