package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // W, K, Up arrow - move cursor up
	ActionDown             // S, J, Down arrow - move cursor down
	ActionLeft             // A, H, Left arrow - move cursor left
	ActionRight            // D, L, Right arrow - move cursor right
	ActionUpLeft           // Y - diagonal
	ActionUpRight          // U - diagonal
	ActionDownLeft         // B - diagonal
	ActionDownRight        // N - diagonal
	ActionTap              // Space, Enter - tap the cell under the cursor
	ActionNext             // Enter, N at a level-clear prompt
	ActionBack             // Escape - go back to menu
	ActionRestart          // R key - restart the run
	ActionQuit             // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUpLeft:
		return "UpLeft"
	case ActionUpRight:
		return "UpRight"
	case ActionDownLeft:
		return "DownLeft"
	case ActionDownRight:
		return "DownRight"
	case ActionTap:
		return "Tap"
	case ActionNext:
		return "Next"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Tap is a pointer release at a screen position, in character cells.
type Tap struct {
	X, Y int
}

// InputFrame represents the input collected during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Taps holds pointer releases in the order they arrived.
	Taps []Tap
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// AddTap records a pointer release at (x, y).
func (f *InputFrame) AddTap(x, y int) {
	f.Taps = append(f.Taps, Tap{X: x, Y: y})
}

// Clear resets all actions and taps for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Taps = f.Taps[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Taps = append([]Tap(nil), f.Taps...)
	return clone
}
