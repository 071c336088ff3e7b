package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/laserhop/internal/core"
)

// gameKeys maps key strings to in-game actions. A key may carry a second
// action: Enter and n also confirm the notice on screen.
var gameKeys = map[string][]core.Action{
	"up":    {core.ActionUp},
	"k":     {core.ActionUp},
	"w":     {core.ActionUp},
	"down":  {core.ActionDown},
	"j":     {core.ActionDown},
	"s":     {core.ActionDown},
	"left":  {core.ActionLeft},
	"h":     {core.ActionLeft},
	"a":     {core.ActionLeft},
	"right": {core.ActionRight},
	"l":     {core.ActionRight},
	"d":     {core.ActionRight},
	"y":     {core.ActionUpLeft},
	"u":     {core.ActionUpRight},
	"b":     {core.ActionDownLeft},
	"n":     {core.ActionDownRight, core.ActionNext},
	" ":     {core.ActionTap},
	"enter": {core.ActionTap, core.ActionNext},
	"r":     {core.ActionRestart},
	"esc":   {core.ActionBack},
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to its primary action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	if actions, ok := gameKeys[key]; ok {
		return actions[0], false
	}
	return core.ActionNone, false
}

// MapKeyToFrame sets every action bound to the key on the frame.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	if _, isQuit := km.MapKey(msg); isQuit {
		return true
	}
	for _, a := range gameKeys[msg.String()] {
		frame.Set(a)
	}
	return false
}

// MapMouseToFrame records a tap when the left button is released.
func (km *KeyMapper) MapMouseToFrame(msg tea.MouseMsg, frame *core.InputFrame) bool {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return false
	}
	frame.AddTap(msg.X, msg.Y)
	return true
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
