package core

// Color is a palette slot for a screen cell. The TUI maps each slot to an
// ANSI 256-colour style, so games never deal with escape codes.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue // neutral tiles
	ColorWhite
	ColorBrightRed    // hazards, the laser, game over
	ColorBrightGreen  // targets, level clear
	ColorBrightYellow // score, last visited marker
	ColorBrightWhite  // cursor
	ColorGray         // cleared tiles
	ColorDarkGray
)
