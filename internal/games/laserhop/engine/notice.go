package engine

import "fmt"

// Notice is the prompt a presentation layer shows for an outcome.
type Notice struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Action string `json:"action"` // label of the button that dismisses it
}

// NoticeFor returns the prompt for o given the state after the transition.
// The boolean is false for outcomes that need no prompt.
func NoticeFor(o Outcome, s State) (Notice, bool) {
	switch o.Kind {
	case OutcomeRejectedTooFar:
		return Notice{Title: "Too far", Body: "You must move one square at a time.", Action: "OK"}, true
	case OutcomeLevelClear:
		return Notice{Title: "Level Clear", Body: fmt.Sprintf("You passed level %d!", s.Level), Action: "Next Level"}, true
	case OutcomeEndlessAdvance:
		return Notice{Title: "Endless Mode", Body: "You completed all levels!", Action: "Continue"}, true
	case OutcomeGameOver:
		switch o.Reason {
		case ReasonStamina:
			return Notice{Title: "Out of Stamina", Body: "You stayed in the air too long.", Action: "Restart"}, true
		case ReasonLaser:
			return Notice{Title: "Game Over", Body: "You touched the laser!", Action: "Restart"}, true
		default:
			return Notice{Title: "Game Over", Body: fmt.Sprintf("You stepped on red\nScore: %d", s.Score), Action: "Restart"}, true
		}
	}
	return Notice{}, false
}
