package engine

import "fmt"

// OutcomeKind classifies the result of a transition.
type OutcomeKind int

const (
	OutcomeContinue       OutcomeKind = iota // play goes on
	OutcomeIgnored                           // input arrived while the run was over or paused
	OutcomeRejectedTooFar                    // tap was more than one cell away
	OutcomeLevelClear                        // last green cleared on a campaign level
	OutcomeEndlessAdvance                    // last green cleared on the final or an endless level
	OutcomeGameOver                          // run ended, see Outcome.Reason
)

var outcomeNames = map[OutcomeKind]string{
	OutcomeContinue:       "continue",
	OutcomeIgnored:        "ignored",
	OutcomeRejectedTooFar: "rejected_too_far",
	OutcomeLevelClear:     "level_clear",
	OutcomeEndlessAdvance: "endless_advance",
	OutcomeGameOver:       "game_over",
}

// String returns the snake_case name of the kind.
func (k OutcomeKind) String() string {
	if name, ok := outcomeNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the kind by name for JSON transports.
func (k OutcomeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *OutcomeKind) UnmarshalText(text []byte) error {
	for kind, name := range outcomeNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("engine: unknown outcome %q", text)
}

// EndReason names what ended a run.
type EndReason string

const (
	ReasonNone    EndReason = ""
	ReasonHazard  EndReason = "hazard"
	ReasonStamina EndReason = "stamina"
	ReasonLaser   EndReason = "laser"
)

// Outcome is the signal a transition hands to the presentation layer.
type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	Reason EndReason   `json:"reason,omitempty"`
}

var (
	continueOutcome = Outcome{Kind: OutcomeContinue}
	ignoredOutcome  = Outcome{Kind: OutcomeIgnored}
)

func gameOver(reason EndReason) Outcome {
	return Outcome{Kind: OutcomeGameOver, Reason: reason}
}

// Terminal reports whether the outcome ended the run.
func (o Outcome) Terminal() bool {
	return o.Kind == OutcomeGameOver
}

// Advances reports whether the outcome asks for the next level.
func (o Outcome) Advances() bool {
	return o.Kind == OutcomeLevelClear || o.Kind == OutcomeEndlessAdvance
}

// String formats the outcome for logs.
func (o Outcome) String() string {
	if o.Reason != ReasonNone {
		return fmt.Sprintf("%s(%s)", o.Kind, o.Reason)
	}
	return o.Kind.String()
}
