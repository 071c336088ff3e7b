// Package engine implements the Laser Hop rules: board setup, move validation,
// stamina decay, laser contact and level transitions.
//
// Transitions are pure: each takes a State value and returns the next State
// together with an Outcome. Nothing here touches the terminal or a clock;
// Session adds timing on top.
package engine

import (
	"errors"
	"math/rand"
	"time"
)

// Default rule constants.
const (
	DefaultMaxStamina   = 5.0
	DefaultStaminaDecay = 0.1
)

// staminaEpsilon absorbs float drift from repeated decay so that 50 ticks
// of 0.1 empty a bar of 5.0.
const staminaEpsilon = 1e-9

// ErrIndexOutOfRange is returned for taps outside the board.
var ErrIndexOutOfRange = errors.New("engine: cell index out of range")

// Rules holds the tunable numbers of the game.
type Rules struct {
	MaxStamina   float64
	StaminaDecay float64 // stamina lost per tick
}

// DefaultRules returns the stock rules.
func DefaultRules() Rules {
	return Rules{
		MaxStamina:   DefaultMaxStamina,
		StaminaDecay: DefaultStaminaDecay,
	}
}

// State is one snapshot of a run.
type State struct {
	Board   Board     `json:"board"`
	Score   int       `json:"score"`
	Level   int       `json:"level"`
	Stamina float64   `json:"stamina"`
	Last    int       `json:"last"`    // last visited index, NoCell if none
	Over    bool      `json:"over"`    // run ended
	Reason  EndReason `json:"reason"`  // why it ended
	Pending bool      `json:"pending"` // level cleared, waiting for NextLevel
}

// HasLast reports whether the player has landed on a cell this level.
func (s State) HasLast() bool {
	return s.Last != NoCell
}

// Active reports whether the state accepts moves and decays.
func (s State) Active() bool {
	return !s.Over && !s.Pending
}

// Engine applies the rules to states. It owns the campaign layouts and the
// random source for endless boards. An Engine is not safe for concurrent use.
type Engine struct {
	rules    Rules
	scale    func(s State) Rules
	campaign []Board
	rng      *rand.Rand
}

// Option configures an Engine.
type Option func(*Engine)

// WithRules overrides the stock rules.
func WithRules(r Rules) Option {
	return func(e *Engine) {
		e.rules = r
	}
}

// WithScaling lets the rules vary over a run, for example to speed up decay
// in deeper endless levels. fn receives the state the rules apply to.
func WithScaling(fn func(s State) Rules) Option {
	return func(e *Engine) {
		e.scale = fn
	}
}

// WithLevels replaces the stock campaign with the given levels.
// An empty slice is ignored.
func WithLevels(levels []Level) Option {
	return func(e *Engine) {
		if len(levels) == 0 {
			return
		}
		e.campaign = make([]Board, len(levels))
		for i, lvl := range levels {
			e.campaign[i] = lvl.Board
		}
	}
}

// WithRand sets the random source used for endless boards.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithSeed seeds the random source; 0 leaves the time-based default.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		if seed != 0 {
			e.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// New creates an engine with the stock rules and campaign.
func New(opts ...Option) *Engine {
	e := &Engine{
		rules: DefaultRules(),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	WithLevels(builtinLevels)(e)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rules returns the base rules.
func (e *Engine) Rules() Rules {
	return e.rules
}

// RulesFor returns the rules in effect for s.
func (e *Engine) RulesFor(s State) Rules {
	if e.scale == nil {
		return e.rules
	}
	return e.scale(s)
}

// CampaignLength returns the number of hand-authored levels.
func (e *Engine) CampaignLength() int {
	return len(e.campaign)
}

// IsEndless reports whether level is past the campaign.
func (e *Engine) IsEndless(level int) bool {
	return level > len(e.campaign)
}

// InitBoard returns the starting board for level. Campaign levels are copied
// from their template; later levels are random.
func (e *Engine) InitBoard(level int) Board {
	if level < 1 {
		level = 1
	}
	if !e.IsEndless(level) {
		return e.campaign[level-1]
	}
	return RandomBoard(e.rng)
}

// NewGame returns a fresh run at level 1.
func (e *Engine) NewGame() State {
	return e.StartAt(1)
}

// StartAt returns a fresh run with zero score starting at level.
func (e *Engine) StartAt(level int) State {
	if level < 1 {
		level = 1
	}
	s := State{
		Board: e.InitBoard(level),
		Level: level,
		Last:  NoCell,
	}
	s.Stamina = e.RulesFor(s).MaxStamina
	return s
}

// NextLevel moves to the following level, carrying the score over.
func (e *Engine) NextLevel(s State) State {
	next := e.StartAt(s.Level + 1)
	next.Score = s.Score
	next.Stamina = e.RulesFor(next).MaxStamina
	return next
}

// ApplyMove lands the player on index.
//
// A tap more than one cell away from the last visited cell is rejected but
// still refills stamina. An accepted tap refills stamina and then scores the
// cell: green clears for +1, gray costs 1, red ends the run.
func (e *Engine) ApplyMove(s State, index int) (State, Outcome, error) {
	if !InBounds(index) {
		return s, ignoredOutcome, ErrIndexOutOfRange
	}
	if !s.Active() {
		return s, ignoredOutcome, nil
	}

	full := e.RulesFor(s).MaxStamina
	if s.HasLast() && Distance(s.Last, index) > 1 {
		s.Stamina = full
		return s, Outcome{Kind: OutcomeRejectedTooFar}, nil
	}

	s.Last = index
	s.Stamina = full

	switch s.Board[index] {
	case CellTarget:
		s.Board[index] = CellCleared
		s.Score++
		if s.Board.Targets() == 0 {
			s.Pending = true
			if s.Level < e.CampaignLength() {
				return s, Outcome{Kind: OutcomeLevelClear}, nil
			}
			return s, Outcome{Kind: OutcomeEndlessAdvance}, nil
		}
	case CellCleared:
		s.Score--
	case CellHazard:
		return e.end(s, ReasonHazard)
	}

	return s, continueOutcome, nil
}

// Tick drains one step of stamina. An empty bar ends the run.
func (e *Engine) Tick(s State) (State, Outcome) {
	if !s.Active() {
		return s, ignoredOutcome
	}

	s.Stamina -= e.RulesFor(s).StaminaDecay
	if s.Stamina <= staminaEpsilon {
		s.Stamina = 0
		s, out, _ := e.end(s, ReasonStamina)
		return s, out
	}
	return s, continueOutcome
}

// TouchLaser ends the run because the sweeping line was touched.
func (e *Engine) TouchLaser(s State) (State, Outcome) {
	if !s.Active() {
		return s, ignoredOutcome
	}
	s, out, _ := e.end(s, ReasonLaser)
	return s, out
}

func (e *Engine) end(s State, reason EndReason) (State, Outcome, error) {
	s.Over = true
	s.Reason = reason
	return s, gameOver(reason), nil
}
