package web

import (
	"time"

	"github.com/vovakirdan/laserhop/internal/games/laserhop/engine"
)

// Client message types.
const (
	MsgTap     = "tap"
	MsgLaser   = "laser"
	MsgRestart = "restart"
	MsgNext    = "next"
)

// Server event names.
const (
	EventState   = "state"
	EventOutcome = "outcome"
	EventError   = "error"
)

// ClientMessage is a command sent by the browser.
type ClientMessage struct {
	Type  string `json:"type"`
	Index *int   `json:"index,omitempty"`
}

// Message is an event sent to the browser.
type Message struct {
	Event     string          `json:"event"`
	SessionID string          `json:"session_id"`
	State     *StateView      `json:"state,omitempty"`
	Outcome   *engine.Outcome `json:"outcome,omitempty"`
	Notice    *engine.Notice  `json:"notice,omitempty"`
	Sweep     *SweepView      `json:"sweep,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// StateView is the JSON shape of a run. Cells are sent by palette name.
type StateView struct {
	Board      []string         `json:"board"`
	Cols       int              `json:"cols"`
	Rows       int              `json:"rows"`
	Score      int              `json:"score"`
	Level      int              `json:"level"`
	Endless    bool             `json:"endless"`
	Stamina    float64          `json:"stamina"`
	MaxStamina float64          `json:"max_stamina"`
	Last       int              `json:"last"`
	Over       bool             `json:"over"`
	Reason     engine.EndReason `json:"reason,omitempty"`
	Pending    bool             `json:"pending"`
	Generation uint64           `json:"generation"`
}

// SweepView describes the laser so the browser can animate it.
type SweepView struct {
	FromRow float64 `json:"from_row"`
	ToRow   float64 `json:"to_row"`
	LegMs   int64   `json:"leg_ms"`
}

func newStateView(e *engine.Engine, st engine.State, gen uint64) *StateView {
	board := make([]string, engine.Cells)
	for i, c := range st.Board {
		board[i] = c.String()
	}
	return &StateView{
		Board:      board,
		Cols:       engine.Cols,
		Rows:       engine.Rows,
		Score:      st.Score,
		Level:      st.Level,
		Endless:    e.IsEndless(st.Level),
		Stamina:    st.Stamina,
		MaxStamina: e.RulesFor(st).MaxStamina,
		Last:       st.Last,
		Over:       st.Over,
		Reason:     st.Reason,
		Pending:    st.Pending,
		Generation: gen,
	}
}

func newSweepView(s engine.Sweep) *SweepView {
	return &SweepView{FromRow: s.From, ToRow: s.To, LegMs: s.Leg.Milliseconds()}
}

// eventMessage converts a session event. Plain continues are state updates;
// anything the player has to react to is an outcome with its notice.
func eventMessage(sessionID string, e *engine.Engine, evt engine.Event) Message {
	msg := Message{
		Event:     EventState,
		SessionID: sessionID,
		State:     newStateView(e, evt.State, evt.Generation),
	}
	if evt.Outcome.Kind == engine.OutcomeContinue {
		return msg
	}

	out := evt.Outcome
	msg.Event = EventOutcome
	msg.Outcome = &out
	if n, ok := engine.NoticeFor(out, evt.State); ok {
		msg.Notice = &n
	}
	return msg
}

func errorMessage(sessionID string, err error) Message {
	return Message{Event: EventError, SessionID: sessionID, Error: err.Error()}
}

// LevelView is a campaign level as listed by the HTTP API.
type LevelView struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Targets int      `json:"targets"`
	Rows    []string `json:"rows"`
}

// ScoreView is one stored run as listed by the HTTP API. Rank is the
// position in the listing.
type ScoreView struct {
	Rank      int       `json:"rank"`
	Mode      string    `json:"mode"`
	Player    string    `json:"player"`
	Score     int       `json:"score"`
	Level     int       `json:"level"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
