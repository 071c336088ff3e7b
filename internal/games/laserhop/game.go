// Package laserhop adapts the Laser Hop engine to the frame-driven game platform: it
// turns fixed-step frames into stamina ticks, runs the laser clock, maps
// keyboard and mouse input to taps and draws the board.
package laserhop

import (
	"time"

	"github.com/vovakirdan/laserhop/internal/core"
	"github.com/vovakirdan/laserhop/internal/games/laserhop/engine"
	"github.com/vovakirdan/laserhop/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// Registry IDs of the two modes.
const (
	IDCampaign = "laserhop"
	IDEndless  = "laserhop_endless"
)

// tooFarNoticeDuration is how long the "too far" notice stays up.
const tooFarNoticeDuration = 1500 * time.Millisecond

// Game implements registry.Game for Laser Hop.
type Game struct {
	mode     Mode
	settings Settings
	eng      *engine.Engine
	state    engine.State

	// Clocks
	tick     uint64
	frame    time.Duration // simulated time per Step
	interval time.Duration // stamina decay cadence
	decayAcc time.Duration // time since the last decay tick, reset per level
	clock    time.Duration // laser clock, never reset
	sweep    engine.Sweep

	// Presentation
	cursor      int
	outcome     engine.Outcome
	notice      engine.Notice
	showNotice  bool
	noticeTicks int

	screenW int
	screenH int
	layout  layout

	startLevel  int       // consumed by the next Reset
	preset      *Settings // resolved by the caller, nil loads them on Reset
	settingsErr error     // why Reset fell back to the stock settings
}

// New creates a new campaign mode game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new endless mode game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

func init() {
	registry.Register(IDCampaign, func() registry.Game {
		return New()
	})
	registry.Register(IDEndless, func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return IDEndless
	}
	return IDCampaign
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Laser Hop (Endless)"
	}
	return "Laser Hop"
}

// Description returns a one-line summary for listings.
func (g *Game) Description() string {
	if g.mode == ModeEndless {
		return "Random boards forever, the laser never stops"
	}
	return "Clear the green tiles one hop at a time, dodge red and the laser"
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	settings, err := g.resolveSettings()
	g.settingsErr = err
	g.settings = settings
	g.eng = settings.NewEngine(cfg.Seed)

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	g.frame = time.Second / time.Duration(tickRate)
	g.interval = settings.Config.TickInterval()
	g.tick = 0
	g.clock = 0

	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.layout = computeLayout(cfg.ScreenW, cfg.ScreenH)

	level := g.firstLevel()
	if g.mode == ModeCampaign && g.startLevel > 0 && g.startLevel <= settings.CampaignLength() {
		level = g.startLevel
	}
	g.startLevel = 0
	g.begin(g.eng.StartAt(level))
}

func (g *Game) resolveSettings() (Settings, error) {
	if g.preset != nil {
		return *g.preset, nil
	}
	settings, err := LoadSettings()
	if err != nil {
		return DefaultSettings(), err
	}
	return settings, nil
}

// SelectLevel makes the next Reset start at the given campaign level.
func (g *Game) SelectLevel(level int) {
	g.startLevel = level
}

// UseSettings makes every Reset play s instead of loading the settings
// selected on the command line.
func (g *Game) UseSettings(s Settings) {
	g.preset = &s
}

// SettingsErr reports why the last Reset fell back to the stock settings.
func (g *Game) SettingsErr() error {
	return g.settingsErr
}

// Resize recomputes the layout without touching the run.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	g.layout = computeLayout(w, h)
}

// firstLevel is where a fresh run of this mode starts.
func (g *Game) firstLevel() int {
	if g.mode == ModeEndless {
		return g.settings.CampaignLength() + 1
	}
	return 1
}

// begin installs a fresh level state and restarts the decay accumulator.
func (g *Game) begin(st engine.State) {
	g.state = st
	g.decayAcc = 0
	g.sweep = g.settings.Sweep(st.Level, st.Score)
	g.outcome = engine.Outcome{}
	g.showNotice = false
	g.cursor = engine.Index(engine.Rows-1, engine.Cols/2)
	if st.HasLast() {
		g.cursor = st.Last
	}
}

func (g *Game) restart() {
	g.begin(g.eng.StartAt(g.firstLevel()))
}

func (g *Game) advance() {
	g.begin(g.eng.NextLevel(g.state))
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++
	g.clock += g.frame

	// Restart is available at any time
	if input.Has(core.ActionRestart) {
		g.restart()
		return core.StepResult{State: g.State()}
	}

	if g.layout.tooSmall {
		return core.StepResult{State: g.State()}
	}

	switch {
	case g.state.Over:
		// The notice button restarts
		if input.Has(core.ActionNext) {
			g.restart()
		}
		return core.StepResult{State: g.State()}
	case g.state.Pending:
		if input.Has(core.ActionNext) {
			g.advance()
		}
		return core.StepResult{State: g.State()}
	}

	if g.moveCursor(input) {
		g.dismissTooFar()
	}

	for _, t := range input.Taps {
		index, row, ok := g.layout.cellAt(t.X, t.Y)
		if !ok {
			continue
		}
		g.dismissTooFar()
		g.cursor = index
		g.tap(index, row)
		if !g.state.Active() {
			break
		}
	}

	if input.Has(core.ActionTap) && g.state.Active() {
		g.dismissTooFar()
		row, _ := engine.RowCol(g.cursor)
		g.tap(g.cursor, float64(row)+0.5)
	}

	g.decay()
	g.updateNotice()

	return core.StepResult{State: g.State()}
}

// tap lands on index. A point under the laser hits the laser instead.
func (g *Game) tap(index int, row float64) {
	if g.sweep.Covers(row, g.clock) {
		st, out := g.eng.TouchLaser(g.state)
		g.apply(st, out)
		return
	}
	st, out, err := g.eng.ApplyMove(g.state, index)
	if err != nil {
		return
	}
	g.apply(st, out)
}

// decay turns elapsed frame time into stamina ticks.
func (g *Game) decay() {
	if !g.state.Active() || g.interval <= 0 {
		g.decayAcc = 0
		return
	}
	g.decayAcc += g.frame
	for g.decayAcc >= g.interval && g.state.Active() {
		g.decayAcc -= g.interval
		st, out := g.eng.Tick(g.state)
		g.apply(st, out)
	}
}

func (g *Game) apply(st engine.State, out engine.Outcome) {
	if out.Kind == engine.OutcomeIgnored {
		return
	}
	g.state = st
	if out.Kind == engine.OutcomeContinue {
		return
	}
	g.outcome = out
	if n, ok := engine.NoticeFor(out, st); ok {
		g.notice = n
		g.showNotice = true
		g.noticeTicks = int(tooFarNoticeDuration / g.frame)
	}
}

// dismissTooFar hides the "too far" notice; other notices wait for input.
func (g *Game) dismissTooFar() {
	if g.showNotice && g.outcome.Kind == engine.OutcomeRejectedTooFar {
		g.showNotice = false
	}
}

func (g *Game) updateNotice() {
	if !g.showNotice || g.outcome.Kind != engine.OutcomeRejectedTooFar {
		return
	}
	g.noticeTicks--
	if g.noticeTicks <= 0 {
		g.showNotice = false
	}
}

// cursorMoves maps actions to row/column deltas, in a fixed order so that
// replays are deterministic.
var cursorMoves = []struct {
	action core.Action
	dRow   int
	dCol   int
}{
	{core.ActionUp, -1, 0},
	{core.ActionDown, 1, 0},
	{core.ActionLeft, 0, -1},
	{core.ActionRight, 0, 1},
	{core.ActionUpLeft, -1, -1},
	{core.ActionUpRight, -1, 1},
	{core.ActionDownLeft, 1, -1},
	{core.ActionDownRight, 1, 1},
}

// moveCursor applies cursor actions and reports whether any arrived.
func (g *Game) moveCursor(input core.InputFrame) bool {
	moved := false
	row, col := engine.RowCol(g.cursor)
	for _, m := range cursorMoves {
		if !input.Has(m.action) {
			continue
		}
		row = core.Clamp(row+m.dRow, 0, engine.Rows-1)
		col = core.Clamp(col+m.dCol, 0, engine.Cols-1)
		moved = true
	}
	g.cursor = engine.Index(row, col)
	return moved
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.state.Score,
		Level:     g.state.Level,
		GameOver:  g.state.Over,
		EndReason: string(g.state.Reason),
	}
}

// EngineState returns the underlying engine state.
func (g *Game) EngineState() engine.State {
	return g.state
}

// Outcome returns the last non-continue outcome of the current level.
func (g *Game) Outcome() engine.Outcome {
	return g.outcome
}

// IsEndlessLevel reports whether the current level is past the campaign.
func (g *Game) IsEndlessLevel() bool {
	return g.eng != nil && g.eng.IsEndless(g.state.Level)
}
