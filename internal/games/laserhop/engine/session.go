package engine

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultTickInterval is the stamina decay cadence.
const DefaultTickInterval = 100 * time.Millisecond

var (
	// ErrSessionClosed is returned by operations on a closed Session.
	ErrSessionClosed = errors.New("engine: session closed")
	// ErrNotCleared is returned by Next when the level is not cleared yet.
	ErrNotCleared = errors.New("engine: level not cleared")
)

// Event is published to subscribers after every transition that did
// something. Ignored outcomes are not published.
type Event struct {
	Generation uint64  `json:"generation"`
	Outcome    Outcome `json:"outcome"`
	State      State   `json:"state"`
}

// Session owns one run at a time and drives its stamina decay from a
// Scheduler. It is safe for concurrent use.
//
// Every fresh state (start, restart, next level) opens a new generation with
// its own decay task. The previous task is stopped first, and a tick that
// still arrives from an older generation is dropped.
type Session struct {
	mu         sync.Mutex
	engine     *Engine
	state      State
	generation uint64
	stopDecay  func()
	subs       []*Subscription
	closed     bool

	sched    Scheduler
	interval time.Duration
	logger   *log.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithScheduler replaces the real-time scheduler.
func WithScheduler(s Scheduler) SessionOption {
	return func(sess *Session) {
		if s != nil {
			sess.sched = s
		}
	}
}

// WithInterval sets the decay cadence.
func WithInterval(d time.Duration) SessionOption {
	return func(sess *Session) {
		if d > 0 {
			sess.interval = d
		}
	}
}

// WithLogger attaches a logger for generation and outcome tracing.
func WithLogger(l *log.Logger) SessionOption {
	return func(sess *Session) {
		if l != nil {
			sess.logger = l
		}
	}
}

// NewSession starts a run at level 1 and begins decaying stamina.
func NewSession(e *Engine, opts ...SessionOption) *Session {
	s := &Session{
		engine:   e,
		sched:    TimeScheduler{},
		interval: DefaultTickInterval,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.begin(e.NewGame(), continueOutcome)
	return s
}

// Engine returns the engine the session plays with.
func (s *Session) Engine() *Engine {
	return s.engine
}

// State returns a copy of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Generation returns the current generation number.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Tap applies a move to the cell at index.
func (s *Session) Tap(index int) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ignoredOutcome, ErrSessionClosed
	}

	next, out, err := s.engine.ApplyMove(s.state, index)
	if err != nil {
		return out, err
	}
	s.apply(next, out)
	return out, nil
}

// TouchLaser reports contact with the sweeping line.
func (s *Session) TouchLaser() (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ignoredOutcome, ErrSessionClosed
	}

	next, out := s.engine.TouchLaser(s.state)
	s.apply(next, out)
	return out, nil
}

// Restart throws the current run away and starts again at level 1.
func (s *Session) Restart() error {
	return s.StartAt(1)
}

// StartAt starts a new run at level with zero score.
func (s *Session) StartAt(level int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.begin(s.engine.StartAt(level), continueOutcome)
	return nil
}

// Next moves on after a cleared level.
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if !s.state.Pending {
		return ErrNotCleared
	}
	s.begin(s.engine.NextLevel(s.state), continueOutcome)
	return nil
}

// Subscribe registers a listener for events. The buffer size bounds how far
// a slow reader may fall behind before the oldest events are dropped.
func (s *Session) Subscribe(buffer int) *Subscription {
	sub := newSubscription(buffer)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		sub.Close()
		return sub
	}
	s.subs = append(s.subs, sub)
	return sub
}

// Close stops the decay task and ends all subscriptions.
// Safe to call multiple times.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.cancelDecay()
	for _, sub := range s.subs {
		sub.Close()
	}
	s.subs = nil
	s.logger.Debug("session closed", "generation", s.generation)
}

// begin installs a fresh state as a new generation. Caller holds mu.
func (s *Session) begin(st State, out Outcome) {
	s.cancelDecay()
	s.generation++
	s.state = st
	gen := s.generation

	s.stopDecay = s.sched.Every(s.interval, func() {
		s.decay(gen)
	})
	s.logger.Debug("generation started", "generation", gen, "level", st.Level, "score", st.Score)
	s.publish(out)
}

// apply stores a transition result. Caller holds mu.
func (s *Session) apply(next State, out Outcome) {
	if out.Kind == OutcomeIgnored {
		return
	}
	s.state = next
	if !next.Active() {
		s.cancelDecay()
	}
	s.logger.Debug("outcome", "generation", s.generation, "outcome", out.String(), "score", next.Score)
	s.publish(out)
}

func (s *Session) decay(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.generation {
		return
	}
	next, out := s.engine.Tick(s.state)
	s.apply(next, out)
}

// cancelDecay stops the running decay task. Caller holds mu.
func (s *Session) cancelDecay() {
	if s.stopDecay == nil {
		return
	}
	s.stopDecay()
	s.stopDecay = nil
	s.logger.Debug("decay cancelled", "generation", s.generation)
}

// publish fans an event out to subscribers. Caller holds mu.
func (s *Session) publish(out Outcome) {
	evt := Event{Generation: s.generation, Outcome: out, State: s.state}
	live := s.subs[:0]
	for _, sub := range s.subs {
		select {
		case <-sub.Done():
			continue
		default:
		}
		sub.send(evt)
		live = append(live, sub)
	}
	s.subs = live
}

// Subscription receives session events on a buffered channel.
type Subscription struct {
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
}

func newSubscription(buffer int) *Subscription {
	if buffer < 1 {
		buffer = 64
	}
	return &Subscription{
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
	}
}

// send delivers evt without blocking. When the buffer is full the oldest
// event is dropped to make room.
func (sub *Subscription) send(evt Event) {
	select {
	case sub.events <- evt:
		return
	default:
	}

	select {
	case <-sub.events:
	default:
	}
	select {
	case sub.events <- evt:
	default:
	}
}

// Events returns the channel events arrive on. It is never closed; select on
// Done to learn when the subscription ends.
func (sub *Subscription) Events() <-chan Event {
	return sub.events
}

// Done returns a channel closed when the subscription ends.
func (sub *Subscription) Done() <-chan struct{} {
	return sub.done
}

// Close ends the subscription. Safe to call multiple times.
func (sub *Subscription) Close() {
	sub.doneOnce.Do(func() {
		close(sub.done)
	})
}
