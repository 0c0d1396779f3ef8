// Package fsm is a synchronous, single-threaded finite-state machine with
// lifecycle hooks, a directed transition graph, bounded history and an
// observer list per event name.
//
// Transitions are strict: once a state is active, ChangeState only follows
// edges declared with AddTransition and fails with ErrIllegalTransition
// otherwise. The very first ChangeState may enter any registered state.
//
// All methods must be called from one goroutine, typically the host's main
// loop. Hooks and listeners must not call ChangeState; doing so fails with
// ErrReentrantTransition.
package fsm

import (
	"log/slog"
	"slices"
	"time"

	"github.com/abhisek/voltquest/internal/gameerr"
)

// StateID uniquely identifies a state.
type StateID string

// State is a named node with optional lifecycle hooks. Nil hooks are no-ops.
type State struct {
	ID       StateID
	OnEnter  func()
	OnUpdate func(dt time.Duration)
	OnExit   func()
}

// Machine owns its registry, transition graph and history exclusively.
type Machine struct {
	states   map[StateID]*State
	order    []StateID
	edges    map[StateID]map[StateID]struct{}
	current  *State
	previous *State
	history  *ring

	listeners    map[EventName][]subscription
	nextListener ListenerID

	logger *slog.Logger
	now    func() time.Time

	// transitioning guards against re-entrant ChangeState calls.
	transitioning bool
}

// Option configures a Machine.
type Option func(*Machine)

// WithHistoryCap bounds the history buffer. Values below 1 are ignored.
func WithHistoryCap(n int) Option {
	return func(m *Machine) {
		if n >= 1 {
			m.history = newRing(n)
		}
	}
}

// WithLogger sets the logger used for rejected transitions and listener panics.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithClock overrides the time source for history and events.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// New creates an empty, unstarted Machine.
func New(opts ...Option) *Machine {
	m := &Machine{
		states:    make(map[StateID]*State),
		edges:     make(map[StateID]map[StateID]struct{}),
		history:   newRing(DefaultHistoryCap),
		listeners: make(map[EventName][]subscription),
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register adds states. Registering an id twice fails with ErrDuplicateState
// and leaves the original untouched; no state from a failing call is added.
func (m *Machine) Register(states ...State) error {
	seen := make(map[StateID]bool, len(states))
	for _, s := range states {
		if s.ID == "" {
			return gameerr.InvalidArgument("fsm.Register", "state id must not be empty")
		}
		if _, ok := m.states[s.ID]; ok || seen[s.ID] {
			return &DuplicateStateError{State: s.ID}
		}
		seen[s.ID] = true
	}
	for _, s := range states {
		s := s
		m.states[s.ID] = &s
		m.order = append(m.order, s.ID)
	}
	return nil
}

// AddTransition declares directed edges from -> each of to. Both ends must be
// registered. Edges are not implicitly bidirectional.
func (m *Machine) AddTransition(from StateID, to ...StateID) error {
	if _, ok := m.states[from]; !ok {
		return &UnknownStateError{State: from}
	}
	for _, t := range to {
		if _, ok := m.states[t]; !ok {
			return &UnknownStateError{State: t}
		}
	}
	set := m.edges[from]
	if set == nil {
		set = make(map[StateID]struct{}, len(to))
		m.edges[from] = set
	}
	for _, t := range to {
		set[t] = struct{}{}
	}
	return nil
}

// HasTransition reports whether the graph has an edge from -> to.
func (m *Machine) HasTransition(from, to StateID) bool {
	_, ok := m.edges[from][to]
	return ok
}

// CanChangeTo reports whether ChangeState(target) would be accepted now.
func (m *Machine) CanChangeTo(target StateID) bool {
	if _, ok := m.states[target]; !ok || m.transitioning {
		return false
	}
	return m.current == nil || m.HasTransition(m.current.ID, target)
}

// Transitions lists the destinations reachable in one step from from, in
// registration order.
func (m *Machine) Transitions(from StateID) []StateID {
	var out []StateID
	for _, id := range m.order {
		if m.HasTransition(from, id) {
			out = append(out, id)
		}
	}
	return out
}

// States lists registered ids in registration order.
func (m *Machine) States() []StateID {
	return slices.Clone(m.order)
}

// Current returns the active state, or false while unstarted.
func (m *Machine) Current() (StateID, bool) {
	if m.current == nil {
		return "", false
	}
	return m.current.ID, true
}

// Previous returns the state active before the last transition.
func (m *Machine) Previous() (StateID, bool) {
	if m.previous == nil {
		return "", false
	}
	return m.previous.ID, true
}

// ChangeState moves to target. On success it runs, in order: the current
// state's OnExit, the bookkeeping (previous, current, history), the target's
// OnEnter, then the stateExit, stateEnter and stateChange events. stateExit
// is skipped for the first transition since nothing is exited.
func (m *Machine) ChangeState(target StateID) error {
	if m.transitioning {
		return &ReentrantTransitionError{Target: target}
	}
	next, ok := m.states[target]
	if !ok {
		return &UnknownStateError{State: target}
	}
	var from StateID
	if m.current != nil {
		from = m.current.ID
		if !m.HasTransition(from, target) {
			m.logger.Warn("fsm rejected transition", "from", string(from), "to", string(target))
			return &IllegalTransitionError{From: from, To: target}
		}
	}

	m.transitioning = true
	defer func() { m.transitioning = false }()

	if m.current != nil && m.current.OnExit != nil {
		m.current.OnExit()
	}

	at := m.now()
	m.previous = m.current
	m.current = next
	m.history.push(HistoryEntry{State: target, From: from, At: at})

	if next.OnEnter != nil {
		next.OnEnter()
	}

	if m.previous != nil {
		m.Emit(Event{Name: EventStateExit, From: from, To: target, At: at})
	}
	m.Emit(Event{Name: EventStateEnter, From: from, To: target, At: at})
	m.Emit(Event{Name: EventStateChange, From: from, To: target, At: at})
	return nil
}

// Update forwards a tick to the active state's OnUpdate. No-op while unstarted.
func (m *Machine) Update(dt time.Duration) {
	if m.current == nil || m.current.OnUpdate == nil {
		return
	}
	m.current.OnUpdate(dt)
}

// History returns recorded transitions, oldest first. Its length never
// exceeds HistoryCap.
func (m *Machine) History() []HistoryEntry {
	return m.history.entries()
}

// HistoryCap returns the history buffer capacity.
func (m *Machine) HistoryCap() int {
	return len(m.history.buf)
}
