// Package game wires the four room levels and the closing quiz onto the
// state machine. Level logic feeds the consumption calculator and the quiz
// generator; their results decide when the game asks the machine to move on.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/abhisek/voltquest/internal/consumption"
	"github.com/abhisek/voltquest/internal/fsm"
	"github.com/abhisek/voltquest/internal/gameerr"
	"github.com/abhisek/voltquest/internal/quiz"
)

// ErrWrongState is returned when an action does not apply to the active state.
var ErrWrongState = errors.New("action not available in current state")

// Options configures a Game. Calculator, Generator and Bank are required.
type Options struct {
	Calculator  *consumption.Calculator
	Generator   *quiz.Generator
	Bank        []quiz.Question
	Levels      []Level // defaults to DefaultLevels
	SessionSize int     // defaults to 8
	PassPercent float64 // defaults to quiz.DefaultPassPercent
	HistoryCap  int
	Logger      *slog.Logger
	Clock       func() time.Time

	// OnQuizScored is called after every scored quiz attempt.
	OnQuizScored func(*quiz.Result)
}

// Game is the host side of the flow. Like the machine it drives, it must be
// used from a single goroutine.
type Game struct {
	machine *fsm.Machine
	calc    *consumption.Calculator
	gen     *quiz.Generator
	bank    []quiz.Question
	logger  *slog.Logger

	levels      []Level
	live        map[fsm.StateID]*Level
	sessionSize int
	passPercent float64
	onScored    func(*quiz.Result)

	completed    map[fsm.StateID]bool
	session      *quiz.Session
	lastResult   *quiz.Result
	bestPercent  float64
	quizAttempts int
}

// New builds the state graph and returns an unstarted Game.
func New(opts Options) (*Game, error) {
	const op = "game.New"
	if opts.Calculator == nil || opts.Generator == nil {
		return nil, gameerr.InvalidArgument(op, "calculator and generator are required")
	}
	if len(opts.Levels) == 0 {
		opts.Levels = DefaultLevels()
	}
	if opts.SessionSize == 0 {
		opts.SessionSize = 8
	}
	if opts.SessionSize < 0 || opts.SessionSize > len(opts.Bank) {
		return nil, gameerr.InvalidArgument(op, "session size %d does not fit a bank of %d", opts.SessionSize, len(opts.Bank))
	}
	if err := quiz.ValidateBank(opts.Bank); err != nil {
		return nil, fmt.Errorf("question bank: %w", err)
	}
	if opts.PassPercent == 0 {
		opts.PassPercent = quiz.DefaultPassPercent
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	fsmOpts := []fsm.Option{fsm.WithLogger(opts.Logger), fsm.WithHistoryCap(opts.HistoryCap)}
	if opts.Clock != nil {
		fsmOpts = append(fsmOpts, fsm.WithClock(opts.Clock))
	}

	g := &Game{
		machine:     fsm.New(fsmOpts...),
		calc:        opts.Calculator,
		gen:         opts.Generator,
		bank:        slices.Clone(opts.Bank),
		logger:      opts.Logger,
		levels:      make([]Level, len(opts.Levels)),
		live:        make(map[fsm.StateID]*Level, len(opts.Levels)),
		sessionSize: opts.SessionSize,
		passPercent: opts.PassPercent,
		onScored:    opts.OnQuizScored,
		completed:   make(map[fsm.StateID]bool),
	}
	for i, l := range opts.Levels {
		if l.TargetBill.IsNegative() {
			return nil, gameerr.InvalidArgument(op, "level %q has a negative target", l.State)
		}
		g.levels[i] = l.clone()
	}
	if err := g.build(); err != nil {
		return nil, fmt.Errorf("build state graph: %w", err)
	}
	return g, nil
}

func (g *Game) build() error {
	states := []fsm.State{{ID: StateMenu}}
	for _, l := range g.levels {
		id := l.State
		states = append(states, fsm.State{
			ID:      id,
			OnEnter: func() { g.resetLevel(id) },
		})
	}
	states = append(states,
		fsm.State{ID: StateQuiz, OnEnter: func() { g.session = nil }},
		fsm.State{ID: StateFinished},
	)
	if err := g.machine.Register(states...); err != nil {
		return err
	}

	if err := g.machine.AddTransition(StateMenu, g.levels[0].State); err != nil {
		return err
	}
	for i, l := range g.levels {
		next := StateQuiz
		if i+1 < len(g.levels) {
			next = g.levels[i+1].State
		}
		if err := g.machine.AddTransition(l.State, next, StateMenu); err != nil {
			return err
		}
	}
	if err := g.machine.AddTransition(StateQuiz, StateQuiz, StateFinished, StateMenu); err != nil {
		return err
	}
	return g.machine.AddTransition(StateFinished, StateMenu)
}

// resetLevel restores a room's appliances each time it is entered.
func (g *Game) resetLevel(id fsm.StateID) {
	for _, l := range g.levels {
		if l.State == id {
			fresh := l.clone()
			g.live[id] = &fresh
			return
		}
	}
}

// Machine exposes the underlying state machine for observers.
func (g *Game) Machine() *fsm.Machine { return g.machine }

// Calculator returns the calculator used for room reports.
func (g *Game) Calculator() *consumption.Calculator { return g.calc }

// Current returns the active state, or "" before Start.
func (g *Game) Current() fsm.StateID {
	id, _ := g.machine.Current()
	return id
}

// Validate checks that every state is reachable from the menu.
func (g *Game) Validate() (*fsm.ValidationReport, error) {
	return g.machine.Validate(StateMenu)
}

// Start enters the menu. It is a no-op once the machine is running.
func (g *Game) Start() error {
	if _, ok := g.machine.Current(); ok {
		return nil
	}
	return g.machine.ChangeState(StateMenu)
}

// Play leaves the menu for the first room.
func (g *Game) Play() error {
	if g.Current() != StateMenu {
		return g.wrongState("play")
	}
	return g.machine.ChangeState(g.levels[0].State)
}

// BackToMenu abandons the current level or quiz.
func (g *Game) BackToMenu() error {
	return g.machine.ChangeState(StateMenu)
}

// Update forwards a frame tick to the active state.
func (g *Game) Update(dt time.Duration) { g.machine.Update(dt) }

// Levels returns the configured rooms with their starting appliances.
func (g *Game) Levels() []Level {
	out := make([]Level, len(g.levels))
	for i, l := range g.levels {
		out[i] = l.clone()
	}
	return out
}

// IsLevel reports whether id is a room state.
func (g *Game) IsLevel(id fsm.StateID) bool {
	return slices.ContainsFunc(g.levels, func(l Level) bool { return l.State == id })
}

// CurrentLevel returns a copy of the active room with its current settings.
func (g *Game) CurrentLevel() (Level, error) {
	l, err := g.activeLevel("level")
	if err != nil {
		return Level{}, err
	}
	return l.clone(), nil
}

func (g *Game) activeLevel(action string) (*Level, error) {
	l, ok := g.live[g.Current()]
	if !ok || !g.IsLevel(g.Current()) {
		return nil, g.wrongState(action)
	}
	return l, nil
}

func (g *Game) appliance(action, name string) (*consumption.Appliance, error) {
	l, err := g.activeLevel(action)
	if err != nil {
		return nil, err
	}
	for i := range l.Appliances {
		if l.Appliances[i].Name == name {
			return &l.Appliances[i], nil
		}
	}
	return nil, gameerr.InvalidArgument("game."+action, "no appliance %q in %s", name, l.Title)
}

// Toggle flips an appliance on or off. Essential appliances cannot be
// switched off.
func (g *Game) Toggle(name string) error {
	a, err := g.appliance("toggle", name)
	if err != nil {
		return err
	}
	if a.IsOn && a.Essential {
		return gameerr.InvalidArgument("game.toggle", "%q is essential and must stay on", name)
	}
	a.IsOn = !a.IsOn
	return nil
}

// SetHours changes an appliance's daily usage.
func (g *Game) SetHours(name string, hours float64) error {
	a, err := g.appliance("set-hours", name)
	if err != nil {
		return err
	}
	candidate := *a
	candidate.HoursPerDay = hours
	if err := candidate.Validate(); err != nil {
		return err
	}
	a.HoursPerDay = hours
	return nil
}

// Report recomputes the active room's consumption against its target.
func (g *Game) Report() (*consumption.Report, error) {
	l, err := g.activeLevel("report")
	if err != nil {
		return nil, err
	}
	return g.calc.Report(l.Appliances, l.TargetBill)
}

// Suggestions lists savings hints for the active room.
func (g *Game) Suggestions() ([]consumption.Suggestion, error) {
	l, err := g.activeLevel("suggestions")
	if err != nil {
		return nil, err
	}
	return g.calc.Suggestions(l.Appliances)
}

// TryComplete checks the room against its target and, when the bill is
// within it, marks the room complete and moves to the next state. The report
// is returned either way.
func (g *Game) TryComplete() (*consumption.Report, bool, error) {
	from := g.Current()
	r, err := g.Report()
	if err != nil {
		return nil, false, err
	}
	if !r.WithinTarget {
		return r, false, nil
	}
	next := g.machine.Transitions(from)
	// The forward edge is the one that is not the menu.
	target := StateQuiz
	for _, id := range next {
		if id != StateMenu {
			target = id
			break
		}
	}
	// Marked before the transition so stateChange observers see it.
	was := g.completed[from]
	g.completed[from] = true
	if err := g.machine.ChangeState(target); err != nil {
		g.completed[from] = was
		return r, false, err
	}
	g.logger.Debug("level complete", "level", string(from), "bill", r.TotalMonthlyBill.String())
	return r, true, nil
}

// StartQuiz generates a fresh session. Calling it again discards the
// previous unanswered session.
func (g *Game) StartQuiz() (*quiz.Session, error) {
	if g.Current() != StateQuiz {
		return nil, g.wrongState("start quiz")
	}
	s, err := g.gen.Create(g.bank, g.sessionSize)
	if err != nil {
		return nil, err
	}
	g.session = s
	return s, nil
}

// Session returns the quiz session in progress, if any.
func (g *Game) Session() *quiz.Session { return g.session }

// SubmitQuiz scores the current session. A pass moves to finished; a fail
// re-enters the quiz state so the player can retry with a new session.
func (g *Game) SubmitQuiz(responses []int) (*quiz.Result, error) {
	if g.Current() != StateQuiz || g.session == nil {
		return nil, g.wrongState("submit quiz")
	}
	res, err := quiz.Score(g.session, responses, g.passPercent)
	if err != nil {
		return nil, err
	}
	g.quizAttempts++
	g.lastResult = res
	if res.Percent > g.bestPercent {
		g.bestPercent = res.Percent
	}
	if g.onScored != nil {
		g.onScored(res)
	}

	next := StateQuiz
	if res.Passed {
		next = StateFinished
		g.completed[StateQuiz] = true
	}
	if err := g.machine.ChangeState(next); err != nil {
		return res, err
	}
	return res, nil
}

// LastResult returns the most recent quiz result.
func (g *Game) LastResult() *quiz.Result { return g.lastResult }

// Completed reports whether a room or the quiz has been cleared.
func (g *Game) Completed(id fsm.StateID) bool { return g.completed[id] }

// PassPercent returns the quiz pass threshold.
func (g *Game) PassPercent() float64 { return g.passPercent }

func (g *Game) wrongState(action string) error {
	cur := g.Current()
	if cur == "" {
		cur = "unstarted"
	}
	return fmt.Errorf("%s in %s: %w", action, cur, ErrWrongState)
}
