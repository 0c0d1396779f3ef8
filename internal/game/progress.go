package game

import (
	"fmt"

	"github.com/abhisek/voltquest/internal/fsm"
	"github.com/abhisek/voltquest/internal/gameerr"
)

// Progress is the persistable part of a game.
type Progress struct {
	State           fsm.StateID   `json:"state"`
	Completed       []fsm.StateID `json:"completed"`
	BestQuizPercent float64       `json:"best_quiz_percent"`
	QuizAttempts    int           `json:"quiz_attempts"`
}

// Progress captures the current position and achievements. Completed follows
// play order.
func (g *Game) Progress() Progress {
	p := Progress{
		State:           g.Current(),
		BestQuizPercent: g.bestPercent,
		QuizAttempts:    g.quizAttempts,
	}
	for _, id := range g.machine.States() {
		if g.completed[id] {
			p.Completed = append(p.Completed, id)
		}
	}
	return p
}

// Resume restores p into an unstarted game and enters its saved state.
// An empty state resumes at the menu.
func (g *Game) Resume(p Progress) error {
	const op = "game.Resume"
	if _, ok := g.machine.Current(); ok {
		return fmt.Errorf("resume: %w", ErrWrongState)
	}
	known := make(map[fsm.StateID]bool)
	for _, id := range g.machine.States() {
		known[id] = true
	}
	for _, id := range p.Completed {
		if !known[id] {
			return gameerr.InvalidArgument(op, "unknown completed state %q", id)
		}
	}
	if p.BestQuizPercent < 0 || p.BestQuizPercent > 100 || p.QuizAttempts < 0 {
		return gameerr.InvalidArgument(op, "quiz stats out of range")
	}

	target := p.State
	if target == "" {
		target = StateMenu
	}
	if !known[target] {
		return &fsm.UnknownStateError{State: target}
	}

	for _, id := range p.Completed {
		g.completed[id] = true
	}
	g.bestPercent = p.BestQuizPercent
	g.quizAttempts = p.QuizAttempts
	return g.machine.ChangeState(target)
}
