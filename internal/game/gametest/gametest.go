// Package gametest builds deterministic games for tests of packages that
// sit on top of internal/game.
package gametest

import (
	"testing"

	"github.com/abhisek/voltquest/internal/consumption"
	"github.com/abhisek/voltquest/internal/game"
	"github.com/abhisek/voltquest/internal/quiz"
	"github.com/abhisek/voltquest/internal/shuffle"
)

// New returns an unstarted game using the default levels, the embedded bank
// and a seeded shuffle engine. Zero-valued required options are filled in.
func New(tb testing.TB, opts game.Options) *game.Game {
	tb.Helper()
	if opts.Calculator == nil {
		calc, err := consumption.NewCalculator(consumption.DefaultConfig())
		if err != nil {
			tb.Fatalf("NewCalculator: %v", err)
		}
		opts.Calculator = calc
	}
	if opts.Generator == nil {
		opts.Generator = quiz.NewGenerator(shuffle.NewSeeded(1))
	}
	if opts.Bank == nil {
		bank, err := quiz.DefaultBank()
		if err != nil {
			tb.Fatalf("DefaultBank: %v", err)
		}
		opts.Bank = bank.Questions
	}
	if opts.SessionSize == 0 {
		opts.SessionSize = 4
	}
	g, err := game.New(opts)
	if err != nil {
		tb.Fatalf("game.New: %v", err)
	}
	return g
}

// Started is New followed by Start, leaving the game at the menu.
func Started(tb testing.TB, opts game.Options) *game.Game {
	tb.Helper()
	g := New(tb, opts)
	if err := g.Start(); err != nil {
		tb.Fatalf("Start: %v", err)
	}
	return g
}

// SolveRoom brings the active room's bill within its target without
// completing it.
func SolveRoom(tb testing.TB, g *game.Game) {
	tb.Helper()
	var err error
	switch g.Current() {
	case game.StateLiving, game.StateBedroom:
		err = g.SetHours("Air Conditioner", 2)
	case game.StateKitchen:
		err = firstErr(g.Toggle("Water Dispenser"), g.SetHours("Rice Cooker", 2))
	case game.StateBathroom:
		err = firstErr(g.SetHours("Water Heater", 0.5), g.Toggle("Exhaust Fan"), g.Toggle("Hair Dryer"))
	default:
		tb.Fatalf("not a room: %q", g.Current())
	}
	if err != nil {
		tb.Fatal(err)
	}
}

// ToQuiz plays from the menu through every room.
func ToQuiz(tb testing.TB, g *game.Game) {
	tb.Helper()
	if err := g.Play(); err != nil {
		tb.Fatalf("Play: %v", err)
	}
	for g.IsLevel(g.Current()) {
		SolveRoom(tb, g)
		if _, ok, err := g.TryComplete(); err != nil || !ok {
			tb.Fatalf("TryComplete in %q: ok=%v err=%v", g.Current(), ok, err)
		}
	}
	if g.Current() != game.StateQuiz {
		tb.Fatalf("current = %q, want quiz", g.Current())
	}
}

// CorrectAnswers returns a response set that answers every question right.
func CorrectAnswers(s *quiz.Session) []int {
	out := make([]int, s.Len())
	for i, q := range s.Questions() {
		out[i] = q.CorrectAnswerIndex
	}
	return out
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
