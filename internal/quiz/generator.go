// Package quiz builds balanced, shuffled quiz sessions from a question bank
// and scores a player's responses.
package quiz

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/voltquest/internal/gameerr"
	"github.com/abhisek/voltquest/internal/shuffle"
)

// Generator creates quiz sessions. It holds no state beyond its random
// source, clock and ID factory.
type Generator struct {
	engine *shuffle.Engine
	now    func() time.Time
	newID  func() string
}

// GeneratorOption customises a Generator.
type GeneratorOption func(*Generator)

// WithClock overrides the session timestamp source.
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) { g.now = now }
}

// WithIDFunc overrides the session ID factory.
func WithIDFunc(f func() string) GeneratorOption {
	return func(g *Generator) { g.newID = f }
}

// NewGenerator creates a Generator drawing randomness from engine.
func NewGenerator(engine *shuffle.Engine, opts ...GeneratorOption) *Generator {
	g := &Generator{
		engine: engine,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// categoryGroup is one partition of the bank.
type categoryGroup struct {
	name      string
	questions []Question
	quota     int
}

// Create builds a session of exactly size questions balanced across the
// bank's categories, then shuffles question order and each question's
// answers. The bank is not modified.
func (g *Generator) Create(bank []Question, size int) (*Session, error) {
	const op = "quiz.Create"

	if size < 1 {
		return nil, gameerr.InvalidArgument(op, "session size %d must be at least 1", size)
	}
	if size > len(bank) {
		return nil, gameerr.InvalidArgument(op, "session size %d exceeds bank size %d", size, len(bank))
	}

	groups, err := partition(bank)
	if err != nil {
		return nil, err
	}
	assignQuotas(groups, size)

	selected := make([]Question, 0, size)
	for _, grp := range groups {
		picked, err := shuffle.RandomSubset(g.engine, grp.questions, grp.quota)
		if err != nil {
			return nil, err
		}
		selected = append(selected, picked...)
	}
	if len(selected) != size {
		return nil, gameerr.InvariantViolation(op, "selected %d questions, want %d", len(selected), size)
	}

	// Hide the category blocks from the player.
	shuffle.Shuffle(g.engine, selected)

	for i := range selected {
		q, err := g.shuffleAnswers(selected[i])
		if err != nil {
			return nil, err
		}
		selected[i] = q
	}

	return &Session{
		id:        g.newID(),
		questions: selected,
		createdAt: g.now(),
	}, nil
}

// shuffleAnswers reorders q's answers and re-locates the correct one by text.
func (g *Generator) shuffleAnswers(q Question) (Question, error) {
	correct := q.CorrectAnswer()
	q = q.clone()
	shuffle.Shuffle(g.engine, q.Answers)

	idx, matches := -1, 0
	for i, a := range q.Answers {
		if a == correct {
			if idx < 0 {
				idx = i
			}
			matches++
		}
	}
	if matches != 1 {
		return Question{}, gameerr.InvariantViolation("quiz.Create",
			"question %q: correct answer %q found %d times after shuffle", q.ID, correct, matches)
	}
	q.CorrectAnswerIndex = idx
	return q, nil
}

// ValidateBank reports the first question Create would reject: a missing
// category, a broken answer index, or a correct answer whose text appears
// more than once.
func ValidateBank(bank []Question) error {
	if _, err := partition(bank); err != nil {
		return err
	}
	for _, q := range bank {
		correct, matches := q.CorrectAnswer(), 0
		for _, a := range q.Answers {
			if a == correct {
				matches++
			}
		}
		if matches != 1 {
			return gameerr.InvariantViolation("quiz.ValidateBank",
				"question %q: correct answer %q appears %d times", q.ID, correct, matches)
		}
	}
	return nil
}

// partition groups the bank by category in first-seen order, validating
// every question on the way.
func partition(bank []Question) ([]*categoryGroup, error) {
	var groups []*categoryGroup
	byName := make(map[string]*categoryGroup)
	for _, q := range bank {
		if q.Category == "" {
			return nil, gameerr.InvalidArgument("quiz.Create", "question %q has no category", q.ID)
		}
		if err := q.Validate(); err != nil {
			return nil, err
		}
		grp, ok := byName[q.Category]
		if !ok {
			grp = &categoryGroup{name: q.Category}
			byName[q.Category] = grp
			groups = append(groups, grp)
		}
		grp.questions = append(grp.questions, q)
	}
	return groups, nil
}

// assignQuotas gives each category floor(size/n) questions, plus one for the
// first size%n categories. A category that cannot cover its quota hands the
// shortfall on to the following categories with spare questions, wrapping
// around, so the total always equals size (size <= bank length).
func assignQuotas(groups []*categoryGroup, size int) {
	n := len(groups)
	per, rem := size/n, size%n

	shortfall := 0
	for i, grp := range groups {
		want := per
		if i < rem {
			want++
		}
		if want > len(grp.questions) {
			shortfall += want - len(grp.questions)
			want = len(grp.questions)
		}
		grp.quota = want
	}

	for shortfall > 0 {
		progressed := false
		for _, grp := range groups {
			if shortfall == 0 {
				break
			}
			if grp.quota < len(grp.questions) {
				grp.quota++
				shortfall--
				progressed = true
			}
		}
		if !progressed {
			return
		}
	}
}
