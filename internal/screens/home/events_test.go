package home

import (
	"context"

	"github.com/abhisek/voltquest/internal/store"
)

type noopEvents struct{}

func (noopEvents) AppendTransition(context.Context, store.TransitionEventData) error { return nil }
func (noopEvents) AppendQuizResult(context.Context, store.QuizEventData) error       { return nil }
func (noopEvents) LastSequence(context.Context) (int64, error)                       { return 0, nil }
func (noopEvents) QuizStats(context.Context) (*store.QuizStats, error) {
	return &store.QuizStats{}, nil
}
func (noopEvents) RecentTransitions(context.Context, store.QueryOpts) ([]store.TransitionRecord, error) {
	return nil, nil
}
