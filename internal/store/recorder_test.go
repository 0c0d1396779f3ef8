package store

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/abhisek/voltquest/internal/consumption"
	"github.com/abhisek/voltquest/internal/game"
	"github.com/abhisek/voltquest/internal/quiz"
	"github.com/abhisek/voltquest/internal/shuffle"
)

func newRecordedGame(t *testing.T, rec *Recorder) *game.Game {
	t.Helper()
	calc, err := consumption.NewCalculator(consumption.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	bank, err := quiz.DefaultBank()
	if err != nil {
		t.Fatal(err)
	}
	g, err := game.New(game.Options{
		Calculator:   calc,
		Generator:    quiz.NewGenerator(shuffle.NewSeeded(3)),
		Bank:         bank.Questions,
		SessionSize:  4,
		OnQuizScored: rec.QuizScored,
	})
	if err != nil {
		t.Fatal(err)
	}
	rec.Attach(g)
	return g
}

func TestRecorderPersistsTransitionsAndProgress(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	rec := NewRecorder(s.EventRepo(), s.SnapshotRepo(), nil)
	g := newRecordedGame(t, rec)

	if err := g.Start(); err != nil {
		t.Fatal(err)
	}
	if err := g.Play(); err != nil {
		t.Fatal(err)
	}
	if err := g.SetHours("Air Conditioner", 2); err != nil {
		t.Fatal(err)
	}
	if _, done, err := g.TryComplete(); err != nil || !done {
		t.Fatalf("TryComplete: done=%v err=%v", done, err)
	}

	recs, err := s.EventRepo().RecentTransitions(ctx, QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("transitions = %+v, want 3", recs)
	}
	if recs[0].From != string(game.StateLiving) || recs[0].To != string(game.StateKitchen) {
		t.Errorf("newest = %+v", recs[0])
	}

	p, ok, err := LatestProgress(ctx, s.SnapshotRepo())
	if err != nil || !ok {
		t.Fatalf("LatestProgress: ok=%v err=%v", ok, err)
	}
	if p.State != game.StateKitchen || len(p.Completed) != 1 || p.Completed[0] != game.StateLiving {
		t.Errorf("progress = %+v", p)
	}

	snap, _ := s.SnapshotRepo().Latest(ctx)
	if snap.Sequence != recs[0].Sequence {
		t.Errorf("snapshot sequence = %d, want %d", snap.Sequence, recs[0].Sequence)
	}

	// A resumed game picks up where the snapshot left off.
	rec2 := NewRecorder(s.EventRepo(), s.SnapshotRepo(), nil)
	g2 := newRecordedGame(t, rec2)
	if err := g2.Resume(p); err != nil {
		t.Fatal(err)
	}
	if g2.Current() != game.StateKitchen || !g2.Completed(game.StateLiving) {
		t.Errorf("resumed at %q", g2.Current())
	}
}

func TestRecorderQuizScored(t *testing.T) {
	s := openTestStore(t)
	rec := NewRecorder(s.EventRepo(), s.SnapshotRepo(), nil)

	rec.QuizScored(&quiz.Result{SessionID: "abc", Correct: 3, Total: 4, Percent: 75, Passed: true})

	stats, err := s.EventRepo().QuizStats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Attempts != 1 || stats.Passed != 1 || stats.BestPercent != 75 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestRecorderDetach(t *testing.T) {
	s := openTestStore(t)
	rec := NewRecorder(s.EventRepo(), s.SnapshotRepo(), nil)
	g := newRecordedGame(t, rec)
	rec.Detach()

	if err := g.Start(); err != nil {
		t.Fatal(err)
	}
	recs, _ := s.EventRepo().RecentTransitions(context.Background(), QueryOpts{})
	if len(recs) != 0 {
		t.Errorf("recorded %d transitions after Detach", len(recs))
	}
}

type failingEvents struct{ EventRepo }

func (failingEvents) AppendTransition(context.Context, TransitionEventData) error {
	return errors.New("disk full")
}

func (failingEvents) LastSequence(context.Context) (int64, error) { return 0, nil }

func TestRecorderFailureDoesNotStopPlay(t *testing.T) {
	s := openTestStore(t)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	rec := NewRecorder(failingEvents{s.EventRepo()}, s.SnapshotRepo(), logger)
	g := newRecordedGame(t, rec)

	if err := g.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if g.Current() != game.StateMenu {
		t.Errorf("current = %q", g.Current())
	}
	if !strings.Contains(buf.String(), "record transition failed") {
		t.Errorf("failure not logged: %q", buf.String())
	}
	if n, _ := s.SnapshotRepo().Count(context.Background()); n != 1 {
		t.Errorf("snapshots = %d, want 1", n)
	}
}
