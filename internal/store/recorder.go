package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/abhisek/voltquest/internal/fsm"
	"github.com/abhisek/voltquest/internal/game"
	"github.com/abhisek/voltquest/internal/quiz"
)

// DefaultSnapshotKeep is how many snapshots a Recorder retains.
const DefaultSnapshotKeep = 10

// Recorder persists game activity as it happens. It observes the state
// machine, so the game itself never touches the database. Persistence
// failures are logged and swallowed; losing a record never stops play.
type Recorder struct {
	events    EventRepo
	snapshots SnapshotRepo
	logger    *slog.Logger
	keep      int

	g        *game.Game
	listener fsm.ListenerID
}

// NewRecorder creates a Recorder. A nil logger uses slog.Default().
func NewRecorder(events EventRepo, snapshots SnapshotRepo, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{events: events, snapshots: snapshots, logger: logger, keep: DefaultSnapshotKeep}
}

// Attach subscribes to g's state changes. Each change is appended to the
// event log and followed by a progress snapshot.
func (r *Recorder) Attach(g *game.Game) {
	r.g = g
	r.listener = g.Machine().On(fsm.EventStateChange, r.onStateChange)
}

// Detach stops observing the attached game.
func (r *Recorder) Detach() {
	if r.g != nil {
		r.g.Machine().Off(fsm.EventStateChange, r.listener)
		r.g = nil
	}
}

func (r *Recorder) onStateChange(ev fsm.Event) {
	ctx := context.Background()
	err := r.events.AppendTransition(ctx, TransitionEventData{
		From: string(ev.From),
		To:   string(ev.To),
		At:   ev.At,
	})
	if err != nil {
		r.logger.Warn("record transition failed", "from", string(ev.From), "to", string(ev.To), "error", err)
	}
	r.snapshot(ctx, ev.At)
}

// QuizScored records a quiz attempt. It matches game.Options.OnQuizScored.
func (r *Recorder) QuizScored(res *quiz.Result) {
	err := r.events.AppendQuizResult(context.Background(), QuizEventData{
		SessionID: res.SessionID,
		Correct:   res.Correct,
		Total:     res.Total,
		Percent:   res.Percent,
		Passed:    res.Passed,
	})
	if err != nil {
		r.logger.Warn("record quiz result failed", "session", res.SessionID, "error", err)
	}
}

func (r *Recorder) snapshot(ctx context.Context, at time.Time) {
	if r.g == nil {
		return
	}
	if at.IsZero() {
		at = time.Now()
	}
	seq, err := r.events.LastSequence(ctx)
	if err != nil {
		r.logger.Warn("read sequence failed", "error", err)
	}
	snap := &Snapshot{
		Sequence:  seq,
		Timestamp: at,
		Data:      SnapshotData{Version: SnapshotVersion, Progress: r.g.Progress()},
	}
	if err := r.snapshots.Save(ctx, snap); err != nil {
		r.logger.Warn("save snapshot failed", "error", err)
		return
	}
	if err := r.snapshots.Prune(ctx, r.keep); err != nil {
		r.logger.Warn("prune snapshots failed", "error", err)
	}
}

// LatestProgress loads the newest snapshot's progress. ok is false when no
// snapshot exists or its layout is unknown.
func LatestProgress(ctx context.Context, snapshots SnapshotRepo) (p game.Progress, ok bool, err error) {
	snap, err := snapshots.Latest(ctx)
	if err != nil || snap == nil {
		return game.Progress{}, false, err
	}
	if snap.Data.Version != SnapshotVersion {
		return game.Progress{}, false, nil
	}
	return snap.Data.Progress, true, nil
}
