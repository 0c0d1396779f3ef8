package store

import (
	"context"
	"time"

	"github.com/abhisek/voltquest/internal/game"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SnapshotVersion is the current SnapshotData layout.
const SnapshotVersion = 1

// SnapshotData captures the player's progress at a point in time.
type SnapshotData struct {
	Version  int           `json:"version"`
	Progress game.Progress `json:"progress"`
}

// Snapshot represents a point-in-time capture of progress.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages progress snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error

	// Count returns the number of stored snapshots.
	Count(ctx context.Context) (int, error)
}

// TransitionEventData is one successful state change.
type TransitionEventData struct {
	From string
	To   string
	At   time.Time // zero means now
}

// TransitionRecord is a stored transition.
type TransitionRecord struct {
	Sequence  int64
	Timestamp time.Time
	From      string
	To        string
}

// QuizEventData is one scored quiz attempt.
type QuizEventData struct {
	SessionID string
	Correct   int
	Total     int
	Percent   float64
	Passed    bool
	At        time.Time // zero means now
}

// QuizStats aggregates every recorded quiz attempt.
type QuizStats struct {
	Attempts       int
	Passed         int
	BestPercent    float64
	AveragePercent float64
	LastAttempt    time.Time
}

// EventRepo provides append and query access to game events.
type EventRepo interface {
	AppendTransition(ctx context.Context, data TransitionEventData) error
	AppendQuizResult(ctx context.Context, data QuizEventData) error

	// RecentTransitions returns transitions newest first.
	RecentTransitions(ctx context.Context, opts QueryOpts) ([]TransitionRecord, error)

	QuizStats(ctx context.Context) (*QuizStats, error)

	// LastSequence returns the highest sequence handed out, 0 if none.
	LastSequence(ctx context.Context) (int64, error)
}
