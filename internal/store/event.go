package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// sequenceCounter manages the global monotonic sequence number shared across
// all event tables. Per-table auto-increment ids can't order a transition
// against a quiz attempt; the shared counter can, and snapshots record the
// sequence they were taken at.
//
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo with raw SQL.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) timestamp(at time.Time) int64 {
	if at.IsZero() {
		at = time.Now()
	}
	return at.UnixNano()
}

// where builds the shared sequence/time filter for opts.
func (o QueryOpts) where() (string, []any) {
	clause := " WHERE 1=1"
	var args []any
	if o.After > 0 {
		clause += " AND sequence > ?"
		args = append(args, o.After)
	}
	if o.Before > 0 {
		clause += " AND sequence < ?"
		args = append(args, o.Before)
	}
	if !o.From.IsZero() {
		clause += " AND timestamp >= ?"
		args = append(args, o.From.UnixNano())
	}
	if !o.To.IsZero() {
		clause += " AND timestamp <= ?"
		args = append(args, o.To.UnixNano())
	}
	return clause, args
}

func (r *eventRepo) LastSequence(ctx context.Context) (int64, error) {
	var seq int64
	err := r.db.QueryRowContext(ctx, `SELECT next_val - 1 FROM global_sequence WHERE id = 1`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("last sequence: %w", err)
	}
	return seq, nil
}
