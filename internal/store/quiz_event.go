package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

func (r *eventRepo) AppendQuizResult(ctx context.Context, data QuizEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO quiz_events (sequence, timestamp, session_id, correct, total, percent, passed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		seqNum, r.timestamp(data.At), data.SessionID, data.Correct, data.Total, data.Percent, data.Passed,
	)
	if err != nil {
		return fmt.Errorf("save quiz event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuizStats(ctx context.Context) (*QuizStats, error) {
	var (
		stats  QuizStats
		best   sql.NullFloat64
		avg    sql.NullFloat64
		passed sql.NullInt64
		last   sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), SUM(passed), MAX(percent), AVG(percent), MAX(timestamp) FROM quiz_events`,
	).Scan(&stats.Attempts, &passed, &best, &avg, &last)
	if err != nil {
		return nil, fmt.Errorf("query quiz stats: %w", err)
	}
	stats.Passed = int(passed.Int64)
	stats.BestPercent = best.Float64
	stats.AveragePercent = avg.Float64
	if last.Valid {
		stats.LastAttempt = time.Unix(0, last.Int64).UTC()
	}
	return &stats, nil
}
