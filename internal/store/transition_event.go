package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendTransition(ctx context.Context, data TransitionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO transition_events (sequence, timestamp, from_state, to_state) VALUES (?, ?, ?, ?)`,
		seqNum, r.timestamp(data.At), data.From, data.To,
	)
	if err != nil {
		return fmt.Errorf("save transition event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentTransitions(ctx context.Context, opts QueryOpts) ([]TransitionRecord, error) {
	where, args := opts.where()
	query := `SELECT sequence, timestamp, from_state, to_state FROM transition_events` +
		where + ` ORDER BY sequence DESC`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transitions: %w", err)
	}
	defer rows.Close()

	var records []TransitionRecord
	for rows.Next() {
		var rec TransitionRecord
		var ts int64
		if err := rows.Scan(&rec.Sequence, &ts, &rec.From, &rec.To); err != nil {
			return nil, fmt.Errorf("scan transition: %w", err)
		}
		rec.Timestamp = time.Unix(0, ts).UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}
