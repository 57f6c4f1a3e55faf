package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := r.insert(ctx, "session_events",
		[]string{"run_id", "session_id", "mode", "action", "detail"},
		[]any{data.RunID, data.SessionID, data.Mode, data.Action, data.Detail},
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error) {
	sel := builder().
		Select("id", "sequence", "timestamp", "run_id", "session_id", "mode", "action", "detail").
		From(entsql.Table("session_events"))
	sel = applyOpts(sel, opts)

	var out []SessionEventRecord
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var (
			e  SessionEventRecord
			ts int64
		)
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.RunID, &e.SessionID,
			&e.Mode, &e.Action, &e.Detail); err != nil {
			return err
		}
		e.Timestamp = fromNanos(ts)
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	return out, nil
}
