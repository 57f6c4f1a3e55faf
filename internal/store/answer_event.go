package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var answerColumns = []string{
	"id", "sequence", "timestamp", "run_id", "session_id",
	"mode", "word", "input", "correct", "accuracy",
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	var accuracy any
	if data.Accuracy != nil {
		accuracy = *data.Accuracy
	}
	err := r.insert(ctx, "answer_events",
		[]string{"run_id", "session_id", "mode", "word", "input", "correct", "accuracy"},
		[]any{data.RunID, data.SessionID, data.Mode, data.Word, data.Input, data.Correct, accuracy},
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEventRecord, error) {
	sel := applyOpts(builder().Select(answerColumns...).From(entsql.Table("answer_events")), opts)

	var out []AnswerEventRecord
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var (
			e        AnswerEventRecord
			ts       int64
			accuracy sql.NullFloat64
		)
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.RunID, &e.SessionID,
			&e.Mode, &e.Word, &e.Input, &e.Correct, &accuracy); err != nil {
			return err
		}
		e.Timestamp = fromNanos(ts)
		if accuracy.Valid {
			v := accuracy.Float64
			e.Accuracy = &v
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	return out, nil
}

func (r *eventRepo) MostMissed(ctx context.Context, limit int) ([]WordStat, error) {
	sel := builder().Select(
		"word",
		entsql.As(entsql.Count("*"), "attempts"),
		entsql.As(entsql.Sum("1 - `correct`"), "misses"),
		entsql.As(entsql.Max("timestamp"), "last_seen"),
	).
		From(entsql.Table("answer_events")).
		GroupBy("word").
		Having(entsql.GT("misses", 0)).
		OrderBy(entsql.Desc("misses"), entsql.Desc("last_seen"))
	if limit > 0 {
		sel.Limit(limit)
	}

	var out []WordStat
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var (
			s  WordStat
			ts int64
		)
		if err := rows.Scan(&s.Word, &s.Attempts, &s.Misses, &ts); err != nil {
			return err
		}
		s.LastSeen = fromNanos(ts)
		out = append(out, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query most missed: %w", err)
	}
	return out, nil
}

func (r *eventRepo) ModeSummaries(ctx context.Context) ([]ModeSummary, error) {
	sel := builder().Select(
		"mode",
		entsql.As(entsql.Count("*"), "attempts"),
		entsql.As(entsql.Sum("correct"), "hits"),
	).
		From(entsql.Table("answer_events")).
		GroupBy("mode").
		OrderBy(entsql.Desc("attempts"))

	var out []ModeSummary
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var s ModeSummary
		if err := rows.Scan(&s.Mode, &s.Attempts, &s.Correct); err != nil {
			return err
		}
		out = append(out, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query mode summaries: %w", err)
	}
	return out, nil
}

func (r *eventRepo) RunSummaries(ctx context.Context, limit int) ([]RunSummary, error) {
	sel := builder().Select(
		"run_id",
		entsql.As(entsql.Min("timestamp"), "started"),
		entsql.As(entsql.Max("timestamp"), "ended"),
		entsql.As(entsql.Count("*"), "attempts"),
		entsql.As(entsql.Sum("correct"), "hits"),
	).
		From(entsql.Table("answer_events")).
		GroupBy("run_id").
		OrderBy(entsql.Desc("started"))
	if limit > 0 {
		sel.Limit(limit)
	}

	var out []RunSummary
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var (
			s          RunSummary
			start, end int64
		)
		if err := rows.Scan(&s.RunID, &start, &end, &s.Attempts, &s.Correct); err != nil {
			return err
		}
		s.Started = fromNanos(start)
		s.Ended = fromNanos(end)
		out = append(out, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query run summaries: %w", err)
	}
	return out, nil
}
