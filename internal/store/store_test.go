package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func fixClock(t *testing.T, start time.Time) func() time.Time {
	t.Helper()
	cur := start
	now = func() time.Time {
		cur = cur.Add(time.Second)
		return cur
	}
	t.Cleanup(func() { now = time.Now })
	return func() time.Time { return cur }
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		require.NoError(t, err, "PRAGMA %s", tt.pragma)
		assert.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
	}
}

func TestReopenKeepsSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.EventRepo().AppendSessionEvent(ctx, SessionEventData{Action: ActionStart}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.EventRepo().AppendSessionEvent(ctx, SessionEventData{Action: ActionComplete}))

	events, err := s.EventRepo().QuerySessionEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, int64(2), events[0].Sequence)
	assert.Equal(t, ActionComplete, events[0].Action)
	assert.Equal(t, int64(1), events[1].Sequence)
}

func TestSequenceSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{RunID: "r", Action: ActionStart}))
	require.NoError(t, repo.AppendAnswerEvent(ctx, AnswerEventData{RunID: "r", Word: "apple", Input: "apple", Correct: true}))
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{RunID: "r", Action: ActionComplete}))

	answers, err := repo.QueryAnswerEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, int64(2), answers[0].Sequence)

	sessions, err := repo.QuerySessionEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, []int64{3, 1}, []int64{sessions[0].Sequence, sessions[1].Sequence})
}

func TestAnswerEventRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := fixClock(t, start)

	acc := 87.5
	require.NoError(t, repo.AppendAnswerEvent(ctx, AnswerEventData{
		RunID: "run-1", SessionID: "42", Mode: "Words",
		Word: "apple", Input: "aple", Correct: false, Accuracy: &acc,
	}))
	stamped := clock()

	events, err := repo.QueryAnswerEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, "run-1", e.RunID)
	assert.Equal(t, "42", e.SessionID)
	assert.Equal(t, "apple", e.Word)
	assert.Equal(t, "aple", e.Input)
	assert.False(t, e.Correct)
	require.NotNil(t, e.Accuracy)
	assert.InDelta(t, 87.5, *e.Accuracy, 0.001)
	assert.True(t, e.Timestamp.Equal(stamped), "timestamp = %v, want %v", e.Timestamp, stamped)
}

func TestAnswerEventWithoutAccuracy(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendAnswerEvent(ctx, AnswerEventData{Word: "run", Input: "ran", Correct: true}))

	events, err := repo.QueryAnswerEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Nil(t, events[0].Accuracy)
	assert.True(t, events[0].Correct)
}

func TestQueryOpts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	fixClock(t, start)

	for _, w := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, repo.AppendAnswerEvent(ctx, AnswerEventData{Word: w, Input: w, Correct: true}))
	}

	words := func(events []AnswerEventRecord) []string {
		var out []string
		for _, e := range events {
			out = append(out, e.Word)
		}
		return out
	}

	tests := []struct {
		name string
		opts QueryOpts
		want []string
	}{
		{"all newest first", QueryOpts{}, []string{"e", "d", "c", "b", "a"}},
		{"limit", QueryOpts{Limit: 2}, []string{"e", "d"}},
		{"after", QueryOpts{After: 3}, []string{"e", "d"}},
		{"before", QueryOpts{Before: 3}, []string{"b", "a"}},
		{"after and before", QueryOpts{After: 1, Before: 5}, []string{"d", "c", "b"}},
		{"time window", QueryOpts{
			From: start.Add(2 * time.Second),
			To:   start.Add(3 * time.Second),
		}, []string{"c", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := repo.QueryAnswerEvents(ctx, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, words(events))
		})
	}
}

func TestMostMissed(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()
	fixClock(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	answers := []struct {
		word    string
		correct bool
	}{
		{"apple", false},
		{"apple", false},
		{"apple", true},
		{"river", false},
		{"stone", true},
		{"cloud", false},
	}
	for _, a := range answers {
		require.NoError(t, repo.AppendAnswerEvent(ctx, AnswerEventData{
			Mode: "Words", Word: a.word, Input: "x", Correct: a.correct,
		}))
	}

	stats, err := repo.MostMissed(ctx, 0)
	require.NoError(t, err)
	require.Len(t, stats, 3, "stone was never missed")

	assert.Equal(t, "apple", stats[0].Word)
	assert.Equal(t, 3, stats[0].Attempts)
	assert.Equal(t, 2, stats[0].Misses)
	// Ties on misses are broken by recency.
	assert.Equal(t, "cloud", stats[1].Word)
	assert.Equal(t, "river", stats[2].Word)

	limited, err := repo.MostMissed(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "apple", limited[0].Word)
}

func TestModeSummaries(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i, mode := range []string{"Words", "Words", "Words", "ed"} {
		require.NoError(t, repo.AppendAnswerEvent(ctx, AnswerEventData{
			Mode: mode, Word: "w", Input: "w", Correct: i != 1,
		}))
	}

	got, err := repo.ModeSummaries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []ModeSummary{
		{Mode: "Words", Attempts: 3, Correct: 2},
		{Mode: "ed", Attempts: 1, Correct: 1},
	}, got)
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-a", Purpose: "example-sentences",
			InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true,
			RequestBody: `{"word":"apple"}`, ResponseBody: `{"sentences":"..."}`},
		{Provider: "anthropic", Model: "claude-a", Purpose: "sentence-feedback",
			InputTokens: 40, OutputTokens: 20, LatencyMs: 100, Success: true},
		{Provider: "openai", Model: "gpt-b", Purpose: "example-sentences",
			InputTokens: 10, LatencyMs: 400, Success: false, ErrorMessage: "rate limited"},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	list, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "gpt-b", list[0].Model)
	assert.False(t, list[0].Success)
	assert.Equal(t, "rate limited", list[0].ErrorMessage)

	first, err := repo.GetLLMEvent(ctx, list[2].ID)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, `{"word":"apple"}`, first.RequestBody)
	assert.Equal(t, `{"sentences":"..."}`, first.ResponseBody)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, LLMUsageStats{
		Purpose: "example-sentences", Calls: 2,
		InputTokens: 110, OutputTokens: 50, AvgLatencyMs: 300,
	}, byPurpose[0])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, LLMModelUsage{Model: "claude-a", Calls: 2, InputTokens: 140, OutputTokens: 70}, byModel[0])
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("env override", func(t *testing.T) {
		p := filepath.Join(dir, "custom", "j.db")
		t.Setenv("WORDQUIZ_DB", p)
		got, err := DefaultDBPath()
		require.NoError(t, err)
		assert.Equal(t, p, got)
		assert.DirExists(t, filepath.Join(dir, "custom"))
	})

	t.Run("xdg data home", func(t *testing.T) {
		t.Setenv("WORDQUIZ_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "wordquiz", "wordquiz.db"), got)
	})
}

func TestRunSummaries(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	fixClock(t, start)

	for _, a := range []struct {
		run     string
		correct bool
	}{
		{"first", true}, {"first", false}, {"first", true},
		{"second", false},
	} {
		require.NoError(t, repo.AppendAnswerEvent(ctx, AnswerEventData{
			RunID: a.run, Word: "w", Input: "w", Correct: a.correct,
		}))
	}

	got, err := repo.RunSummaries(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "second", got[0].RunID)
	assert.Equal(t, 1, got[0].Attempts)
	assert.Equal(t, 0, got[0].Correct)

	assert.Equal(t, "first", got[1].RunID)
	assert.Equal(t, 3, got[1].Attempts)
	assert.Equal(t, 2, got[1].Correct)
	assert.True(t, got[1].Started.Equal(start.Add(time.Second)))
	assert.True(t, got[1].Ended.Equal(start.Add(3*time.Second)))
}
