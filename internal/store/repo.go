package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// AnswerEventData captures one graded answer.
type AnswerEventData struct {
	RunID     string
	SessionID string
	Mode      string
	Word      string
	Input     string
	Correct   bool

	// Accuracy is only set when the backend reported one.
	Accuracy *float64
}

// AnswerEventRecord is a stored answer event.
type AnswerEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// Session event actions.
const (
	ActionStart       = "start"
	ActionModeSwitch  = "mode_switch"
	ActionSetLoaded   = "set_loaded"
	ActionReviewStart = "review_start"
	ActionReviewSkip  = "review_skip"
	ActionComplete    = "complete"
	ActionError       = "error"
)

// SessionEventData captures a session lifecycle change.
type SessionEventData struct {
	RunID     string
	SessionID string
	Mode      string
	Action    string
	Detail    string
}

// SessionEventRecord is a stored session event.
type SessionEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates LLM calls for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates LLM token usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// WordStat summarizes the answers given for one word.
type WordStat struct {
	Word     string
	Attempts int
	Misses   int
	LastSeen time.Time
}

// RunSummary summarizes the answers given during one run of the quiz.
type RunSummary struct {
	RunID    string
	Started  time.Time
	Ended    time.Time
	Attempts int
	Correct  int
}

// ModeSummary summarizes the answers given in one mode.
type ModeSummary struct {
	Mode     string
	Attempts int
	Correct  int
}

// EventRepo provides append and query access to journal events.
type EventRepo interface {
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryAnswerEvents returns answer events, newest first.
	QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEventRecord, error)
	// QuerySessionEvents returns session events, newest first.
	QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error)
	// QueryLLMEvents returns LLM request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)
	// GetLLMEvent returns the event with the given ID, or nil if none exists.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)

	// MostMissed returns the words with the most wrong answers, at most limit.
	MostMissed(ctx context.Context, limit int) ([]WordStat, error)
	// ModeSummaries returns answer totals per mode.
	ModeSummaries(ctx context.Context) ([]ModeSummary, error)
	// RunSummaries returns answer totals per run, newest first, at most limit.
	RunSummaries(ctx context.Context, limit int) ([]RunSummary, error)
}
