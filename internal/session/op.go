package session

import (
	"context"
	"time"

	"github.com/abhisek/wordquiz/internal/api"
	"github.com/abhisek/wordquiz/internal/feedback"
	"github.com/abhisek/wordquiz/internal/mode"
	"github.com/abhisek/wordquiz/internal/words"
)

// Backend is the part of the API the session drives.
type Backend interface {
	Init(ctx context.Context) (*api.InitResponse, error)
	CheckAnswer(ctx context.Context, id api.SessionID, input string, w words.Word, mode string) (*api.Verdict, error)
	NextWord(ctx context.Context, id api.SessionID, index int) (*api.Transition, error)
	LoadSheet(ctx context.Context, endpoint string, id api.SessionID) (*api.SheetResponse, error)
	NextGroup(ctx context.Context, id api.SessionID, category, mode string) (*api.GroupResponse, error)
	RepeatGroup(ctx context.Context, id api.SessionID) (*api.GroupResponse, error)
	StartReview(ctx context.Context, id api.SessionID, mode string) (*api.Transition, error)
	SkipReview(ctx context.Context, id api.SessionID, mode string) (*api.Transition, error)
}

var _ Backend = (*api.Client)(nil)

// OpKind identifies the operation an Op performs.
type OpKind int

const (
	OpInit OpKind = iota
	OpSwitchMode
	OpCheckAnswer
	OpAdvance
	OpStartReview
	OpSkipReview
	OpNextGroup
	OpRepeatGroup
)

// String returns the user facing action name.
func (k OpKind) String() string {
	switch k {
	case OpInit:
		return "initialize session"
	case OpSwitchMode:
		return "switch mode"
	case OpCheckAnswer:
		return "check answer"
	case OpAdvance:
		return "next word"
	case OpStartReview:
		return "start review"
	case OpSkipReview:
		return "skip review"
	case OpNextGroup:
		return "next group"
	case OpRepeatGroup:
		return "repeat group"
	default:
		return "unknown"
	}
}

// Choice is the learner's answer to a review decision.
type Choice int

const (
	ChoiceStartReview Choice = iota
	ChoiceSkipReview
)

// Op is a backend request issued by the Controller. Seq orders it against
// every other request of the session.
type Op struct {
	Seq  uint64
	Kind OpKind

	// Word and Input are set for answer checks.
	Word  words.Word
	Input string

	// Mode is the mode the request was issued for.
	Mode mode.Mode

	exec func(ctx context.Context, b Backend) (any, error)
}

// Run performs the request. It is safe to call from any goroutine; it does
// not touch session state.
func (o *Op) Run(ctx context.Context, b Backend) Result {
	v, err := o.exec(ctx, b)
	return Result{Op: o, Value: v, Err: err}
}

// Result is the outcome of running an Op, to be passed to Controller.Apply.
type Result struct {
	Op    *Op
	Value any
	Err   error
}

// Decision asks the learner to choose how to continue.
type Decision struct {
	Message string
	Choices []Choice
}

// Answer describes a checked answer, for journaling.
type Answer struct {
	Mode     mode.Mode
	Word     words.Word
	Input    string
	Correct  bool
	Accuracy float64
}

// Outcome is the set of intents produced by applying a Result. The zero
// value means nothing happened.
type Outcome struct {
	// Stale is set when the result was superseded and dropped.
	Stale bool

	// Changed is set when session state changed.
	Changed bool

	// Status is a non-blocking informational message.
	Status string

	// Notice is a message that must be acknowledged before continuing.
	Notice string

	// Reinit requests a full session re-initialization once any Notice
	// has been acknowledged.
	Reinit bool

	// Next is a follow-up request to run immediately.
	Next *Op

	// Feedback is the rendered verdict of an answer check.
	Feedback *feedback.Feedback

	// Answer is set for every applied answer check.
	Answer *Answer

	// Pronounce names a word whose audio should be played.
	Pronounce string

	// Decision is set when the learner must choose how to continue.
	Decision *Decision

	// AdvanceAfter schedules an automatic advance. AdvanceToken must be
	// passed back to Controller.AutoAdvance.
	AdvanceAfter time.Duration
	AdvanceToken uint64

	// Fatal is an *InitializationError; the session is halted.
	Fatal error

	// Err is an *ActionError; state is unchanged.
	Err error

	// Warning is a *ProtocolError; it has been logged.
	Warning error
}
