package session

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/wordquiz/internal/api"
	"github.com/abhisek/wordquiz/internal/mode"
	"github.com/abhisek/wordquiz/internal/words"
)

// DefaultAutoAdvance is the delay before advancing after a correct answer.
const DefaultAutoAdvance = time.Second

// Options configures a Controller.
type Options struct {
	// AutoAdvance is the delay before advancing after a correct answer.
	// Zero disables auto advance.
	AutoAdvance time.Duration

	// Category is the initial category for next-group requests.
	Category string

	Logger *slog.Logger
}

// Controller owns a Session and is the only code that mutates it. It must
// be used from a single goroutine; Op.Run may be called from any.
type Controller struct {
	s      Session
	review *ReviewManager
	seq    uint64
	opts   Options

	// initSeq is the sequence of the outstanding init op, zero when none.
	initSeq uint64
	logger  *slog.Logger
}

// NewController creates a controller for a session that has not been
// initialized yet.
func NewController(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		s:      Session{Mode: mode.Words, Category: opts.Category},
		review: NewReviewManager(),
		opts:   opts,
		logger: logger,
	}
}

// Session returns a snapshot of the current state.
func (c *Controller) Session() Session {
	snap := c.s.Snapshot()
	snap.Review = c.review.State()
	return snap
}

// Stats returns the presentation stats of the cursor.
func (c *Controller) Stats() Stats {
	return ComputeStats(c.s.Cursor, len(c.s.Set), c.s.Mode.Spec().GroupSize)
}

// Current returns the word under the cursor.
func (c *Controller) Current() (words.Word, bool) {
	return c.s.Current()
}

// Misses returns the words missed so far in the current group.
func (c *Controller) Misses() words.Set {
	return c.review.Misses()
}

// Seq returns the latest issued sequence number.
func (c *Controller) Seq() uint64 { return c.seq }

// issue creates an Op with the next sequence number. Any op issued earlier
// becomes stale.
func (c *Controller) issue(kind OpKind, exec func(context.Context, Backend) (any, error)) *Op {
	c.seq++
	return &Op{Seq: c.seq, Kind: kind, Mode: c.s.Mode, exec: exec}
}

// invalidate makes every in-flight op stale after a local mutation.
func (c *Controller) invalidate() { c.seq++ }

// Init establishes the session. It is also used for re-initialization.
// Until its result is applied every other operation fails with
// ErrNotReady.
func (c *Controller) Init() *Op {
	op := c.issue(OpInit, func(ctx context.Context, b Backend) (any, error) {
		return b.Init(ctx)
	})
	c.initSeq = op.Seq
	return op
}

// Ready reports whether a session is established and no init is in flight.
func (c *Controller) Ready() bool {
	return c.ready() == nil
}

// ready guards every operation that reads the session id or the set.
func (c *Controller) ready() error {
	if c.s.Halted {
		return ErrHalted
	}
	if c.initSeq != 0 || c.s.ID == "" {
		return ErrNotReady
	}
	return nil
}

// SwitchMode loads the sheet for m. The unsent answer is discarded by the
// caller. AiPractice reuses the current set and completes locally.
func (c *Controller) SwitchMode(m mode.Mode) (*Op, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	spec, ok := mode.Lookup(m)
	if !ok {
		return nil, &ProtocolError{Action: OpSwitchMode.String(), Detail: "unknown mode " + string(m)}
	}
	if spec.SheetEndpoint == "" {
		c.s.Mode = m
		c.s.Cursor.Index = 0
		c.s.AwaitingAdvance = false
		c.invalidate()
		return nil, nil
	}
	id := c.s.ID
	op := c.issue(OpSwitchMode, func(ctx context.Context, b Backend) (any, error) {
		return b.LoadSheet(ctx, spec.SheetEndpoint, id)
	})
	op.Mode = m
	return op, nil
}

// Submit checks the answer, or advances when a correct answer is awaiting
// advance.
func (c *Controller) Submit(raw string) (*Op, error) {
	if c.s.AwaitingAdvance {
		return c.Advance()
	}
	return c.CheckAnswer(raw)
}

// CheckAnswer validates the answer locally and issues the check request.
// Empty input never reaches the backend. Answers in modes with a second
// field are sent exactly as typed.
func (c *Controller) CheckAnswer(raw string) (*Op, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	spec := c.s.Mode.Spec()
	if !spec.Verdict {
		return nil, ErrNoVerdict
	}
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyInput
	}
	w, ok := c.s.Current()
	if !ok {
		return nil, ErrNoWord
	}

	input := raw
	if !spec.RequiresSecondField {
		input = strings.TrimSpace(raw)
	}
	id, wire := c.s.ID, string(c.s.Mode)
	op := c.issue(OpCheckAnswer, func(ctx context.Context, b Backend) (any, error) {
		return b.CheckAnswer(ctx, id, input, w, wire)
	})
	op.Word = w
	op.Input = input
	return op, nil
}

// Advance moves to the next word. In AiPractice it is local and returns a
// nil op.
func (c *Controller) Advance() (*Op, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	if len(c.s.Set) == 0 {
		return nil, ErrNoWord
	}
	if !c.s.Mode.Spec().Verdict {
		c.s.Cursor.Index = (c.s.Cursor.Index + 1) % len(c.s.Set)
		c.invalidate()
		return nil, nil
	}
	id, index := c.s.ID, c.s.Cursor.Index
	return c.issue(OpAdvance, func(ctx context.Context, b Backend) (any, error) {
		return b.NextWord(ctx, id, index)
	}), nil
}

// AutoAdvance advances if nothing happened since the advance was scheduled
// with token.
func (c *Controller) AutoAdvance(token uint64) (*Op, error) {
	if token != c.seq || !c.s.AwaitingAdvance {
		return nil, nil
	}
	return c.Advance()
}

// GoBack moves to the previous word. It is local and reports whether the
// cursor moved.
func (c *Controller) GoBack() bool {
	if c.ready() != nil || c.s.Cursor.Index <= 0 {
		return false
	}
	c.s.Cursor.Index--
	c.s.AwaitingAdvance = false
	c.invalidate()
	return true
}

// Decide answers a pending review decision.
func (c *Controller) Decide(choice Choice) (*Op, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	if !c.review.Awaiting() {
		return nil, ErrNoDecision
	}
	id, wire := c.s.ID, string(c.s.Mode)
	if choice == ChoiceSkipReview {
		return c.issue(OpSkipReview, func(ctx context.Context, b Backend) (any, error) {
			return b.SkipReview(ctx, id, wire)
		}), nil
	}
	return c.issue(OpStartReview, func(ctx context.Context, b Backend) (any, error) {
		return b.StartReview(ctx, id, wire)
	}), nil
}

// NextGroup loads the next group of words in the selected category.
func (c *Controller) NextGroup() (*Op, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	if !c.s.Mode.Spec().Verdict {
		return nil, ErrNoVerdict
	}
	id, category, wire := c.s.ID, c.s.Category, string(c.s.Mode)
	return c.issue(OpNextGroup, func(ctx context.Context, b Backend) (any, error) {
		return b.NextGroup(ctx, id, category, wire)
	}), nil
}

// RepeatGroup restarts the current group.
func (c *Controller) RepeatGroup() (*Op, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	if !c.s.Mode.Spec().Verdict {
		return nil, ErrNoVerdict
	}
	id := c.s.ID
	return c.issue(OpRepeatGroup, func(ctx context.Context, b Backend) (any, error) {
		return b.RepeatGroup(ctx, id)
	}), nil
}

// CycleCategory selects the next category for next-group requests and
// returns it. The empty category means all words.
func (c *Controller) CycleCategory() string {
	cats := append([]string{""}, c.s.Categories...)
	next := 0
	for i, cat := range cats {
		if cat == c.s.Category {
			next = (i + 1) % len(cats)
			break
		}
	}
	c.s.Category = cats[next]
	return c.s.Category
}

// replaceSet adopts a new working set from the backend and rewinds.
func (c *Controller) replaceSet(set words.Set, groupOrdinal *int) {
	c.s.Set = set
	c.s.Cursor.Index = 0
	c.s.AwaitingAdvance = false
	if groupOrdinal != nil {
		c.s.Cursor.GroupIndex = *groupOrdinal * c.s.Mode.Spec().GroupSize
	}
	c.review.BeginGroup(set)
}

func (c *Controller) adoptInit(resp *api.InitResponse) {
	c.s.ID = resp.SessionID
	c.s.Categories = resp.Categories
	c.s.CompletedCount = resp.UserProgress.CompletedCount
	c.s.Message = resp.Message
	c.s.Cursor.TotalWords = resp.TotalWordsCount
	c.s.Halted = false
	c.review.Reset()
	group := resp.CurrentGroupIndex
	c.replaceSet(resp.CurrentSet, &group)
}
