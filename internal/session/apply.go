package session

import (
	"fmt"

	"github.com/abhisek/wordquiz/internal/api"
	"github.com/abhisek/wordquiz/internal/feedback"
	"github.com/abhisek/wordquiz/internal/mode"
	"github.com/abhisek/wordquiz/internal/words"
)

const (
	msgRepeatIncorrect = "Let's practice the words you missed."
	msgSetComplete     = "Great job! You finished this group."
	msgReviewPrompt    = "Group finished. Start a review of the last groups?"
	msgReviewComplete  = "Review complete!"
	msgAllComplete     = "You have finished every word!"
)

// Apply folds the result of an op into the session. Results of any op other
// than the latest issued are dropped.
func (c *Controller) Apply(r Result) Outcome {
	if r.Op == nil {
		return Outcome{}
	}
	if r.Op.Seq != c.seq {
		if r.Op.Kind == OpInit && r.Op.Seq == c.initSeq {
			// The outstanding init was overtaken by another op. Without a
			// session nothing can recover, so halt and offer a retry.
			c.initSeq = 0
			c.s.Halted = true
			c.logger.Error("session initialization dropped", "seq", r.Op.Seq, "latest", c.seq)
			return Outcome{Fatal: &InitializationError{Err: ErrInitDropped}, Changed: true}
		}
		c.logger.Debug("dropping stale response", "op", r.Op.Kind.String(), "seq", r.Op.Seq, "latest", c.seq)
		return Outcome{Stale: true}
	}

	if r.Op.Kind == OpInit {
		return c.applyInit(r)
	}
	if c.s.Halted {
		return Outcome{Fatal: &InitializationError{Err: ErrHalted}}
	}
	if r.Err != nil {
		c.logger.Error("backend request failed", "op", r.Op.Kind.String(), "error", r.Err)
		out := Outcome{Err: &ActionError{Action: r.Op.Kind.String(), Err: r.Err}}
		if r.Op.Kind == OpStartReview || r.Op.Kind == OpSkipReview {
			out.Decision = c.decision()
		}
		return out
	}

	switch r.Op.Kind {
	case OpSwitchMode:
		resp, ok := r.Value.(*api.SheetResponse)
		if !ok {
			return c.malformed(r.Op)
		}
		return c.applySheet(r.Op.Mode, resp)
	case OpCheckAnswer:
		v, ok := r.Value.(*api.Verdict)
		if !ok {
			return c.malformed(r.Op)
		}
		return c.applyVerdict(r.Op, v)
	case OpAdvance:
		tr, ok := r.Value.(*api.Transition)
		if !ok {
			return c.malformed(r.Op)
		}
		return c.applyTransition(r.Op, tr)
	case OpStartReview, OpSkipReview:
		tr, ok := r.Value.(*api.Transition)
		if !ok {
			return c.malformed(r.Op)
		}
		return c.applyReview(r.Op, tr)
	case OpNextGroup, OpRepeatGroup:
		resp, ok := r.Value.(*api.GroupResponse)
		if !ok {
			return c.malformed(r.Op)
		}
		return c.applyGroup(resp)
	default:
		return c.unrecognized(r.Op, fmt.Sprintf("op kind %d", r.Op.Kind))
	}
}

func (c *Controller) applyInit(r Result) Outcome {
	c.initSeq = 0
	resp, ok := r.Value.(*api.InitResponse)
	if r.Err == nil && (!ok || resp == nil || len(resp.CurrentSet) == 0) {
		r.Err = fmt.Errorf("init returned no working set")
	}
	if r.Err != nil {
		c.s.Halted = true
		c.logger.Error("session initialization failed", "error", r.Err)
		return Outcome{Fatal: &InitializationError{Err: r.Err}, Changed: true}
	}

	previous := c.s.Mode
	c.s.Mode = mode.Words
	c.adoptInit(resp)
	c.logger.Info("session initialized", "session_id", resp.SessionID.String(), "words", len(resp.CurrentSet))

	out := Outcome{Changed: true, Status: resp.Message}
	// Re-initialization starts in Words mode; restore the learner's mode.
	if previous != "" && previous != mode.Words {
		op, err := c.SwitchMode(previous)
		if err == nil {
			out.Next = op
		}
	}
	return out
}

func (c *Controller) applySheet(m mode.Mode, resp *api.SheetResponse) Outcome {
	if len(resp.CurrentSet) == 0 {
		return c.unrecognized(&Op{Kind: OpSwitchMode}, "empty sheet")
	}
	c.s.Mode = m
	if resp.TotalWordsCount > 0 {
		c.s.Cursor.TotalWords = resp.TotalWordsCount
	}
	if resp.UserProgress.CompletedCount > 0 {
		c.s.CompletedCount = resp.UserProgress.CompletedCount
	}
	c.s.Message = resp.Message
	c.review.Reset()
	c.replaceSet(resp.CurrentSet, resp.CurrentGroupIndex)
	return Outcome{Changed: true, Status: resp.Message}
}

func (c *Controller) applyVerdict(op *Op, v *api.Verdict) Outcome {
	c.s.Accuracy = v.Accuracy
	c.s.HasAccuracy = true
	c.review.Record(op.Word, v.IsCorrect)

	fb := feedback.Render(op.Mode, op.Word, v.IsCorrect)
	out := Outcome{
		Changed:   true,
		Feedback:  &fb,
		Pronounce: op.Word.Word,
		Answer: &Answer{
			Mode:     op.Mode,
			Word:     op.Word,
			Input:    op.Input,
			Correct:  v.IsCorrect,
			Accuracy: v.Accuracy,
		},
	}
	if v.IsCorrect {
		c.s.AwaitingAdvance = true
		if c.opts.AutoAdvance > 0 {
			out.AdvanceAfter = c.opts.AutoAdvance
			out.AdvanceToken = c.seq
		}
	}
	return out
}

func (c *Controller) applyTransition(op *Op, tr *api.Transition) Outcome {
	switch tr.Action {
	case api.ActionNextWord:
		if tr.Index == nil {
			return c.unrecognized(op, "next_word without index")
		}
		if !c.s.Cursor.Seek(*tr.Index, len(c.s.Set), c.logger) {
			return c.unrecognized(op, fmt.Sprintf("index %d outside set of %d", *tr.Index, len(c.s.Set)))
		}
		c.s.AwaitingAdvance = false
		return Outcome{Changed: true}

	case api.ActionNextSet:
		if len(tr.CurrentSet) == 0 {
			return c.unrecognized(op, "next_set without words")
		}
		if c.review.State().Phase == ReviewActive {
			c.review.Skip()
		}
		c.replaceSet(tr.CurrentSet, tr.CurrentGroupIndex)
		return Outcome{Changed: true, Status: tr.Message}

	case api.ActionRepeatIncorrect:
		set := tr.CurrentSet
		if len(set) == 0 {
			set = c.review.Misses()
		}
		if len(set) == 0 {
			return c.unrecognized(op, "repeat_incorrect without words")
		}
		c.replaceSet(set, nil)
		return Outcome{Changed: true, Notice: orDefault(tr.Message, msgRepeatIncorrect)}

	case api.ActionSetComplete:
		c.s.AwaitingAdvance = false
		return Outcome{Changed: true, Notice: orDefault(tr.Message, msgSetComplete), Reinit: true}

	case api.ActionEnterReview:
		c.s.AwaitingAdvance = false
		c.review.Enter(orDefault(tr.Message, msgReviewPrompt))
		return Outcome{Changed: true, Decision: c.decision()}

	case api.ActionReviewComplete:
		c.s.AwaitingAdvance = false
		c.review.Complete(orDefault(tr.Message, msgReviewComplete))
		return Outcome{Changed: true, Notice: c.review.State().Message, Reinit: true}

	case api.ActionAllComplete:
		c.s.AwaitingAdvance = false
		return Outcome{Changed: true, Notice: orDefault(tr.Message, msgAllComplete), Reinit: true}

	default:
		return c.unrecognized(op, fmt.Sprintf("action %q", tr.Action))
	}
}

func (c *Controller) applyReview(op *Op, tr *api.Transition) Outcome {
	if tr.Action == api.ActionAllComplete {
		c.review.Skip()
		return Outcome{Changed: true, Notice: orDefault(tr.Message, msgAllComplete), Reinit: true}
	}

	var set words.Set
	if op.Kind == OpStartReview {
		set = c.review.Start(tr.CurrentSet)
	} else {
		c.review.Skip()
		set = tr.CurrentSet
	}
	if len(set) == 0 {
		c.review.Skip()
		return Outcome{Changed: true, Notice: orDefault(tr.Message, msgAllComplete), Reinit: true}
	}

	c.replaceSet(set, tr.CurrentGroupIndex)
	return Outcome{Changed: true, Status: tr.Message}
}

func (c *Controller) applyGroup(resp *api.GroupResponse) Outcome {
	if len(resp.CurrentSet) == 0 {
		return c.unrecognized(&Op{Kind: OpNextGroup}, "group without words")
	}
	c.review.Reset()
	c.replaceSet(resp.CurrentSet, resp.CurrentGroupIndex)
	if resp.ReviewMode {
		c.review.Activate(resp.CurrentSet)
	}
	c.s.Message = resp.Message
	return Outcome{Changed: true, Status: resp.Message}
}

func (c *Controller) decision() *Decision {
	st := c.review.State()
	if st.Phase != ReviewAwaitingDecision {
		return nil
	}
	return &Decision{Message: st.Message, Choices: []Choice{ChoiceStartReview, ChoiceSkipReview}}
}

func (c *Controller) unrecognized(op *Op, detail string) Outcome {
	err := &ProtocolError{Action: op.Kind.String(), Detail: detail}
	c.logger.Warn("unrecognized backend response", "op", op.Kind.String(), "detail", detail)
	return Outcome{Warning: err}
}

func (c *Controller) malformed(op *Op) Outcome {
	return c.unrecognized(op, "unexpected payload type")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
