package quiz

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordquiz/internal/session"
	"github.com/abhisek/wordquiz/internal/store"
)

// opActions maps applied ops to the session event they are journaled as.
// Ops missing from the map are not journaled.
var opActions = map[session.OpKind]string{
	session.OpInit:        store.ActionStart,
	session.OpSwitchMode:  store.ActionModeSwitch,
	session.OpNextGroup:   store.ActionSetLoaded,
	session.OpRepeatGroup: store.ActionSetLoaded,
	session.OpStartReview: store.ActionReviewStart,
	session.OpSkipReview:  store.ActionReviewSkip,
}

// journal runs fn against the journal in the background. Failures are
// logged and otherwise ignored; the quiz never waits for the journal.
func (s *QuizScreen) journal(fn func(ctx context.Context, j store.EventRepo) error) tea.Cmd {
	if s.deps.Journal == nil {
		return nil
	}
	j, logger := s.deps.Journal, s.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
		defer cancel()
		if err := fn(ctx, j); err != nil {
			logger.Warn("journal write failed", "error", err)
		}
		return nil
	}
}

func (s *QuizScreen) journalSession(sess session.Session, action, detail string) tea.Cmd {
	data := store.SessionEventData{
		RunID:     s.deps.RunID,
		SessionID: sess.ID.String(),
		Mode:      string(sess.Mode),
		Action:    action,
		Detail:    detail,
	}
	return s.journal(func(ctx context.Context, j store.EventRepo) error {
		return j.AppendSessionEvent(ctx, data)
	})
}

func (s *QuizScreen) journalOp(sess session.Session, op *session.Op) tea.Cmd {
	action, ok := opActions[op.Kind]
	if !ok {
		return nil
	}
	detail := ""
	switch op.Kind {
	case session.OpSwitchMode:
		detail = string(op.Mode)
	case session.OpNextGroup, session.OpRepeatGroup:
		detail = op.Kind.String()
	}
	return s.journalSession(sess, action, detail)
}

func (s *QuizScreen) journalAnswer(sess session.Session, a *session.Answer) tea.Cmd {
	accuracy := a.Accuracy
	data := store.AnswerEventData{
		RunID:     s.deps.RunID,
		SessionID: sess.ID.String(),
		Mode:      string(a.Mode),
		Word:      a.Word.Word,
		Input:     a.Input,
		Correct:   a.Correct,
		Accuracy:  &accuracy,
	}
	return s.journal(func(ctx context.Context, j store.EventRepo) error {
		return j.AppendAnswerEvent(ctx, data)
	})
}
